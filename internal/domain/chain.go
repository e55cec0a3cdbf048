package domain

// Chain identifies a concrete blockchain a token was resolved on.
type Chain string

const (
	ChainSolana Chain = "solana"
	ChainBSC    Chain = "bsc"
	ChainBase   Chain = "base"
)

// String returns the string representation of Chain.
func (c Chain) String() string {
	return string(c)
}

// Family returns the address family the chain belongs to.
func (c Chain) Family() ChainFamily {
	if c == ChainSolana {
		return FamilySolana
	}
	return FamilyEVM
}

// DisplayName returns the human-readable chain name used in replies.
func (c Chain) DisplayName() string {
	switch c {
	case ChainSolana:
		return "Solana"
	case ChainBSC:
		return "BSC"
	case ChainBase:
		return "Base"
	default:
		return string(c)
	}
}

// DefaultEVMChainOrder is the priority order fallback resolution walks when
// an EVM-shaped address may live on more than one chain.
var DefaultEVMChainOrder = []Chain{ChainBSC, ChainBase}
