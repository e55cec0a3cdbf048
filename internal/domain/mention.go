package domain

// ChainFamily groups blockchains that share an address grammar.
type ChainFamily string

const (
	FamilySolana ChainFamily = "SOLANA"
	FamilyEVM    ChainFamily = "EVM"
)

// String returns the string representation of ChainFamily.
func (f ChainFamily) String() string {
	return string(f)
}

// IsValid checks if the family is a valid value.
func (f ChainFamily) IsValid() bool {
	return f == FamilySolana || f == FamilyEVM
}

// CandidateMention is a text span that structurally matches a chain family's
// address grammar. It has not been verified against any data provider.
type CandidateMention struct {
	Address string
	Family  ChainFamily
}
