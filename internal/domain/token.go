package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Well-known stablecoin contracts used for add-liquidity links.
const (
	usdtBSC  = "0x55d398326f99059fF775485246999027B3197955"
	usdcBSC  = "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d"
	usdtBase = "0xfde4C96c8593536E31F229EA8f37b2ADa2699bb2"
	usdcBase = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
)

// TokenMetadata is a token's descriptive record as returned by a data
// provider. Built per lookup, never cached, discarded after the reply
// is composed.
type TokenMetadata struct {
	ID        string           // canonical contract address / mint
	Name      string           // display name, possibly with appended translation
	Symbol    string           // ticker symbol
	MarketCap *decimal.Decimal // nil when the provider reports no cap
	Chain     Chain            // concrete chain the token was resolved on
}

// GMGNURL returns the GMGN token page for the token's chain.
func (t *TokenMetadata) GMGNURL() string {
	if t.Chain.Family() == FamilySolana {
		return fmt.Sprintf("https://gmgn.ai/sol/token/%s", t.ID)
	}
	return fmt.Sprintf("https://gmgn.ai/%s/token/%s", t.Chain, t.ID)
}

// RugcheckURL returns the Rugcheck report page (Solana only).
func (t *TokenMetadata) RugcheckURL() string {
	return fmt.Sprintf("https://rugcheck.xyz/tokens/%s", t.ID)
}

// TrenchRadarURL returns the TrenchRadar bundle page (Solana only).
func (t *TokenMetadata) TrenchRadarURL() string {
	return fmt.Sprintf("https://trench.bot/bundles/%s", t.ID)
}

// MeteoraPoolsURL returns the Meteora DLMM pool search (Solana only).
func (t *TokenMetadata) MeteoraPoolsURL() string {
	return fmt.Sprintf("https://app.meteora.ag/pools#dlmm?search=%s", t.ID)
}

// PancakeUSDTPoolURL returns the PancakeSwap add-liquidity page against USDT.
func (t *TokenMetadata) PancakeUSDTPoolURL() string {
	return fmt.Sprintf("https://pancakeswap.finance/add/%s/%s", t.ID, usdtBSC)
}

// PancakeUSDCPoolURL returns the PancakeSwap add-liquidity page against USDC.
func (t *TokenMetadata) PancakeUSDCPoolURL() string {
	return fmt.Sprintf("https://pancakeswap.finance/add/%s/%s", t.ID, usdcBSC)
}

// UniswapUSDTPoolURL returns the Uniswap add-liquidity page against USDT.
func (t *TokenMetadata) UniswapUSDTPoolURL() string {
	return fmt.Sprintf("https://app.uniswap.org/add/%s/%s", t.ID, usdtBase)
}

// UniswapUSDCPoolURL returns the Uniswap add-liquidity page against USDC.
func (t *TokenMetadata) UniswapUSDCPoolURL() string {
	return fmt.Sprintf("https://app.uniswap.org/add/%s/%s", t.ID, usdcBase)
}

// HumanMarketCap renders the market cap with a K/M/B suffix at two decimal
// places. Returns ok=false when the provider reported no cap, which must
// render as absence rather than zero.
func (t *TokenMetadata) HumanMarketCap() (string, bool) {
	if t.MarketCap == nil {
		return "", false
	}
	return humanizeDecimal(*t.MarketCap, 2), true
}

var (
	oneThousand = decimal.NewFromInt(1_000)
	oneMillion  = decimal.NewFromInt(1_000_000)
	oneBillion  = decimal.NewFromInt(1_000_000_000)
)

// humanizeDecimal formats num with a magnitude suffix at the given precision.
func humanizeDecimal(num decimal.Decimal, places int32) string {
	abs := num.Abs()
	switch {
	case abs.GreaterThanOrEqual(oneBillion):
		return num.Div(oneBillion).StringFixed(places) + "B"
	case abs.GreaterThanOrEqual(oneMillion):
		return num.Div(oneMillion).StringFixed(places) + "M"
	case abs.GreaterThanOrEqual(oneThousand):
		return num.Div(oneThousand).StringFixed(places) + "K"
	default:
		return num.StringFixed(places)
	}
}
