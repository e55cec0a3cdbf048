package telegram

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"token-mention-bot/internal/domain"
)

const (
	testMint    = "7xKXtg2CW3ed1wGfNxGhqmuRqzNKc2nEkNMTRfwPQEz"
	testEVMAddr = "0x55d398326f99059fF775485246999027B3197955"
)

func capOf(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestFormatReply_Solana(t *testing.T) {
	meta := &domain.TokenMetadata{
		ID:        testMint,
		Name:      "Fresh Token",
		Symbol:    "FRSH",
		MarketCap: capOf(2_340_000_000),
		Chain:     domain.ChainSolana,
	}

	text := NewFormatter().FormatReply(meta)

	for _, want := range []string{
		"🏷️ *FRSH* \\- Fresh Token",
		"📜 `" + testMint + "`",
		"💵 2\\.34B",
		"🦎 [GMGN](",
		"☄️ [Meteora pools](",
		"🦝 [Rugcheck](",
		"📡 [TrenchRadar](",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("reply missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Pancake") || strings.Contains(text, "🥞") {
		t.Errorf("solana reply must not carry EVM pool links:\n%s", text)
	}
}

func TestFormatReply_SolanaWithoutMarketCap(t *testing.T) {
	meta := &domain.TokenMetadata{
		ID:     testMint,
		Name:   "Fresh Token",
		Symbol: "FRSH",
		Chain:  domain.ChainSolana,
	}

	text := NewFormatter().FormatReply(meta)

	if strings.Contains(text, "💵") {
		t.Errorf("absent market cap must omit the cap line entirely:\n%s", text)
	}
	if !strings.Contains(text, "🦎 [GMGN](") {
		t.Errorf("link rows must survive an absent cap:\n%s", text)
	}
}

func TestFormatReply_EVM(t *testing.T) {
	meta := &domain.TokenMetadata{
		ID:        testEVMAddr,
		Name:      "Tether USD",
		Symbol:    "USDT",
		MarketCap: capOf(1_500_000),
		Chain:     domain.ChainBSC,
	}

	text := NewFormatter().FormatReply(meta)

	for _, want := range []string{
		"🏷️ *USDT* \\- Tether USD",
		"📜 `" + testEVMAddr + "`",
		"💵 1\\.50M \\- BSC",
		"🦎 [GMGN](",
		"🥞 [P\\. USDT pools](",
		"🥞 [P\\. USDC pools](",
		"🦄 [U\\. USDT pools](",
		"🦄 [U\\. USDC pools](",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("reply missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Rugcheck") || strings.Contains(text, "Meteora") {
		t.Errorf("evm reply must not carry solana audit links:\n%s", text)
	}
}

func TestFormatReply_EVMChainName(t *testing.T) {
	meta := &domain.TokenMetadata{
		ID:     testEVMAddr,
		Symbol: "USDC",
		Name:   "USD Coin",
		Chain:  domain.ChainBase,
	}

	text := NewFormatter().FormatReply(meta)

	// An absent cap still renders the chain so readers know where the
	// token was found.
	if !strings.Contains(text, "💵  \\- Base") {
		t.Errorf("reply must name the resolved chain:\n%s", text)
	}
}

func TestFormatReply_EscapesMetadata(t *testing.T) {
	meta := &domain.TokenMetadata{
		ID:     testMint,
		Name:   "Dog.Coin (v2)",
		Symbol: "DOG_2",
		Chain:  domain.ChainSolana,
	}

	text := NewFormatter().FormatReply(meta)

	if !strings.Contains(text, "DOG\\_2") {
		t.Errorf("symbol not escaped:\n%s", text)
	}
	if !strings.Contains(text, "Dog\\.Coin \\(v2\\)") {
		t.Errorf("name not escaped:\n%s", text)
	}
}
