// Package telegram adapts the mention pipeline to the Telegram Bot API:
// update mapping, reply formatting and reply dispatch.
package telegram

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot"

	"token-mention-bot/internal/domain"
	"token-mention-bot/internal/pipeline"
)

// Formatter renders token metadata as a MarkdownV2 reply. Layouts differ per
// chain family: Solana summaries carry audit links, EVM summaries carry
// add-liquidity links for the major DEX pools.
type Formatter struct{}

var _ pipeline.Formatter = Formatter{}

// NewFormatter creates a Formatter.
func NewFormatter() Formatter {
	return Formatter{}
}

// FormatReply renders the reply text for one resolved token.
func (Formatter) FormatReply(meta *domain.TokenMetadata) string {
	if meta.Chain.Family() == domain.FamilyEVM {
		return formatEVMReply(meta)
	}
	return formatSolanaReply(meta)
}

func formatSolanaReply(meta *domain.TokenMetadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🏷️ *%s* \\- %s\n",
		bot.EscapeMarkdown(meta.Symbol), bot.EscapeMarkdown(meta.Name))
	// The address stays unescaped inside the code span so it can be
	// copied verbatim.
	fmt.Fprintf(&b, "📜 `%s`\n", meta.ID)
	if mcap, ok := meta.HumanMarketCap(); ok {
		fmt.Fprintf(&b, "💵 %s\n", bot.EscapeMarkdown(mcap))
	}
	fmt.Fprintf(&b, "🦎 [GMGN](%s)            ☄️ [Meteora pools](%s)\n",
		bot.EscapeMarkdown(meta.GMGNURL()), bot.EscapeMarkdown(meta.MeteoraPoolsURL()))
	fmt.Fprintf(&b, "🦝 [Rugcheck](%s)        📡 [TrenchRadar](%s)",
		bot.EscapeMarkdown(meta.RugcheckURL()), bot.EscapeMarkdown(meta.TrenchRadarURL()))

	return b.String()
}

func formatEVMReply(meta *domain.TokenMetadata) string {
	mcap, _ := meta.HumanMarketCap()

	var b strings.Builder

	fmt.Fprintf(&b, "🏷️ *%s* \\- %s\n",
		bot.EscapeMarkdown(meta.Symbol), bot.EscapeMarkdown(meta.Name))
	fmt.Fprintf(&b, "📜 `%s`\n", meta.ID)
	fmt.Fprintf(&b, "💵 %s \\- %s\n",
		bot.EscapeMarkdown(mcap), bot.EscapeMarkdown(meta.Chain.DisplayName()))
	fmt.Fprintf(&b, "🦎 [GMGN](%s)\n", bot.EscapeMarkdown(meta.GMGNURL()))
	fmt.Fprintf(&b, "🥞 [P\\. USDT pools](%s)     🥞 [P\\. USDC pools](%s)\n",
		bot.EscapeMarkdown(meta.PancakeUSDTPoolURL()), bot.EscapeMarkdown(meta.PancakeUSDCPoolURL()))
	fmt.Fprintf(&b, "🦄 [U\\. USDT pools](%s)    🦄 [U\\. USDC pools](%s)",
		bot.EscapeMarkdown(meta.UniswapUSDTPoolURL()), bot.EscapeMarkdown(meta.UniswapUSDCPoolURL()))

	return b.String()
}
