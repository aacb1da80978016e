package format

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/classify"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/summary"
)

const (
	topMiners  = 3
	topStakers = 3
)

var actionEmojis = []struct {
	txType string
	emoji  string
}{
	{classify.TxTypeGenesis, emojiGenesis},
	{classify.TxTypeMint, "🔨"},
	{classify.TxTypeSend, emojiTokenSend},
	{classify.TxTypeBurn, emojiTokenBurn},
	{classify.TxTypeNone, emojiTokenBurn},
	{classify.TxTypeUnknown, emojiUnknownApp},
}

// WindowMessages renders a time window summary, split to fit MaxMessageLength.
func WindowMessages(s summary.Summary) []string {
	price, fiat := xecPrice(s)

	lines := []string{
		"<b>" + html.EscapeString(s.PeriodLabel) + "</b>",
		emojiBlock + plural(s.Blocks, "block"),
		emojiArrowRight + plural(s.TxCount, "tx"),
	}
	if pl := priceLines(s); len(pl) > 0 {
		lines = append(lines, "")
		lines = append(lines, pl...)
	}

	if len(s.Miners) > 0 {
		lines = append(lines, "",
			fmt.Sprintf("<b><i>%s%s found blocks</i></b>", emojiMiner, plural(len(s.Miners), "miner")),
			fmt.Sprintf("<u>Top %d</u>", topMiners),
		)
		for i, m := range s.Miners {
			if i == topMiners {
				break
			}
			lines = append(lines, fmt.Sprintf("%d. %s, %d <i>(%s)</i>", i+1, html.EscapeString(m.Name), m.Blocks, percent(m.Blocks, s.Blocks)))
		}
	}

	if len(s.Stakers) > 0 {
		lines = append(lines, "",
			fmt.Sprintf("<b><i>%s%s earned %s</i></b>", emojiStaker, plural(len(s.Stakers), "staker"), Value(s.StakingRewards, price, fiat)),
			fmt.Sprintf("<u>Top %d</u>", topStakers),
		)
		for i, st := range s.Stakers {
			if i == topStakers {
				break
			}
			lines = append(lines, fmt.Sprintf("%d. %s, %d <i>(%s)</i>", i+1, addressLink(st.Address), st.Blocks, percent(st.Blocks, s.Blocks)))
		}
	}

	if s.TokenCount > 0 {
		tokenTxs := 0
		for c, n := range s.TxCounts {
			if c.IsToken() {
				tokenTxs += n
			}
		}
		lines = append(lines, "",
			fmt.Sprintf("<b><i>%s%s from %s</i></b>", emojiTokenSend, plural(tokenTxs, "token tx"), plural(s.TokenCount, "token")),
		)
		if s.TokenCount > len(s.TopTokens) {
			lines = append(lines, fmt.Sprintf("<u>Top %d</u>", len(s.TopTokens)))
		}
		for _, t := range s.TopTokens {
			lines = append(lines, tokenLabel(t.TokenID, t.Metadata)+": "+actionBreakdown(t.Actions))
		}
	}

	lines = append(lines, genesisLines(s.Genesis)...)

	if len(s.Apps) > 0 {
		total := 0
		for _, a := range s.Apps {
			total += a.Count
		}
		lines = append(lines, "", fmt.Sprintf("<b><i>%s%s</i></b>", emojiApp, plural(total, "app tx")))
		for _, a := range s.Apps {
			lines = append(lines, fmt.Sprintf("%s: %d", html.EscapeString(a.App), a.Count))
		}
	}
	if n := s.Count(classify.CategoryUnknownApp); n > 0 {
		lines = append(lines, fmt.Sprintf("%s%s", emojiUnknownApp, plural(n, "unknown app tx")))
	}

	if len(s.Notable) > 0 {
		lines = append(lines, "", fmt.Sprintf("<b>%s moved %s</b>", emojiXecSend, Value(s.SatoshisMoved, price, fiat)))
		for _, tx := range s.Notable {
			lines = append(lines, notableLine(tx, price, fiat))
		}
	}

	if s.InvalidTokenEntries > 0 {
		lines = append(lines, "", fmt.Sprintf("%s%d invalid token entries", emojiInvalid, s.InvalidTokenEntries))
	}
	return SplitMessages(lines, MaxMessageLength)
}

func percent(n, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", 100*float64(n)/float64(total))
}

// actionBreakdown renders action counts as emoji, e.g. "🎟x3🔥".
func actionBreakdown(actions map[string]int) string {
	var b strings.Builder
	seen := make(map[string]bool, len(actions))
	for _, a := range actionEmojis {
		n := actions[a.txType]
		seen[a.txType] = true
		if n == 0 {
			continue
		}
		b.WriteString(a.emoji)
		if n > 1 {
			fmt.Fprintf(&b, "x%d", n)
		}
	}

	var rest []string
	for txType, n := range actions {
		if !seen[txType] && n > 0 {
			rest = append(rest, fmt.Sprintf("%s x%d", html.EscapeString(txType), n))
		}
	}
	sort.Strings(rest)
	if len(rest) > 0 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.Join(rest, ", "))
	}
	return b.String()
}
