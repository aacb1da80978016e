package format

import (
	"fmt"
	"html"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/classify"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/summary"
)

// BlockMessages renders a block summary, split to fit MaxMessageLength.
func BlockMessages(s summary.Summary) []string {
	price, fiat := xecPrice(s)

	miner := "unknown"
	if len(s.Miners) > 0 {
		miner = s.Miners[0].Name
	}
	lines := []string{fmt.Sprintf("%s%s | %s | %s",
		emojiBlock,
		link("block", s.Block.Hash, Group(fmt.Sprint(s.Block.Height))),
		plural(s.TxCount, "tx"),
		html.EscapeString(miner),
	)}
	if p, ok := s.XECPrice(); ok {
		lines = append(lines, fmt.Sprintf("1 XEC = %s", Price(p.Price, p.Fiat)))
	}
	if len(s.Stakers) > 0 {
		st := s.Stakers[0]
		lines = append(lines, fmt.Sprintf("%s%s, %s", emojiStaker, addressLink(st.Address), Value(st.Rewards, price, fiat)))
	}

	lines = append(lines, genesisLines(s.Genesis)...)

	if s.TokenCount > 0 {
		lines = append(lines, "", fmt.Sprintf("<b>%s</b>", plural(s.TokenCount, "token")))
		for _, t := range s.TopTokens {
			lines = append(lines, fmt.Sprintf("%s%s: %s", emojiTokenSend, tokenLabel(t.TokenID, t.Metadata), plural(t.TxCount, "tx")))
		}
		if hidden := s.TokenCount - len(s.TopTokens); hidden > 0 {
			lines = append(lines, fmt.Sprintf("and %d more", hidden))
		}
	}

	if len(s.Burns) > 0 {
		lines = append(lines, "", fmt.Sprintf("<b>%s</b>", plural(len(s.Burns), "token burn tx")))
		for _, tx := range s.Burns {
			lines = append(lines, burnLines(tx)...)
		}
	}

	if len(s.AppTxs) > 0 {
		lines = append(lines, "", fmt.Sprintf("<b>%s</b>", plural(len(s.AppTxs), "app tx")))
		for _, tx := range s.AppTxs {
			lines = append(lines, appLine(tx))
		}
	}
	if n := s.Count(classify.CategoryUnknownApp); n > 0 {
		lines = append(lines, fmt.Sprintf("%s%s", emojiUnknownApp, plural(n, "unknown app tx")))
	}

	if xecTxs := s.Count(classify.CategorySend) + s.Count(classify.CategoryReceived); xecTxs > 0 {
		lines = append(lines, "", fmt.Sprintf("<b>%s totaling %s</b>", plural(xecTxs, "eCash tx"), Value(s.SatoshisMoved, price, fiat)))
		for _, tx := range s.Notable {
			lines = append(lines, notableLine(tx, price, fiat))
		}
	}

	if s.InvalidTokenEntries > 0 {
		lines = append(lines, "", fmt.Sprintf("%s%d invalid token entries", emojiInvalid, s.InvalidTokenEntries))
	}
	return SplitMessages(lines, MaxMessageLength)
}

func genesisLines(txs []classify.ClassifiedTransaction) []string {
	if len(txs) == 0 {
		return nil
	}
	lines := []string{"", fmt.Sprintf("<b>%s</b>", plural(len(txs), "new token"))}
	for _, tx := range txs {
		for _, e := range tx.TokenEntries {
			if e.TxType != classify.TxTypeGenesis {
				continue
			}
			line := emojiGenesis + tokenLabel(e.TokenID, e.Metadata)
			if e.Metadata.URL != "" {
				line += fmt.Sprintf(` <a href="%s">[doc]</a>`, html.EscapeString(e.Metadata.URL))
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func burnLines(tx classify.ClassifiedTransaction) []string {
	var lines []string
	for _, e := range tx.TokenEntries {
		if e.ActualBurnAmount == nil || e.ActualBurnAmount.Sign() == 0 {
			continue
		}
		ticker := e.Metadata.TokenTicker
		if ticker == "" {
			ticker = classify.PlaceholderMetadata(e.TokenID).TokenTicker
		}
		line := fmt.Sprintf("%s%s %s burned",
			emojiTokenBurn,
			link("tx", tx.TxID, TokenAmount(classify.DisplayAmount(e.ActualBurnAmount, e.Metadata.Decimals))),
			html.EscapeString(ticker),
		)
		if e.IsInvalid && e.BurnSummary != "" {
			line += " <i>(" + html.EscapeString(e.BurnSummary) + ")</i>"
		}
		lines = append(lines, line)
	}
	return lines
}

func notableLine(tx classify.ClassifiedTransaction, price float64, fiat string) string {
	line := emojiXecSend + link("tx", tx.TxID, Value(tx.SatoshisSent, price, fiat))
	if len(tx.Recipients) > 0 {
		line += " to " + addressLink(tx.Recipients[0].Address)
		if more := len(tx.Recipients) - 1; more > 0 {
			line += fmt.Sprintf(" and %d more", more)
		}
	}
	return line
}
