// Package format renders summaries as Telegram HTML messages.
package format

import (
	"fmt"
	"html"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/address"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/classify"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/protocol"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/summary"
)

// Explorer is the block explorer linked from messages.
const Explorer = "https://explorer.e.cash"

const (
	emojiBlock      = "📦"
	emojiArrowRight = "➡️"
	emojiMiner      = "⛏"
	emojiStaker     = "💰"
	emojiGenesis    = "🧪"
	emojiTokenSend  = "🎟"
	emojiTokenBurn  = "🔥"
	emojiApp        = "🗞"
	emojiUnknownApp = "❓"
	emojiXecSend    = "💸"
	emojiInvalid    = "⚠️"
	emojiMemo       = "🗞"
	emojiAlias      = "👾"
	emojiCashtabMsg = "🖋"
	emojiEncrypted  = "🔏"
	emojiAirdrop    = "🪂"
	emojiSwap       = "🤳"
	emojiPayButton  = "🛒"
	emojiPaywall    = "🧾"
	emojiAuth       = "🔓"
	emojiChat       = "💬"
	emojiFusion     = "⚛️"
	emojiAgora      = "🏦"
)

func appEmoji(p protocol.Protocol) string {
	switch p {
	case protocol.ProtocolMemo:
		return emojiMemo
	case protocol.ProtocolAlias:
		return emojiAlias
	case protocol.ProtocolCashtabMsg:
		return emojiCashtabMsg
	case protocol.ProtocolCashtabEncrypted:
		return emojiEncrypted
	case protocol.ProtocolAirdrop:
		return emojiAirdrop
	case protocol.ProtocolSwap:
		return emojiSwap
	case protocol.ProtocolPayButton:
		return emojiPayButton
	case protocol.ProtocolPaywall:
		return emojiPaywall
	case protocol.ProtocolAuthentication:
		return emojiAuth
	case protocol.ProtocolECashChat:
		return emojiChat
	case protocol.ProtocolFusion:
		return emojiFusion
	case protocol.ProtocolAgora:
		return emojiAgora
	default:
		return emojiApp
	}
}

func link(kind, id, text string) string {
	return fmt.Sprintf(`<a href="%s/%s/%s">%s</a>`, Explorer, kind, id, html.EscapeString(text))
}

func addressLink(addr string) string {
	if addr == "" {
		return "unknown"
	}
	if _, _, _, err := address.Decode(addr, address.Prefix); err != nil {
		return html.EscapeString(addr)
	}
	return link("address", addr, preview(addr))
}

// preview shortens a cashaddr to the first and last three characters of its payload.
func preview(addr string) string {
	body := addr
	if i := strings.LastIndexByte(addr, ':'); i >= 0 {
		body = addr[i+1:]
	}
	if len(body) <= 6 {
		return body
	}
	return body[:3] + "..." + body[len(body)-3:]
}

func tokenLabel(tokenID string, meta model.TokenMetadata) string {
	name := meta.TokenName
	if name == "" {
		name = meta.TokenTicker
	}
	if name == "" {
		name = classify.PlaceholderMetadata(tokenID).TokenName
	}
	label := link("tx", tokenID, name)
	if meta.TokenTicker != "" && meta.TokenTicker != name {
		label += " (" + html.EscapeString(meta.TokenTicker) + ")"
	}
	return label
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%s %ss", Group(fmt.Sprint(n)), word)
}

func priceLines(s summary.Summary) []string {
	if len(s.Prices) == 0 {
		return nil
	}
	var lines []string
	for _, p := range s.Prices {
		lines = append(lines, fmt.Sprintf("1 %s = %s", html.EscapeString(p.Ticker), Price(p.Price, p.Fiat)))
	}
	return lines
}

func xecPrice(s summary.Summary) (float64, string) {
	p, ok := s.XECPrice()
	if !ok {
		return 0, ""
	}
	return p.Price, p.Fiat
}

func appLine(tx classify.ClassifiedTransaction) string {
	for _, a := range tx.ParsedActions {
		msg, ok := a.(protocol.AppMessage)
		if !ok {
			continue
		}
		line := appEmoji(msg.App) + link("tx", tx.TxID, msg.App.Name())
		if msg.Action != "" {
			line += ", " + html.EscapeString(msg.Action)
		}
		if msg.Message != "" {
			line += ": " + html.EscapeString(msg.Message)
		}
		return line
	}
	if tx.Failure != nil {
		return emojiInvalid + link("tx", tx.TxID, tx.App) + ": " + html.EscapeString(tx.Failure.Reason)
	}
	return emojiUnknownApp + link("tx", tx.TxID, "Unknown App")
}
