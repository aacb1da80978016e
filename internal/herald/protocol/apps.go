package protocol

import (
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/script"
)

var memoActions = map[string]string{
	"01": "Set name",
	"02": "Post memo",
	"03": "Reply to memo",
	"04": "Like / tip memo",
	"05": "Set profile text",
	"06": "Follow user",
	"07": "Unfollow user",
	"0a": "Set profile picture",
	"0b": "Repost memo",
	"0c": "Post topic message",
	"0d": "Topic follow",
	"0e": "Topic unfollow",
	"10": "Create poll",
	"13": "Add poll option",
	"14": "Poll vote",
	"16": "Mute user",
	"17": "Unmute user",
	"20": "Link request",
	"21": "Link accept",
	"22": "Link revoke",
	"24": "Send money",
	"26": "Set address alias",
	"30": "Sell tokens",
	"31": "Token buy offer",
	"32": "Attach token sale signature",
	"35": "Pin token post",
}

// memoOffAudience replaces memo messages aimed at another chain's users.
const memoOffAudience = "[check memo.cash for msg]"

var (
	swapClasses = map[string]string{"01": "Signal", "02": "Payment"}
	swapTypes   = map[string]string{
		"01": "SLP Atomic Swap",
		"02": "Multi-Party Escrow",
		"03": "Threshold Crowdfunding",
	}
)

// at returns stack[i] or an empty string.
func at(stack []string, i int) string {
	if i < len(stack) {
		return stack[i]
	}
	return ""
}

func isTokenID(h string) bool {
	return len(h) == 2*tokenIDSize
}

func utf8Text(h string) string {
	return strings.ToValidUTF8(text(h), "\uFFFD")
}

func appStack(lead script.Push, c script.Cursor) ([]string, error) {
	rest, err := restStack(c)
	if err != nil {
		return nil, err
	}
	return append([]string{lead.Data}, rest...), nil
}

func decodeMemo(lead script.Push, c script.Cursor) (Action, error) {
	stack, err := appStack(lead, c)
	if err != nil {
		return nil, err
	}
	code := lead.Data[2:]
	msg := AppMessage{App: ProtocolMemo, Stack: stack, Action: memoActions[code]}
	if msg.Action == "" {
		msg.Action = "Unknown memo action 0x" + code
	}

	switch code {
	case "01", "02", "05", "0d", "0e":
		msg.Message = utf8Text(at(stack, 1))
	case "03", "0b":
		msg.Ref, msg.RefType = at(stack, 1), RefTx
		msg.Message = utf8Text(at(stack, 2))
	case "04":
		msg.Ref, msg.RefType = at(stack, 1), RefTx
	case "06", "07", "16", "17":
		msg.Ref, msg.RefType = at(stack, 1), RefP2PKH
	case "0a":
		msg.Ref, msg.RefType = utf8Text(at(stack, 1)), RefURL
	case "0c":
		msg.Message = utf8Text(at(stack, 1)) + "|" + utf8Text(at(stack, 2))
	case "10":
		msg.Message = utf8Text(at(stack, 3))
	case "13", "14":
		msg.Message = utf8Text(at(stack, 2))
	case "20", "24", "26":
		msg.Ref, msg.RefType = at(stack, 1), RefP2PKH
		msg.Message = utf8Text(at(stack, 2))
	}
	if strings.Contains(msg.Message, "BCH") {
		msg = AppMessage{App: ProtocolMemo, Stack: stack, Message: memoOffAudience}
	}
	return msg, nil
}

func decodeAlias(lead script.Push, c script.Cursor) (Action, error) {
	stack, err := appStack(lead, c)
	if err != nil {
		return nil, err
	}
	msg := AppMessage{App: ProtocolAlias, Stack: stack, Message: "Invalid alias registration"}
	if len(stack) == 4 && stack[1] == "00" {
		msg.Message = utf8Text(stack[2])
	}
	return msg, nil
}

func decodeAirdrop(lead script.Push, c script.Cursor) (Action, error) {
	stack, err := appStack(lead, c)
	if err != nil {
		return nil, err
	}
	msg := AppMessage{App: ProtocolAirdrop, Stack: stack}
	if isTokenID(at(stack, 1)) {
		msg.TokenID = stack[1]
	}
	if at(stack, 2) == cashtabMsgPrefix {
		msg.Message = utf8Text(at(stack, 3))
	}
	return msg, nil
}

func decodeCashtabMsg(lead script.Push, c script.Cursor) (Action, error) {
	stack, err := appStack(lead, c)
	if err != nil {
		return nil, err
	}
	msg := AppMessage{App: ProtocolCashtabMsg, Stack: stack, Message: "Invalid Cashtab Msg"}
	if len(stack) >= 2 {
		msg.Message = utf8Text(stack[1])
	}
	return msg, nil
}

func decodeCashtabEncrypted(lead script.Push, c script.Cursor) (Action, error) {
	stack, err := appStack(lead, c)
	if err != nil {
		return nil, err
	}
	return AppMessage{App: ProtocolCashtabEncrypted, Stack: stack, Message: "Encrypted message"}, nil
}

func decodeFusion(lead script.Push, c script.Cursor) (Action, error) {
	stack, err := appStack(lead, c)
	if err != nil {
		return nil, err
	}
	return AppMessage{App: ProtocolFusion, Stack: stack}, nil
}

func decodeSwap(lead script.Push, c script.Cursor) (Action, error) {
	stack, err := appStack(lead, c)
	if err != nil {
		return nil, err
	}
	msg := AppMessage{App: ProtocolSwap, Stack: stack}
	if len(stack) < 3 {
		msg.Message = "Invalid SWaP"
		return msg, nil
	}

	class, ok := swapClasses[stack[1]]
	if !ok {
		msg.Message = "Invalid SWaP class 0x" + stack[1]
		return msg, nil
	}
	kind, ok := swapTypes[stack[2]]
	if !ok {
		kind = "Unknown type 0x" + stack[2]
	}
	msg.Action = class + "|" + kind

	if stack[1] == "01" && stack[2] == "01" {
		if isTokenID(at(stack, 3)) {
			msg.TokenID = stack[3]
		}
		msg.Message = text(at(stack, 4))
	}
	return msg, nil
}

func decodePayButton(lead script.Push, c script.Cursor) (Action, error) {
	stack, err := appStack(lead, c)
	if err != nil {
		return nil, err
	}
	msg := AppMessage{App: ProtocolPayButton, Stack: stack}
	switch {
	case len(stack) < 3:
		msg.Message = "[off spec]"
	case stack[1] != "00":
		msg.Message = "Unsupported version: 0x" + stack[1]
	case stack[2] == "00":
		msg.Message = "no data"
	default:
		msg.Message = utf8Text(stack[2])
	}
	return msg, nil
}

func decodePaywall(lead script.Push, c script.Cursor) (Action, error) {
	stack, err := appStack(lead, c)
	if err != nil {
		return nil, err
	}
	msg := AppMessage{App: ProtocolPaywall, Stack: stack}
	switch {
	case len(stack) != 2:
		msg.Message = "[off spec paywall payment]"
	case !isTokenID(stack[1]):
		msg.Message = "Invalid paywall article txid"
	default:
		msg.Message = "Article paywall payment"
		msg.Ref, msg.RefType = stack[1], RefTx
	}
	return msg, nil
}

func decodeAuthentication(lead script.Push, c script.Cursor) (Action, error) {
	stack, err := appStack(lead, c)
	if err != nil {
		return nil, err
	}
	msg := AppMessage{App: ProtocolAuthentication, Stack: stack}
	switch {
	case len(stack) != 2:
		msg.Message = "[off spec eCashChat authentication]"
	case stack[1] == "00":
		msg.Message = "Invalid eCashChat authentication identifier"
	default:
		msg.Message = "eCashChat authentication via dust tx"
	}
	return msg, nil
}

func decodeECashChat(lead script.Push, c script.Cursor) (Action, error) {
	stack, err := appStack(lead, c)
	if err != nil {
		return nil, err
	}
	msg := AppMessage{App: ProtocolECashChat, Stack: stack, Message: "Invalid eCashChat"}
	if len(stack) >= 2 {
		msg.Message = utf8Text(stack[len(stack)-1])
	}
	return msg, nil
}
