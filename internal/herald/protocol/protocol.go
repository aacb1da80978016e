// Package protocol decodes the OP_RETURN payloads found at output 0 of eCash
// transactions: SLP and ALP tokens, EMPP containers and app markers.
package protocol

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/script"
)

// Protocol identifies the protocol a payload or EMPP section was matched to.
type Protocol uint8

const (
	ProtocolNone Protocol = iota
	ProtocolUnknown
	ProtocolSLP
	ProtocolEMPP
	ProtocolALP
	ProtocolAgora
	ProtocolMemo
	ProtocolAlias
	ProtocolAirdrop
	ProtocolCashtabMsg
	ProtocolCashtabEncrypted
	ProtocolFusion
	ProtocolSwap
	ProtocolPayButton
	ProtocolPaywall
	ProtocolAuthentication
	ProtocolECashChat
	protocolCount
)

type scope uint8

const (
	scopeNone scope = iota
	// scopeOutput protocols are matched on the first push after OP_RETURN.
	scopeOutput
	// scopeSection protocols are matched on the leading bytes of an EMPP section.
	scopeSection
)

type matchRule uint8

const (
	matchExact matchRule = iota
	matchOpcode
	matchLeadByte
)

type descriptor struct {
	id     string
	name   string
	scope  scope
	rule   matchRule
	prefix string
	token  bool

	decodeOutput  func(lead script.Push, c script.Cursor) (Action, error)
	decodeSection func(c script.Cursor) (Action, error)
}

const (
	slpLokad             = "534c5000"
	alpLokad             = "534c5032"
	agoraLokad           = "41475230"
	emppMarker           = "50"
	memoPrefix           = "6d"
	aliasPrefix          = "2e786563"
	airdropPrefix        = "64726f70"
	cashtabMsgPrefix     = "00746162"
	cashtabEncPrefix     = "65746162"
	fusionPrefix         = "46555a00"
	swapPrefix           = "53575000"
	payButtonPrefix      = "50415900"
	paywallPrefix        = "70617977"
	authenticationPrefix = "61757468"
	eCashChatPrefix      = "63686174"
)

// descriptors holds one entry per Protocol. EMPP is decoded by Decode itself
// since its sections re-enter this table.
var descriptors = [protocolCount]descriptor{
	ProtocolNone:    {id: "none", name: "None"},
	ProtocolUnknown: {id: "unknown", name: "Unknown App"},
	ProtocolSLP: {
		id: "slp", name: "SLP", scope: scopeOutput, prefix: slpLokad, token: true,
		decodeOutput: decodeSLP,
	},
	ProtocolEMPP: {
		id: "empp", name: "EMPP", scope: scopeOutput, rule: matchOpcode, prefix: emppMarker, token: true,
	},
	ProtocolALP: {
		id: "alp", name: "ALP", scope: scopeSection, prefix: alpLokad, token: true,
		decodeSection: decodeALPSection,
	},
	ProtocolAgora: {
		id: "agora", name: "Agora", scope: scopeSection, prefix: agoraLokad,
		decodeSection: decodeAgoraSection,
	},
	ProtocolMemo: {
		id: "memo", name: "memo", scope: scopeOutput, rule: matchLeadByte, prefix: memoPrefix,
		decodeOutput: decodeMemo,
	},
	ProtocolAlias: {
		id: "alias", name: "Alias (beta)", scope: scopeOutput, prefix: aliasPrefix,
		decodeOutput: decodeAlias,
	},
	ProtocolAirdrop: {
		id: "airdrop", name: "Airdrop", scope: scopeOutput, prefix: airdropPrefix,
		decodeOutput: decodeAirdrop,
	},
	ProtocolCashtabMsg: {
		id: "cashtab_msg", name: "Cashtab Msg", scope: scopeOutput, prefix: cashtabMsgPrefix,
		decodeOutput: decodeCashtabMsg,
	},
	ProtocolCashtabEncrypted: {
		id: "cashtab_encrypted", name: "Encrypted Cashtab Msg", scope: scopeOutput, prefix: cashtabEncPrefix,
		decodeOutput: decodeCashtabEncrypted,
	},
	ProtocolFusion: {
		id: "fusion", name: "CashFusion", scope: scopeOutput, prefix: fusionPrefix,
		decodeOutput: decodeFusion,
	},
	ProtocolSwap: {
		id: "swap", name: "SWaP", scope: scopeOutput, prefix: swapPrefix,
		decodeOutput: decodeSwap,
	},
	ProtocolPayButton: {
		id: "paybutton", name: "PayButton", scope: scopeOutput, prefix: payButtonPrefix,
		decodeOutput: decodePayButton,
	},
	ProtocolPaywall: {
		id: "paywall", name: "Paywall", scope: scopeOutput, prefix: paywallPrefix,
		decodeOutput: decodePaywall,
	},
	ProtocolAuthentication: {
		id: "authentication", name: "Authentication", scope: scopeOutput, prefix: authenticationPrefix,
		decodeOutput: decodeAuthentication,
	},
	ProtocolECashChat: {
		id: "ecashchat", name: "eCashChat", scope: scopeOutput, prefix: eCashChatPrefix,
		decodeOutput: decodeECashChat,
	},
}

// outputOrder is the dispatch order for output payloads; the first match wins.
var outputOrder = [...]Protocol{
	ProtocolSLP,
	ProtocolEMPP,
	ProtocolAlias,
	ProtocolAirdrop,
	ProtocolCashtabMsg,
	ProtocolCashtabEncrypted,
	ProtocolFusion,
	ProtocolSwap,
	ProtocolPayButton,
	ProtocolPaywall,
	ProtocolAuthentication,
	ProtocolECashChat,
	ProtocolMemo,
}

// sectionOrder is the dispatch order for EMPP sections.
var sectionOrder = [...]Protocol{
	ProtocolALP,
	ProtocolAgora,
}

// String returns the protocol identifier used in metrics and logs.
func (p Protocol) String() string {
	if p >= protocolCount {
		return "invalid"
	}
	return descriptors[p].id
}

// Name returns the human readable protocol name.
func (p Protocol) Name() string {
	if p >= protocolCount {
		return "Invalid"
	}
	return descriptors[p].name
}

// IsToken reports whether payloads of p carry token actions.
func (p Protocol) IsToken() bool {
	return p < protocolCount && descriptors[p].token
}

func (d descriptor) matches(lead script.Push) bool {
	switch d.rule {
	case matchOpcode:
		return lead.Opcode == txscript.OP_RESERVED
	case matchLeadByte:
		return !script.IsConstantPush(lead.Opcode) && len(lead.Data) == 4 && strings.HasPrefix(lead.Data, d.prefix)
	default:
		return !script.IsConstantPush(lead.Opcode) && lead.Data == d.prefix
	}
}

func matchOutput(lead script.Push) Protocol {
	for _, p := range outputOrder {
		if descriptors[p].matches(lead) {
			return p
		}
	}
	return ProtocolUnknown
}

func matchSection(section string) Protocol {
	for _, p := range sectionOrder {
		if strings.HasPrefix(section, descriptors[p].prefix) {
			return p
		}
	}
	return ProtocolUnknown
}

// Decoded is the outcome of Decode.
type Decoded struct {
	Protocol Protocol
	Actions  []Action
	// Stack holds the raw pushes after OP_RETURN, or the raw sections of an EMPP payload.
	Stack []string
	// Failures lists EMPP sections of a known protocol that failed to decode.
	Failures []*DecodeFailure
}

// HasToken reports whether any action touches a token.
func (d Decoded) HasToken() bool {
	for _, a := range d.Actions {
		switch a.(type) {
		case Genesis, Mint, Send, Burn, TokenUnknown:
			return true
		}
	}
	for _, f := range d.Failures {
		if f.Protocol.IsToken() {
			return true
		}
	}
	return false
}

// Decode decodes an output script. Scripts that are not OP_RETURN yield a
// single None action. On failure the returned Decoded still carries the
// matched protocol and the raw stack.
func Decode(payloadHex string) (Decoded, error) {
	payloadHex = strings.ToLower(payloadHex)
	if _, err := hex.DecodeString(payloadHex); err != nil {
		return Decoded{Protocol: ProtocolUnknown}, &DecodeFailure{
			Protocol: ProtocolUnknown, Reason: "invalid hex", Err: ErrMalformed,
		}
	}

	c := script.NewCursor(payloadHex)
	op, body, err := c.ConsumeByte()
	if err != nil || op != txscript.OP_RETURN {
		return Decoded{Protocol: ProtocolNone, Actions: []Action{None{}}}, nil
	}
	stack := rawStack(body)
	if body.Empty() {
		return Decoded{Protocol: ProtocolUnknown, Actions: []Action{AppUnknown{}}}, nil
	}

	lead, next, err := body.ConsumeNextPush()
	if err != nil {
		return Decoded{Protocol: ProtocolUnknown, Stack: stack}, asFailure(ProtocolUnknown, err, body.Offset())
	}

	p := matchOutput(lead)
	decoded := Decoded{Protocol: p, Stack: stack}
	switch p {
	case ProtocolEMPP:
		return decodeEMPP(decoded, next)
	case ProtocolUnknown:
		if _, err := script.StackArray(body.Rest()); err != nil {
			return decoded, asFailure(ProtocolUnknown, err, body.Offset())
		}
		decoded.Actions = []Action{AppUnknown{
			Stack:      stack,
			LikelyText: script.ContainsOnlyPrintableASCII(strings.Join(stack, "")),
		}}
		return decoded, nil
	}

	action, err := descriptors[p].decodeOutput(lead, next)
	if err != nil {
		return decoded, asFailure(p, err, next.Offset())
	}
	decoded.Actions = []Action{action}
	return decoded, nil
}

func decodeEMPP(decoded Decoded, c script.Cursor) (Decoded, error) {
	decoded.Stack = nil
	if c.Empty() {
		return decoded, asFailure(ProtocolEMPP, malformedAt(c.Offset(), "EMPP without sections"), c.Offset())
	}
	for !c.Empty() {
		push, next, err := c.ConsumeNextPush()
		if err != nil {
			return decoded, asFailure(ProtocolEMPP, err, c.Offset())
		}
		if push.Data == "" || script.IsConstantPush(push.Opcode) {
			return decoded, asFailure(ProtocolEMPP, malformedAt(push.Offset, "EMPP section must be a non-empty data push"), push.Offset)
		}
		c = next
		decoded.Stack = append(decoded.Stack, push.Data)

		p := matchSection(push.Data)
		if p == ProtocolUnknown {
			continue
		}
		prefix := descriptors[p].prefix
		dataStart := next.Offset() - len(push.Data)/2
		section := script.NewCursorAt(push.Data[len(prefix):], dataStart+len(prefix)/2)
		action, err := descriptors[p].decodeSection(section)
		if err != nil {
			decoded.Failures = append(decoded.Failures, asFailure(p, err, section.Offset()))
			continue
		}
		decoded.Actions = append(decoded.Actions, action)
	}
	return decoded, nil
}

// rawStack collects pushes until the first malformed one.
func rawStack(c script.Cursor) []string {
	var stack []string
	for !c.Empty() {
		push, next, err := c.ConsumeNextPush()
		if err != nil {
			break
		}
		c = next
		if push.Data != "" {
			stack = append(stack, push.Data)
		}
	}
	return stack
}
