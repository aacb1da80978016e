package classify

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/protocol"
)

// tokenFlow totals the colored inputs and outputs of one token.
type tokenFlow struct {
	tokenType model.TokenType
	groupID   string
	in        *big.Int
	inBatons  int
	out       *big.Int
	outBatons int
}

type flows struct {
	byID map[string]*tokenFlow
	// inputOrder lists token ids in the order their first input appears.
	inputOrder []string
}

func newFlows() *flows {
	return &flows{byID: make(map[string]*tokenFlow)}
}

func (f *flows) get(tokenID string, tokenType model.TokenType) *tokenFlow {
	flow, ok := f.byID[tokenID]
	if !ok {
		flow = &tokenFlow{tokenType: tokenType, in: new(big.Int), out: new(big.Int)}
		f.byID[tokenID] = flow
	}
	return flow
}

func collectFlows(tx *model.RawTransaction, colors map[int]model.TokenInfo) *flows {
	f := newFlows()
	for _, in := range tx.Inputs {
		tok := in.Output.Token
		if tok == nil {
			continue
		}
		if _, seen := f.byID[tok.TokenID]; !seen {
			f.inputOrder = append(f.inputOrder, tok.TokenID)
		}
		flow := f.get(tok.TokenID, tok.TokenType)
		if flow.groupID == "" {
			flow.groupID = tok.GroupTokenID
		}
		if tok.IsMintBaton {
			flow.inBatons++
			continue
		}
		flow.in.Add(flow.in, new(big.Int).SetUint64(tok.Atoms))
	}

	idx := make([]int, 0, len(colors))
	for i := range colors {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		tok := colors[i]
		flow := f.get(tok.TokenID, tok.TokenType)
		if tok.IsMintBaton {
			flow.outBatons++
			continue
		}
		flow.out.Add(flow.out, new(big.Int).SetUint64(tok.Atoms))
	}
	return f
}

func newEntry(tokenID string, tokenType model.TokenType, txType string) *TokenEntry {
	return &TokenEntry{
		TokenID:          tokenID,
		TokenType:        tokenType,
		TxType:           txType,
		ActualBurnAmount: new(big.Int),
		IntentionalBurn:  new(big.Int),
		Atoms:            new(big.Int),
	}
}

func (e *TokenEntry) invalidate(err error, summary string) {
	e.IsInvalid = true
	e.Err = err
	e.BurnSummary = summary
}

// buildEntries turns decoded token actions and the input coloring into one
// entry per token touched. Entries follow action order, then unreferenced
// input tokens in input order.
func buildEntries(tx *model.RawTransaction, actions []protocol.Action, colors map[int]model.TokenInfo, failure *protocol.DecodeFailure) []*TokenEntry {
	f := collectFlows(tx, colors)
	var (
		entries []*TokenEntry
		byID    = make(map[string]*TokenEntry)
	)

	for _, a := range actions {
		tokenID, tokenType, ok := protocol.TokenRef(a, tx.TxID)
		if !ok && a.Kind() != protocol.KindTokenUnknown {
			continue
		}
		if e, exists := byID[tokenID]; exists && tokenID != "" {
			mergeAction(e, a)
			continue
		}
		e := newEntry(tokenID, tokenType, entryTxType(a))
		if b, isBurn := a.(protocol.Burn); isBurn {
			e.IntentionalBurn.SetUint64(b.Atoms)
		}
		entries = append(entries, e)
		if tokenID != "" {
			byID[tokenID] = e
		}
		if g, isGenesis := a.(protocol.Genesis); isGenesis {
			e.Metadata = model.TokenMetadata{
				TokenTicker: g.Ticker,
				TokenName:   g.Name,
				Decimals:    g.Decimals,
				URL:         g.URL,
				Hash:        g.Hash,
			}
			linkGroup(tx, e)
			e.Metadata.GroupTokenID = e.GroupTokenID
		}
	}

	for _, e := range entries {
		flow := f.byID[e.TokenID]
		if flow == nil {
			flow = &tokenFlow{in: new(big.Int), out: new(big.Int)}
		}
		if e.GroupTokenID == "" {
			e.GroupTokenID = flow.groupID
		}
		settle(e, flow)
	}

	for _, tokenID := range f.inputOrder {
		if _, referenced := byID[tokenID]; referenced {
			continue
		}
		flow := f.byID[tokenID]
		e := newEntry(tokenID, flow.tokenType, TxTypeNone)
		e.GroupTokenID = flow.groupID
		if consumedByChildGenesis(entries, tokenID) {
			e.IntentionalBurn.SetInt64(1)
		}
		settle(e, flow)
		if failure != nil {
			e.invalidate(failure, parsingFailed(failure))
		}
		entries = append(entries, e)
	}

	if failure != nil && len(entries) == 0 {
		e := newEntry("", model.NewTokenType(failureTokenProtocol(failure), 0), TxTypeUnknown)
		e.invalidate(failure, parsingFailed(failure))
		entries = append(entries, e)
	}
	return entries
}

func entryTxType(a protocol.Action) string {
	switch a.Kind() {
	case protocol.KindGenesis:
		return TxTypeGenesis
	case protocol.KindMint:
		return TxTypeMint
	case protocol.KindSend:
		return TxTypeSend
	case protocol.KindBurn:
		return TxTypeBurn
	default:
		return TxTypeUnknown
	}
}

// mergeAction folds a second action on the same token into its entry: a
// BURN adds to the intentional burn, anything else replaces a BURN tx type.
func mergeAction(e *TokenEntry, a protocol.Action) {
	if b, isBurn := a.(protocol.Burn); isBurn {
		e.IntentionalBurn.Add(e.IntentionalBurn, new(big.Int).SetUint64(b.Atoms))
		return
	}
	if e.TxType == TxTypeBurn {
		e.TxType = entryTxType(a)
	}
}

// linkGroup ties an NFT1 child genesis to the group token spent at input 0.
func linkGroup(tx *model.RawTransaction, e *TokenEntry) {
	if e.TokenType.Protocol != model.SLP || e.TokenType.Number != model.SLPNFT1Child {
		return
	}
	if len(tx.Inputs) > 0 {
		if tok := tx.Inputs[0].Output.Token; tok != nil && isGroup(tok.TokenType) && !tok.IsMintBaton {
			e.GroupTokenID = tok.TokenID
			return
		}
	}
	e.invalidate(ErrInvalidColoring, "NFT1 child GENESIS without a group token at input 0")
}

func isGroup(t model.TokenType) bool {
	return t.Protocol == model.SLP && t.Number == model.SLPNFT1Group
}

func consumedByChildGenesis(entries []*TokenEntry, tokenID string) bool {
	for _, e := range entries {
		if e.TxType == TxTypeGenesis && e.GroupTokenID == tokenID && !e.IsInvalid {
			return true
		}
	}
	return false
}

// settle computes burns and validity of an entry from its flow.
func settle(e *TokenEntry, flow *tokenFlow) {
	e.Atoms.Set(flow.out)
	if e.TxType != TxTypeUnknown && flow.inBatons > 0 && flow.outBatons == 0 {
		e.BurnsMintBatons = true
	}

	switch e.TxType {
	case TxTypeGenesis, TxTypeUnknown:
		return
	case TxTypeSend:
		if flow.out.Cmp(flow.in) > 0 {
			e.ActualBurnAmount.Set(flow.in)
			e.invalidate(
				fmt.Errorf("%w: outputs %s exceed inputs %s", ErrInvalidColoring, flow.out, flow.in),
				fmt.Sprintf("Insufficient token inputs: %s sent, %s available", flow.out, flow.in),
			)
			return
		}
		settleShortfall(e, flow)
	case TxTypeMint:
		if flow.inBatons == 0 {
			e.ActualBurnAmount.Set(flow.in)
			e.invalidate(
				fmt.Errorf("%w: MINT without a mint baton input", ErrInvalidColoring),
				"Missing MINT baton",
			)
			return
		}
		settleShortfall(e, flow)
	case TxTypeBurn, TxTypeNone:
		e.ActualBurnAmount.Set(flow.in)
		if e.ActualBurnAmount.Cmp(e.IntentionalBurn) != 0 {
			e.invalidate(
				fmt.Errorf("%w: burned %s, declared %s", ErrInvalidColoring, e.ActualBurnAmount, e.IntentionalBurn),
				burnSummary(e),
			)
		}
	}
}

func settleShortfall(e *TokenEntry, flow *tokenFlow) {
	shortfall := new(big.Int).Sub(flow.in, flow.out)
	if shortfall.Sign() < 0 {
		shortfall.SetInt64(0)
	}
	e.ActualBurnAmount.Set(shortfall)
	if shortfall.Cmp(e.IntentionalBurn) == 0 {
		return
	}
	e.invalidate(
		fmt.Errorf("%w: %s atoms burned, %s declared", ErrInvalidColoring, shortfall, e.IntentionalBurn),
		burnSummary(e),
	)
}

func burnSummary(e *TokenEntry) string {
	switch {
	case e.IntentionalBurn.Sign() == 0:
		return fmt.Sprintf("Unexpected burn: %s atoms", e.ActualBurnAmount)
	default:
		return fmt.Sprintf("Burn mismatch: %s atoms burned, %s intended", e.ActualBurnAmount, e.IntentionalBurn)
	}
}

func parsingFailed(f *protocol.DecodeFailure) string {
	return "Parsing failed: " + f.Reason
}

func failureTokenProtocol(f *protocol.DecodeFailure) model.TokenProtocol {
	if f.Protocol == protocol.ProtocolSLP {
		return model.SLP
	}
	return model.ALP
}

// tokenFailure returns the first failure that hit a token protocol.
func tokenFailure(err error, d protocol.Decoded) *protocol.DecodeFailure {
	var f *protocol.DecodeFailure
	if errors.As(err, &f) && f.Protocol.IsToken() {
		return f
	}
	for _, sf := range d.Failures {
		if sf.Protocol.IsToken() {
			return sf
		}
	}
	return nil
}
