package ecash

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/protocol"
	"github.com/goodnatureofminers/blockinsight7000-herald/pkg/workerpool"
	"go.uber.org/zap"
)

// prevTx is a spent transaction. vin is only known when the transaction came
// from the node; the previous output source serves outputs alone.
type prevTx struct {
	outputs   []model.RawOutput
	vin       []btcjson.Vin
	hasInputs bool

	declared map[int]model.TokenInfo
	decoded  bool
}

// declaredColors returns the coloring output 0 claims, without checking that
// the inputs back it.
func (p *prevTx) declaredColors(txid string) map[int]model.TokenInfo {
	if !p.decoded {
		p.decoded = true
		if len(p.outputs) > 0 {
			// Decode errors still leave the sections that did decode.
			d, _ := protocol.Decode(p.outputs[0].ScriptHex)
			if d.HasToken() {
				p.declared = protocol.ColorOutputs(txid, d, len(p.outputs))
			}
		}
	}
	return p.declared
}

// needsInputs reports whether the coloring of txid can only be trusted after
// looking at what its inputs carried.
func (p *prevTx) needsInputs(txid string) bool {
	for _, info := range p.declaredColors(txid) {
		if info.TokenID != txid || isChild(info.TokenType) {
			return true
		}
	}
	return false
}

// resolvePrevOutputs returns the colored outputs of every transaction spent by
// txs. Spends within txs are served locally, the rest from the previous output
// source and then the node.
//
// A spent transaction only keeps the coloring its own inputs can back, so a
// SEND without token inputs colors nothing. Those inputs are checked one hop
// deep: their coloring is taken as declared.
func (i *Indexer) resolvePrevOutputs(ctx context.Context, txs []btcjson.TxRawResult) (map[string][]model.RawOutput, error) {
	known := make(map[string]*prevTx, len(txs))
	for _, tx := range txs {
		outputs, err := buildOutputs(tx)
		if err != nil {
			return nil, err
		}
		known[tx.Txid] = &prevTx{outputs: outputs, vin: tx.Vin, hasInputs: true}
	}

	spent := spentTxids(txs)
	if err := i.loadPrev(ctx, spent, known, false); err != nil {
		return nil, err
	}

	var (
		unverified []btcjson.TxRawResult
		needed     []string
	)
	for _, txid := range spent {
		if known[txid].needsInputs(txid) {
			needed = append(needed, txid)
		}
	}
	if err := i.loadPrev(ctx, needed, known, true); err != nil {
		return nil, err
	}
	for _, txid := range needed {
		unverified = append(unverified, btcjson.TxRawResult{Txid: txid, Vin: known[txid].vin})
	}
	if err := i.loadPrev(ctx, spentTxids(unverified), known, false); err != nil {
		return nil, err
	}

	prev := make(map[string][]model.RawOutput, len(spent))
	for _, txid := range spent {
		outputs, err := i.coloredOutputs(txid, known)
		if err != nil {
			return nil, err
		}
		prev[txid] = outputs
	}
	return prev, nil
}

// loadPrev makes sure known holds every txid. With inputs set, transactions
// served by the source without their inputs are fetched again from the node.
func (i *Indexer) loadPrev(ctx context.Context, txids []string, known map[string]*prevTx, inputs bool) error {
	var missing []string
	for _, txid := range txids {
		if p, ok := known[txid]; !ok || (inputs && !p.hasInputs) {
			missing = append(missing, txid)
		}
	}
	if !inputs {
		missing = i.fromSource(ctx, missing, known)
	}
	if len(missing) == 0 {
		return nil
	}

	fetched, err := workerpool.Map(ctx, i.workers, missing, func(ctx context.Context, txid string) (*prevTx, error) {
		src, err := i.rawTransaction(ctx, txid)
		if err != nil {
			return nil, err
		}
		outputs, err := buildOutputs(*src)
		if err != nil {
			return nil, err
		}
		return &prevTx{outputs: outputs, vin: src.Vin, hasInputs: true}, nil
	}, func() {
		i.logger.Warn("previous output fetch cancelled", zap.Int("txids", len(missing)))
	})
	if err != nil {
		return fmt.Errorf("fetch previous transactions: %w", err)
	}
	for idx, txid := range missing {
		known[txid] = fetched[idx]
	}
	return nil
}

// fromSource fills known from the configured source and returns the txids it
// could not serve. Source errors are logged and everything falls back to RPC.
func (i *Indexer) fromSource(ctx context.Context, txids []string, known map[string]*prevTx) []string {
	if i.prevOutputs == nil || len(txids) == 0 {
		return txids
	}
	found, err := i.prevOutputs.PrevOutputs(ctx, txids)
	if err != nil {
		i.logger.Warn("previous output source failed, falling back to rpc",
			zap.Int("txids", len(txids)), zap.Error(err))
		return txids
	}

	rest := make([]string, 0, len(txids))
	for _, txid := range txids {
		outputs := found[txid]
		if len(outputs) == 0 {
			rest = append(rest, txid)
			continue
		}
		known[txid] = &prevTx{outputs: outputs}
	}
	i.logger.Debug("previous outputs resolved from source",
		zap.Int("requested", len(txids)), zap.Int("missing", len(rest)))
	return rest
}

// coloredOutputs returns a copy of the outputs of txid carrying the coloring
// its inputs back.
func (i *Indexer) coloredOutputs(txid string, known map[string]*prevTx) ([]model.RawOutput, error) {
	p := known[txid]
	outputs := make([]model.RawOutput, len(p.outputs))
	copy(outputs, p.outputs)

	colors := p.declaredColors(txid)
	if len(colors) == 0 {
		return outputs, nil
	}
	if p.needsInputs(txid) {
		inputs, err := inputTokens(txid, p.vin, known)
		if err != nil {
			return nil, err
		}
		var dropped []string
		colors, dropped = verifyColors(txid, colors, tokenActions(txid, p), inputs)
		if len(dropped) > 0 {
			i.logger.Debug("unbacked token coloring dropped",
				zap.String("txid", txid), zap.Strings("token_ids", dropped))
		}
	}
	for idx, info := range colors {
		info := info
		outputs[idx].Token = &info
	}
	return outputs, nil
}

// inputTokens returns the declared coloring of every outpoint spent by vin.
func inputTokens(txid string, vin []btcjson.Vin, known map[string]*prevTx) ([]*model.TokenInfo, error) {
	inputs := make([]*model.TokenInfo, len(vin))
	for k, in := range vin {
		if in.IsCoinBase() {
			continue
		}
		src, ok := known[in.Txid]
		if !ok || int(in.Vout) >= len(src.outputs) {
			return nil, fmt.Errorf("tx %s spends %s:%d: %w", txid, in.Txid, in.Vout, ErrMissingPrevOutput)
		}
		if info, colored := src.declaredColors(in.Txid)[int(in.Vout)]; colored {
			inputs[k] = &info
		}
	}
	return inputs, nil
}

// tokenActions lists the tokens txid mints.
func tokenActions(txid string, p *prevTx) map[string]bool {
	minted := make(map[string]bool)
	if len(p.outputs) == 0 {
		return minted
	}
	d, _ := protocol.Decode(p.outputs[0].ScriptHex)
	for _, a := range d.Actions {
		if m, ok := a.(protocol.Mint); ok {
			minted[m.TokenID] = true
		}
	}
	return minted
}

func spentTxids(txs []btcjson.TxRawResult) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	for _, tx := range txs {
		for _, vin := range tx.Vin {
			if vin.IsCoinBase() {
				continue
			}
			if _, dup := seen[vin.Txid]; dup {
				continue
			}
			seen[vin.Txid] = struct{}{}
			out = append(out, vin.Txid)
		}
	}
	return out
}
