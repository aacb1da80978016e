// Package ecash reads blocks and transactions from an eCash node over JSON-RPC.
package ecash

import (
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/pkg/safe"
	"github.com/shopspring/decimal"
)

// XecToSatoshis converts an RPC amount in XEC (two decimals) to satoshis.
func XecToSatoshis(value float64) (int64, error) {
	sats := decimal.NewFromFloat(value).Shift(2)
	if sats.IsNegative() {
		return 0, fmt.Errorf("negative amount: %s", sats)
	}
	if !sats.IsInteger() {
		return 0, fmt.Errorf("amount %s XEC below satoshi precision", decimal.NewFromFloat(value))
	}
	if !sats.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %s sats overflows int64", sats)
	}
	return sats.IntPart(), nil
}

func buildOutputs(src btcjson.TxRawResult) ([]model.RawOutput, error) {
	outputs := make([]model.RawOutput, len(src.Vout))
	for i, vout := range src.Vout {
		if int(vout.N) != i {
			return nil, fmt.Errorf("tx %s output %d reported at index %d", src.Txid, vout.N, i)
		}
		value, err := XecToSatoshis(vout.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d value: %w", src.Txid, i, err)
		}
		outputs[i] = model.RawOutput{Value: value, ScriptHex: vout.ScriptPubKey.Hex}
	}
	return outputs, nil
}

// buildTransaction maps a verbose RPC transaction onto model.RawTransaction.
// prev must hold the colored outputs of every transaction spent by src.
func buildTransaction(src btcjson.TxRawResult, height uint64, blockTime int64, prev map[string][]model.RawOutput) (model.RawTransaction, error) {
	outputs, err := buildOutputs(src)
	if err != nil {
		return model.RawTransaction{}, err
	}
	size, err := safe.Uint32(src.Size)
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("tx %s size overflow: %w", src.Txid, err)
	}

	tx := model.RawTransaction{
		TxID:        src.Txid,
		Inputs:      make([]model.RawInput, 0, len(src.Vin)),
		Outputs:     outputs,
		BlockHeight: height,
		Size:        size,
	}
	for _, vin := range src.Vin {
		if vin.IsCoinBase() {
			tx.IsCoinbase = true
			tx.Inputs = append(tx.Inputs, model.RawInput{ScriptHex: vin.Coinbase})
			continue
		}
		in := model.RawInput{PrevTxID: vin.Txid, PrevIndex: vin.Vout}
		if vin.ScriptSig != nil {
			in.ScriptHex = vin.ScriptSig.Hex
		}
		spent := prev[vin.Txid]
		if int(vin.Vout) >= len(spent) {
			return model.RawTransaction{}, fmt.Errorf("tx %s spends %s:%d: %w", src.Txid, vin.Txid, vin.Vout, ErrMissingPrevOutput)
		}
		in.Output = spent[vin.Vout]
		tx.Inputs = append(tx.Inputs, in)
	}

	if !tx.IsCoinbase {
		tx.TimeFirstSeen = src.Time
		if tx.TimeFirstSeen == 0 {
			tx.TimeFirstSeen = blockTime
		}
	}
	return tx, nil
}

func buildHeader(src btcjson.GetBlockHeaderVerboseResult) (model.Block, error) {
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %s height overflow: %w", src.Hash, err)
	}
	return model.Block{Height: height, Hash: src.Hash, Timestamp: src.Time}, nil
}
