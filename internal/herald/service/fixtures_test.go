package service

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/classify"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/telegram"
)

const (
	testChat  = "-100123"
	blockHash = "000000000000000001b9f3e4a3f1d5b7b0c1c7e0a5f0c3b2d4e6f8a0b2c4d6e8"
)

var errUnavailable = errors.New("unavailable")

func testBlock(height uint64, ts int64) model.Block {
	return model.Block{Height: height, Hash: blockHash, Timestamp: ts, TxCount: 2}
}

func rawTxs(height uint64) []model.RawTransaction {
	return []model.RawTransaction{
		{TxID: "cb", IsCoinbase: true, BlockHeight: height},
		{TxID: "tx", BlockHeight: height, TimeFirstSeen: 1},
	}
}

func coinbaseTx(height uint64, miner string) classify.ClassifiedTransaction {
	return classify.ClassifiedTransaction{
		TxID:     "cb",
		Category: classify.CategoryCoinbase,
		Tx:       &model.RawTransaction{TxID: "cb", IsCoinbase: true, BlockHeight: height},
		Coinbase: &classify.CoinbaseInfo{Miner: miner},
	}
}

// deliveredAll acknowledges every message.
func deliveredAll(_ context.Context, _ string, msgs []string) []telegram.DeliveryResult {
	out := make([]telegram.DeliveryResult, len(msgs))
	for i := range msgs {
		out[i] = telegram.DeliveryResult{Index: i, MessageID: int64(100 + i)}
	}
	return out
}

// deliveredNone fails every message.
func deliveredNone(_ context.Context, _ string, msgs []string) []telegram.DeliveryResult {
	out := make([]telegram.DeliveryResult, len(msgs))
	for i := range msgs {
		out[i] = telegram.DeliveryResult{Index: i, Err: telegram.ErrDeliveryFailed}
	}
	return out
}
