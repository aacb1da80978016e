// Package summary folds classified transactions into block and time window
// reports.
package summary

import (
	"math/big"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/classify"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
)

const (
	DefaultTopTokens = 5
	DefaultNotable   = 3
)

// Options tune the size of ranked lists. Prices is passed through as is.
type Options struct {
	TopTokens int
	Notable   int
	Prices    []model.Price
}

// TokenActivity is the activity of one token within a summary.
type TokenActivity struct {
	TokenID   string
	TokenType model.TokenType
	Metadata  model.TokenMetadata
	// TxCount counts transactions touching the token, once per transaction.
	TxCount int
	// Actions counts entries by tx type (GENESIS, SEND, ...).
	Actions     map[string]int
	Invalid     int
	BurnedAtoms *big.Int
}

// AppActivity counts transactions of one app.
type AppActivity struct {
	App   string
	Count int
}

// StakerActivity tallies staking rewards won by one address.
type StakerActivity struct {
	Address string
	Blocks  int
	Rewards int64
}

// MinerActivity tallies blocks found by one miner.
type MinerActivity struct {
	Name   string
	Blocks int
}

// Summary is the report built by Aggregate. It is not modified afterwards.
type Summary struct {
	PeriodLabel string
	Kind        Kind
	Block       model.Block
	Start       time.Time
	End         time.Time

	TxCount  int
	TxCounts map[classify.Category]int
	// Blocks counts coinbase transactions, one per block.
	Blocks        int
	SatoshisMoved int64

	TopTokens []TokenActivity
	// TokenCount is the number of distinct tokens, TopTokens holds the first K.
	TokenCount int
	Notable    []classify.ClassifiedTransaction
	Genesis    []classify.ClassifiedTransaction
	// AppTxs lists app transactions in processing order.
	AppTxs []classify.ClassifiedTransaction
	// Burns lists transactions with at least one token entry that burned atoms.
	Burns []classify.ClassifiedTransaction
	Apps  []AppActivity

	InvalidTokenEntries int
	StakingRewards      int64
	Stakers             []StakerActivity
	Miners              []MinerActivity

	// Prices is nil when no quote was available.
	Prices []model.Price
}

// Count returns the number of transactions of category c.
func (s Summary) Count(c classify.Category) int {
	return s.TxCounts[c]
}

// XECPrice returns the XEC quote, if any.
func (s Summary) XECPrice() (model.Price, bool) {
	for _, p := range s.Prices {
		if p.Ticker == "XEC" {
			return p, true
		}
	}
	return model.Price{}, false
}
