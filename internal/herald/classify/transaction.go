package classify

import (
	"math/big"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/protocol"
)

// Category is the top-level classification of a transaction.
type Category uint8

const (
	CategoryReceived Category = iota
	CategorySend
	CategoryCoinbase
	CategoryTokenGenesis
	CategoryTokenMint
	CategoryTokenSend
	CategoryTokenBurn
	CategoryTokenUnknown
	CategoryApp
	CategoryUnknownApp
)

func (c Category) String() string {
	switch c {
	case CategoryReceived:
		return "received"
	case CategorySend:
		return "send"
	case CategoryCoinbase:
		return "coinbase"
	case CategoryTokenGenesis:
		return "token_genesis"
	case CategoryTokenMint:
		return "token_mint"
	case CategoryTokenSend:
		return "token_send"
	case CategoryTokenBurn:
		return "token_burn"
	case CategoryTokenUnknown:
		return "token_unknown"
	case CategoryApp:
		return "app"
	case CategoryUnknownApp:
		return "unknown_app"
	default:
		return "invalid"
	}
}

// IsToken reports whether c is one of the token categories.
func (c Category) IsToken() bool {
	return c >= CategoryTokenGenesis && c <= CategoryTokenUnknown
}

// XecTxType tells whether a tracked script funded the transaction.
type XecTxType string

const (
	Sent     XecTxType = "Sent"
	Received XecTxType = "Received"
)

// Token entry tx types.
const (
	TxTypeGenesis = "GENESIS"
	TxTypeMint    = "MINT"
	TxTypeSend    = "SEND"
	TxTypeBurn    = "BURN"
	TxTypeUnknown = "UNKNOWN"
	TxTypeNone    = "NONE"
)

// TokenEntry is the effect of a transaction on one token.
type TokenEntry struct {
	TokenID     string
	TokenType   model.TokenType
	TxType      string
	IsInvalid   bool
	BurnSummary string
	// Err matches ErrInvalidColoring when quantities do not balance.
	Err error
	// ActualBurnAmount and IntentionalBurn are never nil nor negative.
	ActualBurnAmount *big.Int
	IntentionalBurn  *big.Int
	BurnsMintBatons  bool
	GroupTokenID     string
	// Atoms is the total colored into outputs.
	Atoms         *big.Int
	Metadata      model.TokenMetadata
	DisplayAmount string
}

// Recipient is a non OP_RETURN output.
type Recipient struct {
	Script  string
	Address string
	Value   int64
}

// Staker is the staking reward output of a coinbase.
type Staker struct {
	Script  string
	Address string
	Reward  int64
}

// CoinbaseInfo annotates a coinbase transaction.
type CoinbaseInfo struct {
	Miner       string
	Staker      *Staker
	MinerFund   int64
	TotalReward int64
}

// ClassifiedTransaction is the result of Classify.
type ClassifiedTransaction struct {
	TxID          string
	Category      Category
	XecTxType     XecTxType
	SatoshisSent  int64
	Recipients    []Recipient
	Protocol      protocol.Protocol
	ParsedActions []protocol.Action
	TokenEntries  []TokenEntry
	Tx            *model.RawTransaction
	Coinbase      *CoinbaseInfo
	// App is the display name of the app protocol, if any.
	App     string
	Failure *protocol.DecodeFailure
}

// InvalidEntries counts token entries flagged invalid.
func (c ClassifiedTransaction) InvalidEntries() int {
	n := 0
	for _, e := range c.TokenEntries {
		if e.IsInvalid {
			n++
		}
	}
	return n
}
