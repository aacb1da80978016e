package model

// RawOutput is a transaction output as reported by the indexer.
// Token is only populated for spent outputs (inputs), where it carries the
// coloring of the previous output.
type RawOutput struct {
	Value     int64
	ScriptHex string
	Token     *TokenInfo
}

// RawInput references a spent output.
type RawInput struct {
	PrevTxID  string
	PrevIndex uint32
	ScriptHex string
	Output    RawOutput
}

// RawTransaction is an immutable transaction snapshot.
type RawTransaction struct {
	TxID          string
	Inputs        []RawInput
	Outputs       []RawOutput
	IsCoinbase    bool
	BlockHeight   uint64
	TimeFirstSeen int64
	Size          uint32
}

// Block describes a confirmed block header.
type Block struct {
	Height    uint64
	Hash      string
	Timestamp int64
	TxCount   int
}
