package protocol

import (
	"math/big"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
)

// ActionKind is the tag of an Action.
type ActionKind uint8

const (
	KindNone ActionKind = iota
	KindGenesis
	KindMint
	KindSend
	KindBurn
	KindTokenUnknown
	KindAppMessage
	KindAppUnknown
)

func (k ActionKind) String() string {
	switch k {
	case KindNone:
		return "NONE"
	case KindGenesis:
		return "GENESIS"
	case KindMint:
		return "MINT"
	case KindSend:
		return "SEND"
	case KindBurn:
		return "BURN"
	case KindTokenUnknown:
		return "UNKNOWN"
	case KindAppMessage:
		return "APP"
	case KindAppUnknown:
		return "APP_UNKNOWN"
	default:
		return "INVALID"
	}
}

// Action is the result of decoding one protocol payload or EMPP section.
// The set of implementations is closed.
type Action interface {
	Kind() ActionKind
	isAction()
}

// Genesis creates a token. The token id is the id of the transaction carrying it.
type Genesis struct {
	TokenType  model.TokenType
	Ticker     string
	Name       string
	URL        string
	Hash       string
	Data       string
	AuthPubkey string
	Decimals   uint8
	// Atoms are assigned to outputs 1..len(Atoms). SLP carries a single entry.
	Atoms []uint64
	// MintBatonOutIdx is the SLP baton output, 0 when there is none.
	MintBatonOutIdx uint8
	// NumBatons is the ALP baton count, placed right after the atoms outputs.
	NumBatons           uint8
	MintVaultScripthash string
}

// Mint issues additional atoms of an existing token.
type Mint struct {
	TokenType       model.TokenType
	TokenID         string
	Atoms           []uint64
	MintBatonOutIdx uint8
	NumBatons       uint8
}

// Send moves atoms of a token to outputs 1..len(Atoms).
type Send struct {
	TokenType model.TokenType
	TokenID   string
	Atoms     []uint64
}

// Burn declares an intentional burn.
type Burn struct {
	TokenType model.TokenType
	TokenID   string
	Atoms     uint64
}

// TokenUnknown is a token payload of an unsupported type or transaction type.
type TokenUnknown struct {
	TokenType model.TokenType
	TxType    string
	TokenID   string
}

// RefType tells how AppMessage.Ref should be interpreted.
type RefType uint8

const (
	RefNone RefType = iota
	RefTx
	RefP2PKH
	RefURL
)

// AppMessage is a payload of a known app.
type AppMessage struct {
	App     Protocol
	Action  string
	Message string
	TokenID string
	Ref     string
	RefType RefType
	Stack   []string
}

// AppUnknown is a well-formed payload that matched no known prefix.
type AppUnknown struct {
	Stack []string
	// LikelyText is advisory: every pushed byte is printable ASCII.
	LikelyText bool
}

// None marks a transaction without an OP_RETURN at output 0.
type None struct{}

func (Genesis) Kind() ActionKind      { return KindGenesis }
func (Mint) Kind() ActionKind         { return KindMint }
func (Send) Kind() ActionKind         { return KindSend }
func (Burn) Kind() ActionKind         { return KindBurn }
func (TokenUnknown) Kind() ActionKind { return KindTokenUnknown }
func (AppMessage) Kind() ActionKind   { return KindAppMessage }
func (AppUnknown) Kind() ActionKind   { return KindAppUnknown }
func (None) Kind() ActionKind         { return KindNone }

func (Genesis) isAction()      {}
func (Mint) isAction()         {}
func (Send) isAction()         {}
func (Burn) isAction()         {}
func (TokenUnknown) isAction() {}
func (AppMessage) isAction()   {}
func (AppUnknown) isAction()   {}
func (None) isAction()         {}

// SumAtoms adds atoms without overflow.
func SumAtoms(atoms []uint64) *big.Int {
	total := new(big.Int)
	for _, a := range atoms {
		total.Add(total, new(big.Int).SetUint64(a))
	}
	return total
}

// TokenRef returns the token id and type an action refers to. txid is the
// id of the carrying transaction, used for genesis.
func TokenRef(a Action, txid string) (string, model.TokenType, bool) {
	switch v := a.(type) {
	case Genesis:
		return txid, v.TokenType, true
	case Mint:
		return v.TokenID, v.TokenType, true
	case Send:
		return v.TokenID, v.TokenType, true
	case Burn:
		return v.TokenID, v.TokenType, true
	case TokenUnknown:
		return v.TokenID, v.TokenType, v.TokenID != ""
	default:
		return "", model.TokenType{}, false
	}
}
