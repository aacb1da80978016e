package model

// TokenProtocol is the token standard of a token.
type TokenProtocol string

const (
	SLP TokenProtocol = "SLP"
	ALP TokenProtocol = "ALP"
)

// SLP token type numbers.
const (
	SLPFungible  uint8 = 0x01
	SLPMintVault uint8 = 0x02
	SLPNFT1Child uint8 = 0x41
	SLPNFT1Group uint8 = 0x81

	ALPStandard uint8 = 0x00
)

// TokenType identifies a token standard and its type number.
type TokenType struct {
	Protocol TokenProtocol
	Type     string
	Number   uint8
}

// NewTokenType resolves the type name for a protocol and type number.
func NewTokenType(protocol TokenProtocol, number uint8) TokenType {
	t := TokenType{Protocol: protocol, Number: number}
	switch {
	case protocol == SLP && number == SLPFungible:
		t.Type = "SLP_TOKEN_TYPE_FUNGIBLE"
	case protocol == SLP && number == SLPMintVault:
		t.Type = "SLP_TOKEN_TYPE_MINT_VAULT"
	case protocol == SLP && number == SLPNFT1Child:
		t.Type = "SLP_TOKEN_TYPE_NFT1_CHILD"
	case protocol == SLP && number == SLPNFT1Group:
		t.Type = "SLP_TOKEN_TYPE_NFT1_GROUP"
	case protocol == ALP && number == ALPStandard:
		t.Type = "ALP_TOKEN_TYPE_STANDARD"
	case protocol == ALP:
		t.Type = "ALP_TOKEN_TYPE_UNKNOWN"
	default:
		t.Type = "SLP_TOKEN_TYPE_UNKNOWN"
	}
	return t
}

// Known reports whether the type number is supported by its protocol.
func (t TokenType) Known() bool {
	switch t.Protocol {
	case SLP:
		switch t.Number {
		case SLPFungible, SLPMintVault, SLPNFT1Child, SLPNFT1Group:
			return true
		}
	case ALP:
		return t.Number == ALPStandard
	}
	return false
}

// TokenInfo is the coloring of a single output.
type TokenInfo struct {
	TokenID      string
	TokenType    TokenType
	Atoms        uint64
	IsMintBaton  bool
	GroupTokenID string
}

// TokenMetadata is the genesis information of a token.
type TokenMetadata struct {
	TokenTicker  string
	TokenName    string
	Decimals     uint8
	URL          string
	Hash         string
	// GroupTokenID is the NFT1 group of a child token.
	GroupTokenID string
	// Placeholder marks metadata synthesized after a failed lookup.
	Placeholder  bool
}

// Price is a fiat quote for a crypto ticker.
type Price struct {
	Fiat   string
	Price  float64
	Ticker string
}
