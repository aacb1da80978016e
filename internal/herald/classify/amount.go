package classify

import (
	"math/big"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/shopspring/decimal"
)

// DisplayAmount renders atoms with the token's decimals, e.g. 3000000000.000000000.
func DisplayAmount(atoms *big.Int, decimals uint8) string {
	if atoms == nil {
		atoms = new(big.Int)
	}
	return decimal.NewFromBigInt(atoms, -int32(decimals)).StringFixed(int32(decimals))
}

// PlaceholderMetadata stands in for metadata that could not be fetched.
func PlaceholderMetadata(tokenID string) model.TokenMetadata {
	short := tokenID
	if len(tokenID) > 6 {
		short = tokenID[:3] + "..." + tokenID[len(tokenID)-3:]
	}
	return model.TokenMetadata{TokenTicker: short, TokenName: short, Placeholder: true}
}
