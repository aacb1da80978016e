package price

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is the CoinGecko simple price endpoint.
const DefaultBaseURL = "https://api.coingecko.com/api/v3/simple/price"

// Crypto pairs a display ticker with its CoinGecko id.
type Crypto struct {
	Ticker string
	Slug   string
}

// Config selects what GetPrices asks for.
type Config struct {
	BaseURL   string
	Fiat      string
	Cryptos   []Crypto
	Precision int
}

// DefaultConfig quotes XEC, BTC and ETH in USD.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Fiat:    "usd",
		Cryptos: []Crypto{
			{Ticker: "XEC", Slug: "ecash"},
			{Ticker: "BTC", Slug: "bitcoin"},
			{Ticker: "ETH", Slug: "ethereum"},
		},
		Precision: 8,
	}
}

// ParseCryptos reads TICKER:slug pairs, e.g. "XEC:ecash".
func ParseCryptos(pairs []string) ([]Crypto, error) {
	cryptos := make([]Crypto, 0, len(pairs))
	for _, pair := range pairs {
		ticker, slug, ok := strings.Cut(pair, ":")
		if !ok || ticker == "" || slug == "" {
			return nil, fmt.Errorf("crypto %q: want TICKER:slug", pair)
		}
		cryptos = append(cryptos, Crypto{Ticker: strings.ToUpper(ticker), Slug: strings.ToLower(slug)})
	}
	return cryptos, nil
}
