package tokencache

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveLookup(hit bool)
		ObserveFetch(err error, started time.Time)
	}
	// Fetcher resolves metadata for a token the cache has not seen yet.
	Fetcher interface {
		GetTokenGenesisInfo(ctx context.Context, tokenID string) (model.TokenMetadata, error)
	}
)
