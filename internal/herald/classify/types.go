package classify

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/tokencache"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// CacheFactory returns an empty metadata cache for one classification run.
type CacheFactory func() MetadataCache

type (
	MetadataCache interface {
		Put(tokenID string, meta model.TokenMetadata) error
		GetOrFetch(ctx context.Context, tokenID string, fetch tokencache.FetchFunc) (model.TokenMetadata, error)
	}
	MetadataFetcher interface {
		GetTokenGenesisInfo(ctx context.Context, tokenID string) (model.TokenMetadata, error)
	}
	Metrics interface {
		ObserveDecode(protocol string, err error)
		ObserveTransaction(category string, validEntries, invalidEntries int)
		ObserveBatch(started time.Time)
	}
)
