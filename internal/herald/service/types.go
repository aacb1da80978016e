package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/classify"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/price"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/telegram"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	HeightFetcher interface {
		Fetch(ctx context.Context) ([]uint64, error)
		Commit(height uint64)
	}
	BlockProcessor interface {
		Process(ctx context.Context, height uint64) (int, error)
	}
	ChainSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		BlockHeader(ctx context.Context, height uint64) (model.Block, error)
		GetBlockTransactions(ctx context.Context, height uint64) (model.Block, []model.RawTransaction, error)
	}
	Classifier interface {
		ClassifyBatch(ctx context.Context, txs []model.RawTransaction, workers int) ([]classify.ClassifiedTransaction, error)
	}
	PriceSource interface {
		GetPrices(ctx context.Context, cfg price.Config) ([]model.Price, error)
	}
	Delivery interface {
		Send(ctx context.Context, chatID string, msgs []string) []telegram.DeliveryResult
	}
	BlockHeraldMetrics interface {
		ObserveFetchHeight(err error, started time.Time)
		ObserveProcessBlock(err error, height uint64, txs int, started time.Time)
	}
	DailySummaryMetrics interface {
		ObserveRun(err error, started time.Time)
	}
)
