package ecash

import (
	"context"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/protocol"
	"github.com/goodnatureofminers/blockinsight7000-herald/pkg/safe"
	"go.uber.org/zap"
)

const defaultPrevOutputWorkers = 8

// Indexer serves blocks and transactions with resolved, token colored inputs.
type Indexer struct {
	rpc         RPCClient
	prevOutputs PrevOutputSource
	workers     int
	logger      *zap.Logger
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithPrevOutputSource consults source before the node when resolving spent outputs.
func WithPrevOutputSource(source PrevOutputSource) Option {
	return func(i *Indexer) {
		i.prevOutputs = source
	}
}

// WithWorkers bounds concurrent previous transaction fetches.
func WithWorkers(n int) Option {
	return func(i *Indexer) {
		if n > 0 {
			i.workers = n
		}
	}
}

// NewIndexer constructs an Indexer over rpc.
func NewIndexer(rpc RPCClient, logger *zap.Logger, opts ...Option) (*Indexer, error) {
	if rpc == nil {
		return nil, fmt.Errorf("rpc client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	i := &Indexer{
		rpc:     rpc,
		workers: defaultPrevOutputWorkers,
		logger:  logger.Named("ecash_indexer"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// LatestHeight returns the height of the chain tip.
func (i *Indexer) LatestHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := i.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// BlockHeader returns the header of the block at height. TxCount is left zero.
func (i *Indexer) BlockHeader(ctx context.Context, height uint64) (model.Block, error) {
	hash, err := i.blockHash(ctx, height)
	if err != nil {
		return model.Block{}, err
	}
	header, err := i.rpc.GetBlockHeaderVerbose(hash)
	if err != nil {
		return model.Block{}, fmt.Errorf("get block header %s: %w", hash, err)
	}
	return buildHeader(*header)
}

// GetBlockTransactions returns the block at height and its transactions in block order.
func (i *Indexer) GetBlockTransactions(ctx context.Context, height uint64) (model.Block, []model.RawTransaction, error) {
	hash, err := i.blockHash(ctx, height)
	if err != nil {
		return model.Block{}, nil, err
	}
	src, err := i.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return model.Block{}, nil, fmt.Errorf("get block %s: %w", hash, err)
	}

	block := model.Block{
		Height:    height,
		Hash:      src.Hash,
		Timestamp: src.Time,
		TxCount:   len(src.Tx),
	}
	prev, err := i.resolvePrevOutputs(ctx, src.Tx)
	if err != nil {
		return model.Block{}, nil, fmt.Errorf("block %d: %w", height, err)
	}

	txs := make([]model.RawTransaction, 0, len(src.Tx))
	for _, raw := range src.Tx {
		tx, err := buildTransaction(raw, height, src.Time, prev)
		if err != nil {
			return model.Block{}, nil, fmt.Errorf("block %d: %w", height, err)
		}
		txs = append(txs, tx)
	}
	return block, txs, nil
}

// GetTransaction returns a single transaction with resolved inputs. Unconfirmed
// transactions report height 0.
func (i *Indexer) GetTransaction(ctx context.Context, txid string) (model.RawTransaction, error) {
	src, err := i.rawTransaction(ctx, txid)
	if err != nil {
		return model.RawTransaction{}, err
	}

	var (
		height    uint64
		blockTime = src.Blocktime
	)
	if src.BlockHash != "" {
		hash, err := chainhash.NewHashFromStr(src.BlockHash)
		if err != nil {
			return model.RawTransaction{}, fmt.Errorf("parse block hash %q: %w", src.BlockHash, err)
		}
		header, err := i.rpc.GetBlockHeaderVerbose(hash)
		if err != nil {
			return model.RawTransaction{}, fmt.Errorf("get block header %s: %w", hash, err)
		}
		block, err := buildHeader(*header)
		if err != nil {
			return model.RawTransaction{}, err
		}
		height = block.Height
	}

	prev, err := i.resolvePrevOutputs(ctx, []btcjson.TxRawResult{*src})
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("tx %s: %w", txid, err)
	}
	return buildTransaction(*src, height, blockTime, prev)
}

// GetTokenGenesisInfo reads the metadata declared by the genesis transaction of tokenID.
func (i *Indexer) GetTokenGenesisInfo(ctx context.Context, tokenID string) (model.TokenMetadata, error) {
	src, err := i.rawTransaction(ctx, tokenID)
	if err != nil {
		return model.TokenMetadata{}, err
	}
	if len(src.Vout) == 0 {
		return model.TokenMetadata{}, fmt.Errorf("token %s: %w", tokenID, ErrNotGenesis)
	}
	decoded, err := protocol.Decode(src.Vout[0].ScriptPubKey.Hex)
	if err != nil {
		return model.TokenMetadata{}, fmt.Errorf("token %s: decode genesis: %w", tokenID, err)
	}
	for _, a := range decoded.Actions {
		g, ok := a.(protocol.Genesis)
		if !ok {
			continue
		}
		meta := model.TokenMetadata{
			TokenTicker: g.Ticker,
			TokenName:   g.Name,
			Decimals:    g.Decimals,
			URL:         g.URL,
			Hash:        g.Hash,
		}
		if isChild(g.TokenType) {
			group, err := i.genesisGroup(ctx, *src)
			if err != nil {
				i.logger.Warn("nft group lookup failed", zap.String("token_id", tokenID), zap.Error(err))
			}
			meta.GroupTokenID = group
		}
		return meta, nil
	}
	return model.TokenMetadata{}, fmt.Errorf("token %s: %w", tokenID, ErrNotGenesis)
}

// genesisGroup returns the NFT1 group token spent at input 0 of a child
// genesis, or "" when input 0 carries none.
func (i *Indexer) genesisGroup(ctx context.Context, genesis btcjson.TxRawResult) (string, error) {
	if len(genesis.Vin) == 0 || genesis.Vin[0].IsCoinBase() {
		return "", nil
	}
	first := genesis.Vin[0]
	src, err := i.rawTransaction(ctx, first.Txid)
	if err != nil {
		return "", err
	}
	outputs, err := buildOutputs(*src)
	if err != nil {
		return "", err
	}
	p := &prevTx{outputs: outputs}
	info, ok := p.declaredColors(first.Txid)[int(first.Vout)]
	if !ok || !isGroup(info.TokenType) || info.IsMintBaton {
		return "", nil
	}
	return info.TokenID, nil
}

func (i *Indexer) blockHash(ctx context.Context, height uint64) (*chainhash.Hash, error) {
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := i.rpc.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	return hash, nil
}

func (i *Indexer) rawTransaction(ctx context.Context, txid string) (*btcjson.TxRawResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("parse txid %q: %w", txid, err)
	}
	src, err := i.rpc.GetRawTransactionVerbose(hash)
	if err != nil {
		return nil, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}
	return src, nil
}
