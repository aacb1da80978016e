// Package classify turns raw eCash transactions into categorized records with
// token entries, burns and app messages.
package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/protocol"
	"github.com/goodnatureofminers/blockinsight7000-herald/pkg/workerpool"
	"go.uber.org/zap"
)

const opReturnPrefix = "6a"

// Classifier classifies transactions. Each batch gets a fresh metadata cache
// that is shared by its workers and dropped when the batch is done.
type Classifier struct {
	newCache CacheFactory
	fetcher  MetadataFetcher
	metrics Metrics
	logger  *zap.Logger

	tracked map[string]struct{}
	miners  []KnownMiner
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithTrackedScripts sets the output scripts owned by the caller. Without
// tracked scripts every transaction counts as Sent and SatoshisSent is the
// total non OP_RETURN output value.
func WithTrackedScripts(scripts ...string) Option {
	return func(c *Classifier) {
		for _, s := range scripts {
			c.tracked[strings.ToLower(s)] = struct{}{}
		}
	}
}

// WithKnownMiners sets the pools used to name coinbase miners.
func WithKnownMiners(miners ...KnownMiner) Option {
	return func(c *Classifier) {
		c.miners = append(c.miners, miners...)
	}
}

// New builds a Classifier.
func New(newCache CacheFactory, fetcher MetadataFetcher, metrics Metrics, logger *zap.Logger, opts ...Option) (*Classifier, error) {
	if newCache == nil {
		return nil, errors.New("metadata cache factory is required")
	}
	if fetcher == nil {
		return nil, errors.New("metadata fetcher is required")
	}
	if metrics == nil {
		return nil, errors.New("classifier metrics is required")
	}
	c := &Classifier{
		newCache: newCache,
		fetcher:  fetcher,
		metrics:  metrics,
		logger:   logger.Named("classifier"),
		tracked:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Classify classifies a single transaction. Only structurally broken
// transactions fail; decode failures are reported on the result.
func (c *Classifier) Classify(ctx context.Context, tx model.RawTransaction) (ClassifiedTransaction, error) {
	return c.classify(ctx, tx, c.newCache())
}

func (c *Classifier) classify(ctx context.Context, tx model.RawTransaction, cache MetadataCache) (ClassifiedTransaction, error) {
	if err := validate(tx); err != nil {
		return ClassifiedTransaction{}, err
	}
	out := ClassifiedTransaction{TxID: tx.TxID, Tx: &tx, Protocol: protocol.ProtocolNone}
	c.fillValue(&out, &tx)

	if tx.IsCoinbase {
		out.Category = CategoryCoinbase
		out.Coinbase = annotateCoinbase(&tx, c.miners)
		c.metrics.ObserveTransaction(out.Category.String(), 0, 0)
		return out, nil
	}

	decoded, decodeErr := protocol.Decode(tx.Outputs[0].ScriptHex)
	c.metrics.ObserveDecode(decoded.Protocol.String(), decodeErr)
	out.Protocol = decoded.Protocol
	out.ParsedActions = decoded.Actions
	out.Failure = firstFailure(decodeErr, decoded)
	if out.Failure != nil {
		c.logger.Debug("decode failed",
			zap.String("txid", tx.TxID),
			zap.Stringer("protocol", out.Failure.Protocol),
			zap.Error(out.Failure),
		)
	}

	colors := protocol.ColorOutputs(tx.TxID, decoded, len(tx.Outputs))
	for _, e := range buildEntries(&tx, decoded.Actions, colors, tokenFailure(decodeErr, decoded)) {
		c.resolveMetadata(ctx, cache, e)
		out.TokenEntries = append(out.TokenEntries, *e)
	}

	out.Category = c.category(out, decoded)
	for _, a := range decoded.Actions {
		if msg, ok := a.(protocol.AppMessage); ok {
			out.App = msg.App.Name()
			break
		}
	}
	if out.App == "" && out.Failure != nil && !out.Failure.Protocol.IsToken() && out.Failure.Protocol != protocol.ProtocolUnknown {
		out.App = out.Failure.Protocol.Name()
	}

	invalid := out.InvalidEntries()
	c.metrics.ObserveTransaction(out.Category.String(), len(out.TokenEntries)-invalid, invalid)
	return out, nil
}

// ClassifyBatch classifies txs with at most workers goroutines. Malformed
// transactions are logged and skipped; the rest keep their input order.
func (c *Classifier) ClassifyBatch(ctx context.Context, txs []model.RawTransaction, workers int) ([]ClassifiedTransaction, error) {
	started := time.Now()
	defer c.metrics.ObserveBatch(started)

	cache := c.newCache()
	results, err := workerpool.Map(ctx, workers, txs, func(ctx context.Context, tx model.RawTransaction) (*ClassifiedTransaction, error) {
		classified, err := c.classify(ctx, tx, cache)
		if errors.Is(err, ErrMalformedTransaction) {
			c.logger.Warn("skipping malformed transaction", zap.String("txid", tx.TxID), zap.Error(err))
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &classified, nil
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("classify batch: %w", err)
	}

	out := make([]ClassifiedTransaction, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func validate(tx model.RawTransaction) error {
	switch {
	case tx.TxID == "":
		return fmt.Errorf("%w: missing txid", ErrMalformedTransaction)
	case len(tx.Outputs) == 0:
		return fmt.Errorf("%w: %s has no outputs", ErrMalformedTransaction, tx.TxID)
	case !tx.IsCoinbase && len(tx.Inputs) == 0:
		return fmt.Errorf("%w: %s has no inputs", ErrMalformedTransaction, tx.TxID)
	}
	return nil
}

func (c *Classifier) isTracked(script string) bool {
	_, ok := c.tracked[strings.ToLower(script)]
	return ok
}

func (c *Classifier) fillValue(out *ClassifiedTransaction, tx *model.RawTransaction) {
	out.XecTxType = Received
	if len(c.tracked) == 0 {
		out.XecTxType = Sent
	}
	for _, in := range tx.Inputs {
		if c.isTracked(in.Output.ScriptHex) {
			out.XecTxType = Sent
			break
		}
	}

	for _, o := range tx.Outputs {
		if strings.HasPrefix(strings.ToLower(o.ScriptHex), opReturnPrefix) {
			continue
		}
		if len(c.tracked) > 0 && c.isTracked(o.ScriptHex) {
			continue
		}
		out.SatoshisSent += o.Value
		out.Recipients = append(out.Recipients, Recipient{
			Script:  o.ScriptHex,
			Address: displayAddress(o.ScriptHex),
			Value:   o.Value,
		})
	}
}

func (c *Classifier) resolveMetadata(ctx context.Context, cache MetadataCache, e *TokenEntry) {
	defer func() {
		amount := e.Atoms
		if e.TxType == TxTypeBurn || e.TxType == TxTypeNone {
			amount = e.ActualBurnAmount
		}
		e.DisplayAmount = DisplayAmount(amount, e.Metadata.Decimals)
	}()

	if e.TokenID == "" {
		return
	}
	if e.TxType == TxTypeGenesis {
		if err := cache.Put(e.TokenID, e.Metadata); err != nil {
			c.logger.Debug("genesis metadata not cached", zap.String("token_id", e.TokenID), zap.Error(err))
		}
		return
	}
	meta, err := cache.GetOrFetch(ctx, e.TokenID, c.fetcher.GetTokenGenesisInfo)
	if err != nil {
		c.logger.Warn("token metadata fetch failed",
			zap.String("token_id", e.TokenID),
			zap.Error(err),
		)
		e.Metadata = PlaceholderMetadata(e.TokenID)
		return
	}
	e.Metadata = meta
	// Inputs only carry the group when their own genesis was seen.
	if e.GroupTokenID == "" && e.TokenType.Protocol == model.SLP && e.TokenType.Number == model.SLPNFT1Child {
		e.GroupTokenID = meta.GroupTokenID
	}
}

func (c *Classifier) category(out ClassifiedTransaction, d protocol.Decoded) Category {
	for _, a := range d.Actions {
		switch a.Kind() {
		case protocol.KindGenesis:
			return CategoryTokenGenesis
		case protocol.KindMint:
			return CategoryTokenMint
		case protocol.KindSend:
			return CategoryTokenSend
		case protocol.KindBurn:
			return CategoryTokenBurn
		case protocol.KindTokenUnknown:
			return CategoryTokenUnknown
		}
	}
	if out.Failure != nil && out.Failure.Protocol.IsToken() {
		return CategoryTokenUnknown
	}
	for _, a := range d.Actions {
		switch a.Kind() {
		case protocol.KindAppMessage:
			return CategoryApp
		case protocol.KindAppUnknown:
			return CategoryUnknownApp
		}
	}
	if out.Failure != nil {
		if out.Failure.Protocol == protocol.ProtocolUnknown {
			return CategoryUnknownApp
		}
		return CategoryApp
	}
	if out.XecTxType == Sent {
		return CategorySend
	}
	return CategoryReceived
}

func firstFailure(err error, d protocol.Decoded) *protocol.DecodeFailure {
	var f *protocol.DecodeFailure
	if errors.As(err, &f) {
		return f
	}
	if len(d.Failures) > 0 {
		return d.Failures[0]
	}
	return nil
}
