package ecash

import (
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// InstrumentedRPCClient wraps a node client with metrics instrumentation.
type InstrumentedRPCClient struct {
	client     RPCClient
	rpcMetrics RPCMetrics
}

// NewRPCClient constructs an instrumented RPC client.
func NewRPCClient(client RPCClient, rpcMetrics RPCMetrics) (*InstrumentedRPCClient, error) {
	if client == nil {
		return nil, fmt.Errorf("rpc client is nil")
	}
	if rpcMetrics == nil {
		return nil, fmt.Errorf("rpc metrics is nil")
	}
	return &InstrumentedRPCClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}, nil
}

// GetBlockCount returns the latest block count.
func (r *InstrumentedRPCClient) GetBlockCount() (count int64, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_count", err, started)
	}()
	return r.client.GetBlockCount()
}

// GetBlockHash returns the block hash for a height.
func (r *InstrumentedRPCClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	hash, err = r.client.GetBlockHash(blockHeight)
	return hash, mapRPCError(err)
}

// GetBlockHeaderVerbose returns the header of a block.
func (r *InstrumentedRPCClient) GetBlockHeaderVerbose(blockHash *chainhash.Hash) (res *btcjson.GetBlockHeaderVerboseResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_header", err, started)
	}()
	res, err = r.client.GetBlockHeaderVerbose(blockHash)
	return res, mapRPCError(err)
}

// GetBlockVerboseTx returns a verbose block with transactions.
func (r *InstrumentedRPCClient) GetBlockVerboseTx(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseTxResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_verbose_tx", err, started)
	}()
	res, err = r.client.GetBlockVerboseTx(blockHash)
	return res, mapRPCError(err)
}

// GetRawTransactionVerbose returns a decoded transaction.
func (r *InstrumentedRPCClient) GetRawTransactionVerbose(txHash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_raw_transaction", err, started)
	}()
	res, err = r.client.GetRawTransactionVerbose(txHash)
	return res, mapRPCError(err)
}

// mapRPCError turns the node's unknown block/tx codes into ErrNotFound.
func mapRPCError(err error) error {
	if err == nil {
		return nil
	}
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case btcjson.ErrRPCInvalidAddressOrKey, btcjson.ErrRPCInvalidParameter:
			return fmt.Errorf("%w: %s", ErrNotFound, rpcErr.Message)
		}
	}
	return err
}
