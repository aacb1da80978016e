package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"github.com/goodnatureofminers/blockinsight7000-herald/pkg/safe"
)

// prevOutputsBatchSize controls how many txids are looked up in one query.
// It is a var to allow overriding in tests.
var prevOutputsBatchSize = 1000

const prevOutputCountsQuery = `
SELECT
	txid,
	anyLast(output_count) AS output_count
FROM utxo_transactions
WHERE coin = ? AND network = ? AND txid IN ?
GROUP BY txid
SETTINGS max_threads = 1`

const prevOutputsQuery = `
SELECT
	txid,
	output_index,
	anyLast(value) AS value,
	anyLast(script_hex) AS script_hex
FROM utxo_transaction_outputs
WHERE coin = ? AND network = ? AND txid IN ?
GROUP BY
	txid,
	output_index
ORDER BY output_index ASC
SETTINGS max_threads = 1`

// PrevOutputs returns every output of the given transactions, indexed by
// output index. Transactions that are unknown, or whose stored outputs do not
// match their output count, are left out.
func (r *Repository) PrevOutputs(ctx context.Context, txids []string) (map[string][]model.RawOutput, error) {
	result := make(map[string][]model.RawOutput, len(txids))

	size := prevOutputsBatchSize
	if size <= 0 {
		size = 1000
	}
	for start := 0; start < len(txids); start += size {
		end := start + size
		if end > len(txids) {
			end = len(txids)
		}
		if err := r.prevOutputsBatch(ctx, txids[start:end], result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *Repository) prevOutputsBatch(ctx context.Context, txids []string, result map[string][]model.RawOutput) (err error) {
	start := time.Now()
	rowCount := 0
	defer func() {
		r.metrics.Observe("prev_outputs", err, start)
		if err == nil {
			r.metrics.ObserveRows("prev_outputs", rowCount)
		}
	}()

	counts, err := r.outputCounts(ctx, txids)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return nil
	}

	rows, err := r.conn.Query(ctx, prevOutputsQuery, r.coin, r.network, txids)
	if err != nil {
		return fmt.Errorf("query previous outputs: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	byIndex := make(map[string]map[uint32]model.RawOutput, len(counts))
	for rows.Next() {
		var (
			txid   string
			index  uint32
			value  uint64
			script string
		)
		if err = rows.Scan(&txid, &index, &value, &script); err != nil {
			return fmt.Errorf("scan previous output: %w", err)
		}
		sats, convErr := safe.Int64(value)
		if convErr != nil {
			return fmt.Errorf("tx %s output %d value: %w", txid, index, convErr)
		}
		if byIndex[txid] == nil {
			byIndex[txid] = make(map[uint32]model.RawOutput)
		}
		byIndex[txid][index] = model.RawOutput{Value: sats, ScriptHex: script}
		rowCount++
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate previous outputs: %w", err)
	}

	for txid, outputs := range byIndex {
		count, ok := counts[txid]
		if !ok {
			continue
		}
		if dense := denseOutputs(outputs, count); dense != nil {
			result[txid] = dense
		}
	}
	return nil
}

// outputCounts returns the output count of every stored transaction in txids.
func (r *Repository) outputCounts(ctx context.Context, txids []string) (_ map[string]uint32, err error) {
	rows, err := r.conn.Query(ctx, prevOutputCountsQuery, r.coin, r.network, txids)
	if err != nil {
		return nil, fmt.Errorf("query output counts: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	counts := make(map[string]uint32, len(txids))
	for rows.Next() {
		var (
			txid  string
			count uint32
		)
		if err = rows.Scan(&txid, &count); err != nil {
			return nil, fmt.Errorf("scan output count: %w", err)
		}
		counts[txid] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate output counts: %w", err)
	}
	return counts, nil
}

// denseOutputs orders outputs by index, or returns nil unless exactly count
// outputs are present.
func denseOutputs(outputs map[uint32]model.RawOutput, count uint32) []model.RawOutput {
	if count == 0 || len(outputs) != int(count) {
		return nil
	}
	dense := make([]model.RawOutput, count)
	for idx, out := range outputs {
		if idx >= count {
			return nil
		}
		dense[idx] = out
	}
	return dense
}
