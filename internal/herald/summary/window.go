package summary

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/classify"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
)

// Kind tells whether a summary covers one block or a time window.
type Kind uint8

const (
	KindBlock Kind = iota
	KindWindow
)

func (k Kind) String() string {
	if k == KindWindow {
		return "window"
	}
	return "block"
}

// Window selects the transactions of a summary.
type Window struct {
	Kind  Kind
	Block model.Block
	// Start is exclusive and End inclusive.
	Start time.Time
	End   time.Time
}

// BlockWindow covers every transaction of block.
func BlockWindow(block model.Block) Window {
	return Window{Kind: KindBlock, Block: block}
}

// TimeWindow covers transactions first seen in (start, end].
func TimeWindow(start, end time.Time) Window {
	return Window{Kind: KindWindow, Start: start.UTC(), End: end.UTC()}
}

// Label names the period, e.g. "Block 800000" or "Mar 1, 2024".
func (w Window) Label() string {
	if w.Kind == KindBlock {
		return fmt.Sprintf("Block %d", w.Block.Height)
	}
	return w.End.Format("Jan 2, 2006")
}

// Includes reports whether tx belongs to the window. Coinbase transactions
// carry no first-seen time and always belong.
func (w Window) Includes(tx classify.ClassifiedTransaction) bool {
	if w.Kind == KindBlock || tx.Category == classify.CategoryCoinbase {
		return true
	}
	if tx.Tx == nil {
		return false
	}
	seen := tx.Tx.TimeFirstSeen
	return seen > w.Start.Unix() && seen <= w.End.Unix()
}
