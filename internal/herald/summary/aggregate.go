package summary

import (
	"math/big"
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/classify"
)

// Aggregate folds txs into a Summary for w. Block summaries keep the supplied
// order; window summaries are re-sorted by first seen time, height and txid.
// Counts and rankings do not depend on the input order.
func Aggregate(txs []classify.ClassifiedTransaction, w Window, opts Options) Summary {
	if opts.TopTokens <= 0 {
		opts.TopTokens = DefaultTopTokens
	}
	if opts.Notable <= 0 {
		opts.Notable = DefaultNotable
	}

	s := Summary{
		PeriodLabel: w.Label(),
		Kind:        w.Kind,
		Block:       w.Block,
		Start:       w.Start,
		End:         w.End,
		TxCounts:    make(map[classify.Category]int),
	}
	if opts.Prices != nil {
		s.Prices = append(s.Prices, opts.Prices...)
	}

	included := make([]classify.ClassifiedTransaction, 0, len(txs))
	for _, tx := range txs {
		if w.Includes(tx) {
			included = append(included, tx)
		}
	}
	if w.Kind == KindWindow {
		sort.SliceStable(included, func(i, j int) bool {
			return chronological(included[i], included[j])
		})
	}

	var (
		tokens  = make(map[string]*TokenActivity)
		apps    = make(map[string]int)
		stakers = make(map[string]*StakerActivity)
		miners  = make(map[string]int)
	)
	for _, tx := range included {
		s.TxCount++
		s.TxCounts[tx.Category]++

		if tx.Category == classify.CategoryCoinbase {
			s.Blocks++
			if cb := tx.Coinbase; cb != nil {
				miners[cb.Miner]++
				if st := cb.Staker; st != nil {
					s.StakingRewards += st.Reward
					acc, ok := stakers[st.Address]
					if !ok {
						acc = &StakerActivity{Address: st.Address}
						stakers[st.Address] = acc
					}
					acc.Blocks++
					acc.Rewards += st.Reward
				}
			}
			continue
		}

		s.SatoshisMoved += tx.SatoshisSent
		if tx.Category == classify.CategoryTokenGenesis {
			s.Genesis = append(s.Genesis, tx)
		}
		if tx.App != "" {
			apps[tx.App]++
			s.AppTxs = append(s.AppTxs, tx)
		}
		s.InvalidTokenEntries += tx.InvalidEntries()
		if burnsAtoms(tx) {
			s.Burns = append(s.Burns, tx)
		}
		addTokens(tokens, tx)
	}

	s.TokenCount = len(tokens)
	s.TopTokens = rankTokens(tokens, opts.TopTokens)
	s.Notable = notable(included, opts.Notable)
	s.Apps = rankApps(apps)
	s.Stakers = rankStakers(stakers)
	s.Miners = rankMiners(miners)
	return s
}

func chronological(a, b classify.ClassifiedTransaction) bool {
	var sa, sb int64
	var ha, hb uint64
	if a.Tx != nil {
		sa, ha = a.Tx.TimeFirstSeen, a.Tx.BlockHeight
	}
	if b.Tx != nil {
		sb, hb = b.Tx.TimeFirstSeen, b.Tx.BlockHeight
	}
	if sa != sb {
		return sa < sb
	}
	if ha != hb {
		return ha < hb
	}
	return a.TxID < b.TxID
}

func burnsAtoms(tx classify.ClassifiedTransaction) bool {
	for _, e := range tx.TokenEntries {
		if e.ActualBurnAmount != nil && e.ActualBurnAmount.Sign() > 0 {
			return true
		}
	}
	return false
}

func addTokens(tokens map[string]*TokenActivity, tx classify.ClassifiedTransaction) {
	touched := make(map[string]struct{}, len(tx.TokenEntries))
	for _, e := range tx.TokenEntries {
		if e.TokenID == "" {
			continue
		}
		acc, ok := tokens[e.TokenID]
		if !ok {
			acc = &TokenActivity{
				TokenID:     e.TokenID,
				TokenType:   e.TokenType,
				Metadata:    e.Metadata,
				Actions:     make(map[string]int),
				BurnedAtoms: new(big.Int),
			}
			tokens[e.TokenID] = acc
		}
		if acc.Metadata.Placeholder && !e.Metadata.Placeholder && e.Metadata.TokenTicker != "" {
			acc.Metadata = e.Metadata
		}
		if _, seen := touched[e.TokenID]; !seen {
			touched[e.TokenID] = struct{}{}
			acc.TxCount++
		}
		acc.Actions[e.TxType]++
		if e.IsInvalid {
			acc.Invalid++
		}
		if e.ActualBurnAmount != nil {
			acc.BurnedAtoms.Add(acc.BurnedAtoms, e.ActualBurnAmount)
		}
	}
}

func rankTokens(tokens map[string]*TokenActivity, k int) []TokenActivity {
	ranked := make([]TokenActivity, 0, len(tokens))
	for _, t := range tokens {
		ranked = append(ranked, *t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TxCount != ranked[j].TxCount {
			return ranked[i].TxCount > ranked[j].TxCount
		}
		return ranked[i].TokenID < ranked[j].TokenID
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

func notable(txs []classify.ClassifiedTransaction, n int) []classify.ClassifiedTransaction {
	var candidates []classify.ClassifiedTransaction
	for _, tx := range txs {
		if tx.Category != classify.CategoryCoinbase && tx.SatoshisSent > 0 {
			candidates = append(candidates, tx)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].SatoshisSent != candidates[j].SatoshisSent {
			return candidates[i].SatoshisSent > candidates[j].SatoshisSent
		}
		return candidates[i].TxID < candidates[j].TxID
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

func rankApps(apps map[string]int) []AppActivity {
	out := make([]AppActivity, 0, len(apps))
	for app, count := range apps {
		out = append(out, AppActivity{App: app, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].App < out[j].App
	})
	return out
}

func rankStakers(stakers map[string]*StakerActivity) []StakerActivity {
	out := make([]StakerActivity, 0, len(stakers))
	for _, s := range stakers {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Blocks != out[j].Blocks {
			return out[i].Blocks > out[j].Blocks
		}
		return out[i].Address < out[j].Address
	})
	return out
}

func rankMiners(miners map[string]int) []MinerActivity {
	out := make([]MinerActivity, 0, len(miners))
	for name, blocks := range miners {
		out = append(out, MinerActivity{Name: name, Blocks: blocks})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Blocks != out[j].Blocks {
			return out[i].Blocks > out[j].Blocks
		}
		return out[i].Name < out[j].Name
	})
	return out
}
