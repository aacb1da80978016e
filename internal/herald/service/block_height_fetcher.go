package service

import "context"

// blockHeightFetcher hands out heights above the last committed one. With no
// start height it begins after the tip seen on the first fetch.
type blockHeightFetcher struct {
	source  ChainSource
	next    uint64
	started bool
	limit   uint64
}

func (f *blockHeightFetcher) Fetch(ctx context.Context) ([]uint64, error) {
	latest, err := f.source.LatestHeight(ctx)
	if err != nil {
		return nil, err
	}
	if !f.started {
		f.started = true
		if f.next == 0 {
			f.next = latest + 1
		}
	}
	if latest < f.next {
		return nil, nil
	}

	last := latest
	if f.limit > 0 && last-f.next+1 > f.limit {
		last = f.next + f.limit - 1
	}
	heights := make([]uint64, 0, last-f.next+1)
	for h := f.next; h <= last; h++ {
		heights = append(heights, h)
	}
	return heights, nil
}

func (f *blockHeightFetcher) Commit(height uint64) {
	if height >= f.next {
		f.next = height + 1
	}
}
