package service

import "time"

const (
	defaultWorkerCount = 8

	// maxHeightsPerFetch bounds one catch-up batch after downtime.
	maxHeightsPerFetch = 10
	// maxBlockAttempts is how often a failing block is retried before it is skipped.
	maxBlockAttempts = 3

	// maxWindowBlocks bounds the walk back from the tip; a day has about 144 blocks.
	maxWindowBlocks    = 400
	windowBlockWorkers = 4

	sleepDuration = 5 * time.Second
	pollDuration  = 15 * time.Second
)
