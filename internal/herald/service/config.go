package service

import "github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/price"

// Config holds what a service needs to render and deliver a summary.
type Config struct {
	// ChatID receives the messages. It may be empty when delivery is off.
	ChatID string
	// Workers bounds concurrent classification.
	Workers   int
	TopTokens int
	Notable   int
	Price     price.Config
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return defaultWorkerCount
	}
	return c.Workers
}
