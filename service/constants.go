package service

import "time"

const (
	// MaxTermRangeMonths caps how many terms one recommendation may evaluate.
	MaxTermRangeMonths = 120
	// MaxAlternatives is how many runner-up terms the explanation mentions.
	MaxAlternatives = 3

	DefaultCacheTTL = 10 * time.Minute

	simulationKeyPrefix = "simulation:"
)
