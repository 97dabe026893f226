package cleaner

import (
	"strings"
)

// ChainCleaner applies multiple cleaners in sequence.
// This allows composing single-purpose passes into one pipeline.
type ChainCleaner struct {
	cleaners []Cleaner
}

// NewChain creates a new cleaner that applies multiple cleaners in sequence.
// Cleaners are applied in the order provided. Nil cleaners are skipped.
//
// Example:
//
//	chain := cleaner.NewChain(
//	    cleaner.Func("trim", strings.TrimSpace),
//	    cleaner.Func("lower", strings.ToLower),
//	)
func NewChain(cleaners ...Cleaner) *ChainCleaner {
	kept := make([]Cleaner, 0, len(cleaners))
	for _, c := range cleaners {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &ChainCleaner{
		cleaners: kept,
	}
}

// Clean applies all cleaners in sequence, stopping at the first error.
func (c *ChainCleaner) Clean(content string) (string, error) {
	var err error
	for _, cleaner := range c.cleaners {
		content, err = cleaner.Clean(content)
		if err != nil {
			return "", err
		}
	}
	return content, nil
}

// Cleaners returns the chained cleaners in application order.
func (c *ChainCleaner) Cleaners() []Cleaner {
	out := make([]Cleaner, len(c.cleaners))
	copy(out, c.cleaners)
	return out
}

// Len returns the number of chained cleaners.
func (c *ChainCleaner) Len() int {
	return len(c.cleaners)
}

// Name returns the names of all chained cleaners.
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.cleaners))
	for i, cleaner := range c.cleaners {
		names[i] = cleaner.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
