// Package parallel splits row-indexed work across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled bool // Whether parallel execution is enabled.
	Workers int  // Number of worker goroutines to use.
	MinWork int  // Minimum cells of work before splitting pays off.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled: n > 1,
		Workers: n,
		MinWork: 1 << 14,
	}
}

// Sequential returns a config that never spawns goroutines.
func Sequential() Config {
	return Config{Enabled: false, Workers: 1}
}

// Rows calls f over contiguous row ranges [start, end) covering [0, n).
//
// work is the approximate cost of the whole job in cells; below
// cfg.MinWork, or when parallelism is disabled, f runs once over [0, n).
// Ranges never overlap, so f may write its rows of a shared output without
// locking.
func Rows(n, work int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.Workers <= 1 || work < cfg.MinWork || n == 1 {
		f(0, n)
		return
	}

	workers := min(cfg.Workers, n)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}
