// Package concurrent runs the dispose-state analysis over every
// function of a contract in parallel, one goroutine per function (spec
// §5: "each procedure's analysis run is independent... no locking is
// needed inside the core itself"). The shared piece outside the core
// is this package's result cache, which is what actually needs
// protecting.
package concurrent

import (
	"context"
	"sync"

	"github.com/segmentio/ksuid"
	"github.com/sasha-s/go-deadlock"
	"github.com/tliron/commonlog"

	"kanso/internal/dispose"
)

// AnalyzeFunc runs a single function's analysis; irbridge.AnalyzeFunction
// has this shape once its IR/registry/Config arguments are bound by the
// caller, keeping this package free of any direct dependency on
// internal/ir or internal/types.
type AnalyzeFunc func(ctx context.Context) (*dispose.AnalysisResult, error)

// Job names one function's analysis.
type Job struct {
	FunctionName string
	Run          AnalyzeFunc
}

// Result pairs a job's outcome with the run id it was logged under.
type Result struct {
	FunctionName string
	RunID        ksuid.KSUID
	Analysis     *dispose.AnalysisResult
	Err          error
}

// Cache stores the most recent result per function name, guarded by a
// deadlock-detecting mutex: this package runs a goroutine per job, so
// any accidental re-entrant locking bug around the cache surfaces
// immediately in development rather than as an intermittent hang in
// production (spec §5's concurrency model explicitly calls out this
// class of bug as the reason the cache, not the core, owns locking).
type Cache struct {
	mu      deadlock.Mutex
	results map[string]Result
}

// NewCache returns an empty result cache.
func NewCache() *Cache {
	return &Cache{results: make(map[string]Result)}
}

func (c *Cache) store(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[r.FunctionName] = r
}

// Get returns the most recently stored result for name, if any.
func (c *Cache) Get(name string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[name]
	return r, ok
}

// RunAll runs every job concurrently, storing each outcome in cache
// under its function name, tagged with a fresh ksuid run id (used only to correlate log lines across
// goroutines; it carries no semantic weight). RunAll itself never
// returns an error: a per-function failure is recorded in its Result,
// not propagated, so one broken function never prevents the rest of
// the contract from being analyzed.
func RunAll(ctx context.Context, jobs []Job, cache *Cache, logger commonlog.Logger) []Result {
	results := make([]Result, len(jobs))
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		go func(i int, job Job) {
			defer wg.Done()
			runID := ksuid.New()
			if logger != nil {
				logger.Debugf("dispose analysis %s: starting function %q", runID, job.FunctionName)
			}
			analysis, err := job.Run(ctx)
			r := Result{FunctionName: job.FunctionName, RunID: runID, Analysis: analysis, Err: err}
			if logger != nil {
				if err != nil {
					logger.Debugf("dispose analysis %s: function %q failed: %s", runID, job.FunctionName, err)
				} else {
					logger.Debugf("dispose analysis %s: function %q converged", runID, job.FunctionName)
				}
			}
			cache.store(r)
			results[i] = r
		}(i, job)
	}
	wg.Wait()
	return results
}
