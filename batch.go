package astar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Query is one origin/destination pair submitted to FindPaths.
type Query[NodeType comparable] struct {
	Origin      NodeType
	Destination NodeType
}

// BatchResult is the outcome of one Query. Err carries what FindPath would have returned.
type BatchResult[NodeType comparable] struct {
	Query   Query[NodeType]
	Result  Result[NodeType]
	Err     error
	Elapsed time.Duration
}

// FindPaths runs FindPath for every query on a pool of WithWorkers goroutines
// and returns the results in query order. Each search is still single-threaded;
// capability is shared between them and must tolerate concurrent reads.
//
// The returned error reports a pool failure, not a per-query one.
func FindPaths[NodeType comparable](
	contextObject context.Context,
	capability Capability[NodeType],
	queries []Query[NodeType],
	options ...Option,
) ([]BatchResult[NodeType], error) {
	if err := checkCapability(capability); err != nil {
		return nil, err
	}
	results := make([]BatchResult[NodeType], len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	searchOptions := applyOptions(options)
	numberOfWorkers := min(max(searchOptions.NumberOfWorkers, 1), len(queries))

	pool, err := ants.NewPool(numberOfWorkers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var waitGroup sync.WaitGroup
	for index, query := range queries {
		waitGroup.Add(1)
		submitErr := pool.Submit(func() {
			defer waitGroup.Done()
			started := time.Now()
			result, err := FindPath(contextObject, query.Origin, query.Destination, capability, options...)
			results[index] = BatchResult[NodeType]{
				Query:   query,
				Result:  result,
				Err:     err,
				Elapsed: time.Since(started),
			}
		})
		if submitErr != nil {
			waitGroup.Done()
			waitGroup.Wait()
			return nil, fmt.Errorf("submit query %d: %w", index, submitErr)
		}
	}
	waitGroup.Wait()

	searchOptions.Logger.Debug("batch search finished",
		zap.Int("queries", len(queries)),
		zap.Int("workers", numberOfWorkers),
	)
	return results, nil
}
