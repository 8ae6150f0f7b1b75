package astar

import (
	"context"
	"runtime"

	"go.uber.org/zap"
)

// Result contains the outcome of a search.
// An unreachable destination is reported with Found false and a nil Path.
type Result[NodeType comparable] struct {
	Path          []NodeType
	TotalCost     float64
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers   int
	Logger            *zap.Logger
	ValidateEndpoints bool
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many searches FindPaths runs at once.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithLogger sets the logger used for debug output. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(options *Options) {
		if logger == nil {
			logger = zap.NewNop()
		}
		options.Logger = logger
	}
}

// WithEndpointValidation makes a search fail with ErrImpassableEndpoint when
// the origin or destination is not passable. By default endpoints are taken
// as given and only candidate neighbors are checked.
func WithEndpointValidation() Option {
	return func(options *Options) { options.ValidateEndpoints = true }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
		Logger:          zap.NewNop(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	return searchOptions
}

// FindPath runs A* from origin to destination over capability.
//
// The returned error is non-nil only when capability is nil or incomplete, the context is
// done, the capability breaks its contract, or endpoint validation was
// requested and failed. Not finding a path is reported through Result.Found.
func FindPath[NodeType comparable](
	contextObject context.Context,
	origin NodeType,
	destination NodeType,
	capability Capability[NodeType],
	options ...Option,
) (Result[NodeType], error) {
	searchOptions := applyOptions(options)

	state, err := newSearch(origin, destination, capability, searchOptions)
	if err != nil {
		return Result[NodeType]{}, err
	}

	for !state.done {
		if err := contextObject.Err(); err != nil {
			return Result[NodeType]{ExpandedNodes: state.expandedNodes}, err
		}
		if _, err := state.step(); err != nil {
			return Result[NodeType]{ExpandedNodes: state.expandedNodes}, err
		}
	}

	result := state.result()
	searchOptions.Logger.Debug("path search finished",
		zap.Any("origin", origin),
		zap.Any("destination", destination),
		zap.Bool("found", result.Found),
		zap.Int("expanded_nodes", result.ExpandedNodes),
		zap.Int("path_length", len(result.Path)),
		zap.Float64("total_cost", result.TotalCost),
	)
	return result, nil
}
