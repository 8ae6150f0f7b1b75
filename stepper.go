package astar

import (
	"context"
	"maps"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable] struct {
	Current   NodeType
	Open      map[NodeType]bool
	Closed    map[NodeType]bool
	CameFrom  map[NodeType]NodeType
	Done      bool
	Found     bool
	Path      []NodeType
	TotalCost float64
	StepIndex int
}

// Stepper runs the same search as FindPath one frontier extraction at a time.
// It is not safe for concurrent use.
type Stepper[NodeType comparable] struct {
	ctx       context.Context
	state     *search[NodeType]
	stepCount int
	err       error
}

// NewStepper prepares a search from origin to destination without extracting anything yet.
// Every Step checks contextObject first; once it is cancelled the stepper is done
// and keeps returning the context's error.
func NewStepper[NodeType comparable](
	contextObject context.Context,
	origin NodeType,
	destination NodeType,
	capability Capability[NodeType],
	options ...Option,
) (*Stepper[NodeType], error) {
	state, err := newSearch(origin, destination, capability, applyOptions(options))
	if err != nil {
		return nil, err
	}
	return &Stepper[NodeType]{ctx: contextObject, state: state}, nil
}

// Step advances the search by one extraction and returns a snapshot.
// After the search is done every call returns the final snapshot again.
func (s *Stepper[NodeType]) Step() (StepSnapshot[NodeType], error) {
	if s.state.done {
		return s.snapshot(), s.err
	}
	if err := s.ctx.Err(); err != nil {
		s.state.done = true
		s.err = err
		return s.snapshot(), err
	}

	extracted, err := s.state.step()
	if extracted {
		s.stepCount++
	}
	if err != nil {
		s.err = err
	}
	return s.snapshot(), err
}

// Result returns the outcome so far; it is final once a snapshot reports Done.
func (s *Stepper[NodeType]) Result() Result[NodeType] {
	return s.state.result()
}

func (s *Stepper[NodeType]) snapshot() StepSnapshot[NodeType] {
	return StepSnapshot[NodeType]{
		Current:   s.state.current,
		Open:      s.openSetToBoolMap(),
		Closed:    maps.Clone(s.state.closedSet),
		CameFrom:  maps.Clone(s.state.cameFrom),
		Done:      s.state.done,
		Found:     s.state.found,
		Path:      append([]NodeType(nil), s.state.path...),
		TotalCost: s.state.totalCost,
		StepIndex: s.stepCount,
	}
}

func (s *Stepper[NodeType]) openSetToBoolMap() map[NodeType]bool {
	m := make(map[NodeType]bool, len(s.state.openSetMap))
	for k := range s.state.openSetMap {
		m[k] = true
	}
	return m
}
