package astar

import (
	"fmt"
	"math"
	"strings"
)

// Capability describes an implicit graph over positions of type NodeType.
// NodeType must be comparable so it can be used in maps.
//
// Implementations are only queried, never mutated, by the search. An instance
// shared between concurrent searches must be safe for concurrent reads.
type Capability[NodeType comparable] interface {
	// ListAdjacentNodes returns candidate neighbors of node. Candidates may be
	// out of bounds or obstructed; the order defines expansion order among
	// equal-priority neighbors.
	ListAdjacentNodes(node NodeType) []NodeType

	// NodeIsPassable reports whether node may be stepped on. It must return
	// false, not panic, for positions outside the modelled domain.
	NodeIsPassable(node NodeType) bool

	// CalculateMoveCost is the non-negative cost of the single step from -> to.
	CalculateMoveCost(from NodeType, to NodeType) float64

	// EstimateCost is a non-negative lower bound on the cost from -> to.
	EstimateCost(from NodeType, to NodeType) float64
}

// CapabilityFuncs implements Capability with plain functions.
// Adjacent, MoveCost and Estimate are required; searches given a
// CapabilityFuncs without them fail with ErrNilCapability.
// A nil Passable treats every candidate as passable.
type CapabilityFuncs[NodeType comparable] struct {
	Adjacent func(node NodeType) []NodeType
	Passable func(node NodeType) bool
	MoveCost func(from NodeType, to NodeType) float64
	Estimate func(from NodeType, to NodeType) float64
}

func (funcs CapabilityFuncs[NodeType]) ListAdjacentNodes(node NodeType) []NodeType {
	return funcs.Adjacent(node)
}

func (funcs CapabilityFuncs[NodeType]) NodeIsPassable(node NodeType) bool {
	if funcs.Passable == nil {
		return true
	}
	return funcs.Passable(node)
}

func (funcs CapabilityFuncs[NodeType]) CalculateMoveCost(from NodeType, to NodeType) float64 {
	return funcs.MoveCost(from, to)
}

func (funcs CapabilityFuncs[NodeType]) EstimateCost(from NodeType, to NodeType) float64 {
	return funcs.Estimate(from, to)
}

func (funcs CapabilityFuncs[NodeType]) missingFuncs() []string {
	var missing []string
	if funcs.Adjacent == nil {
		missing = append(missing, "Adjacent")
	}
	if funcs.MoveCost == nil {
		missing = append(missing, "MoveCost")
	}
	if funcs.Estimate == nil {
		missing = append(missing, "Estimate")
	}
	return missing
}

// checkCapability rejects a nil capability and a CapabilityFuncs with unset
// required fields before any search state is built.
func checkCapability[NodeType comparable](capability Capability[NodeType]) error {
	if capability == nil {
		return ErrNilCapability
	}
	if funcs, ok := capability.(interface{ missingFuncs() []string }); ok {
		if missing := funcs.missingFuncs(); len(missing) > 0 {
			return fmt.Errorf("%w: CapabilityFuncs without %s", ErrNilCapability, strings.Join(missing, ", "))
		}
	}
	return nil
}

// Graph is an explicit-edge graph: each node lists its reachable neighbors with costs.
type Graph[NodeType comparable] interface {
	Neighbors(node NodeType) []Neighbor[NodeType]
}

// Neighbor represents a reachable node with a cost.
type Neighbor[NodeType comparable] struct {
	ID   NodeType
	Cost float64
}

// Heuristic returns the estimated cost from node a to node b
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) float64

// FromGraph adapts an explicit-edge Graph and a Heuristic into a Capability.
// Every listed neighbor is passable.
func FromGraph[NodeType comparable](graph Graph[NodeType], heuristic Heuristic[NodeType]) Capability[NodeType] {
	return graphCapability[NodeType]{graph: graph, heuristic: heuristic}
}

type graphCapability[NodeType comparable] struct {
	graph     Graph[NodeType]
	heuristic Heuristic[NodeType]
}

func (adapter graphCapability[NodeType]) ListAdjacentNodes(node NodeType) []NodeType {
	neighbors := adapter.graph.Neighbors(node)
	ids := make([]NodeType, 0, len(neighbors))
	for _, neighbor := range neighbors {
		ids = append(ids, neighbor.ID)
	}
	return ids
}

func (adapter graphCapability[NodeType]) NodeIsPassable(NodeType) bool { return true }

// CalculateMoveCost returns the cheapest parallel edge, or +Inf for a non-edge.
func (adapter graphCapability[NodeType]) CalculateMoveCost(from NodeType, to NodeType) float64 {
	cost := math.Inf(1)
	for _, neighbor := range adapter.graph.Neighbors(from) {
		if neighbor.ID == to && neighbor.Cost < cost {
			cost = neighbor.Cost
		}
	}
	return cost
}

func (adapter graphCapability[NodeType]) EstimateCost(from NodeType, to NodeType) float64 {
	return adapter.heuristic(from, to)
}
