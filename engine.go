package astar

import (
	"container/heap"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/pdrpinto/astar/v2/internal"
)

// search owns the bookkeeping of one A* run. FindPath drives it to completion,
// Stepper drives it one extraction at a time.
type search[NodeType comparable] struct {
	capability  Capability[NodeType]
	origin      NodeType
	destination NodeType
	logger      *zap.Logger

	openSet    PriorityQueue[NodeType]
	openSetMap map[NodeType]*PriorityQueueItem[NodeType]
	closedSet  map[NodeType]bool
	cameFrom   map[NodeType]NodeType
	bestCost   map[NodeType]float64

	sequence      uint64
	expandedNodes int
	current       NodeType
	done          bool
	found         bool
	path          []NodeType
	totalCost     float64
}

func newSearch[NodeType comparable](
	origin NodeType,
	destination NodeType,
	capability Capability[NodeType],
	searchOptions Options,
) (*search[NodeType], error) {
	if err := checkCapability(capability); err != nil {
		return nil, err
	}
	if searchOptions.ValidateEndpoints {
		if !capability.NodeIsPassable(origin) {
			return nil, fmt.Errorf("%w: origin %v", ErrImpassableEndpoint, origin)
		}
		if !capability.NodeIsPassable(destination) {
			return nil, fmt.Errorf("%w: destination %v", ErrImpassableEndpoint, destination)
		}
	}

	estimate := capability.EstimateCost(origin, destination)
	if err := checkCost("estimate", estimate, origin, destination); err != nil {
		return nil, err
	}

	state := &search[NodeType]{
		capability:  capability,
		origin:      origin,
		destination: destination,
		logger:      searchOptions.Logger,
		openSet:     make(PriorityQueue[NodeType], 0),
		openSetMap:  make(map[NodeType]*PriorityQueueItem[NodeType]),
		closedSet:   make(map[NodeType]bool),
		cameFrom:    make(map[NodeType]NodeType),
		bestCost:    map[NodeType]float64{origin: 0},
	}
	if state.logger == nil {
		state.logger = zap.NewNop()
	}
	heap.Init(&state.openSet)
	state.enqueue(origin, 0, estimate)
	return state, nil
}

// step extracts the cheapest frontier entry and, unless it is the
// destination, relaxes its passable neighbors. It reports false when the
// frontier was already empty.
func (state *search[NodeType]) step() (bool, error) {
	if state.done {
		return false, nil
	}
	if state.openSet.Len() == 0 {
		state.done = true
		return false, nil
	}

	currentItem := heap.Pop(&state.openSet).(*PriorityQueueItem[NodeType])
	currentNode := currentItem.Node
	delete(state.openSetMap, currentNode)
	state.current = currentNode

	// Goal check
	if currentNode == state.destination {
		path, ok := internal.ReconstructPath(state.cameFrom, currentNode, state.origin)
		if !ok {
			state.done = true
			return true, fmt.Errorf("broken parent chain at %v", currentNode)
		}
		state.done = true
		state.found = true
		state.path = path
		state.totalCost = currentItem.GScore
		return true, nil
	}

	state.closedSet[currentNode] = true
	state.expandedNodes++

	for _, neighbor := range state.capability.ListAdjacentNodes(currentNode) {
		if !state.capability.NodeIsPassable(neighbor) {
			continue
		}

		moveCost := state.capability.CalculateMoveCost(currentNode, neighbor)
		if err := checkCost("move cost", moveCost, currentNode, neighbor); err != nil {
			state.done = true
			return true, err
		}
		tentativeG := currentItem.GScore + moveCost

		// Covers both closed positions that cannot improve and queued ones.
		if knownG, known := state.bestCost[neighbor]; known && knownG <= tentativeG {
			continue
		}

		estimate := state.capability.EstimateCost(neighbor, state.destination)
		if err := checkCost("estimate", estimate, neighbor, state.destination); err != nil {
			state.done = true
			return true, err
		}

		if state.closedSet[neighbor] {
			delete(state.closedSet, neighbor)
			state.logger.Debug("reopening closed node",
				zap.Any("node", neighbor),
				zap.Float64("previous_g", state.bestCost[neighbor]),
				zap.Float64("g", tentativeG),
			)
		}

		state.bestCost[neighbor] = tentativeG
		state.cameFrom[neighbor] = currentNode
		state.enqueue(neighbor, tentativeG, tentativeG+estimate)
	}
	return true, nil
}

// enqueue inserts node or lowers the priority of its existing entry.
func (state *search[NodeType]) enqueue(node NodeType, gScore float64, fCost float64) {
	state.sequence++
	if item, inOpen := state.openSetMap[node]; inOpen {
		item.GScore = gScore
		item.FCost = fCost
		item.Sequence = state.sequence
		heap.Fix(&state.openSet, item.IndexInQueue)
		return
	}
	item := &PriorityQueueItem[NodeType]{
		Node:     node,
		GScore:   gScore,
		FCost:    fCost,
		Sequence: state.sequence,
	}
	heap.Push(&state.openSet, item)
	state.openSetMap[node] = item
}

func (state *search[NodeType]) result() Result[NodeType] {
	return Result[NodeType]{
		Path:          state.path,
		TotalCost:     state.totalCost,
		ExpandedNodes: state.expandedNodes,
		Found:         state.found,
	}
}

func checkCost[NodeType comparable](kind string, cost float64, from NodeType, to NodeType) error {
	if cost < 0 || math.IsNaN(cost) {
		return fmt.Errorf("%w: %s %v from %v to %v", ErrContractViolation, kind, cost, from, to)
	}
	return nil
}
