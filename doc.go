// Package astar provides a generic A* pathfinding implementation over implicit graphs.
//
// The caller describes the graph through a Capability: four operations that list
// candidate neighbors, gate them by passability, price a single move and estimate
// the remaining cost. No concrete graph is ever built by the package.
//
// It exposes three entry points:
//
//   - FindPath: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//   - FindPaths: run many independent searches over a shared Capability on a worker pool.
//
// A single search is synchronous and single-threaded; all of its bookkeeping is
// owned by the call and discarded when it returns.
package astar
