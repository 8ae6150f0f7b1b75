package internal

import "slices"

// ReconstructPath rebuilds the start..current path by following the cameFrom
// parent links backwards from current.
//
// A search only replaces a parent link when it finds a strictly cheaper path,
// so the links it records form a tree rooted at its origin and the walk always
// ends there. The boolean is false when the walk cannot reach start: a link is
// missing, or the links loop without passing through start. Either means the
// links were not recorded by one search from start (a different origin, or a
// map modified afterwards), and callers treat it as a broken invariant rather
// than an unreachable destination.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	current NodeType,
	start NodeType,
) ([]NodeType, bool) {
	path := []NodeType{current}
	for current != start {
		previousNode, exists := cameFrom[current]
		if !exists || len(path) > len(cameFrom) {
			return nil, false
		}
		path = append(path, previousNode)
		current = previousNode
	}
	slices.Reverse(path)
	return path, true
}
