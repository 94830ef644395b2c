// Package graph implements the Cycle-Finder Utility (spec §4.G): find
// the elementary cycles of a directed adjacency mapping that a
// depth-first traversal closes with back edges, each reported as a
// rotation-normalised tuple starting at its smallest-id node.
package graph

import "sort"

const (
	white = iota
	gray
	black
)

// FindCycles returns the elementary cycles closed by back edges of a
// depth-first traversal of adj that starts from each unvisited node in
// sorted order, sorted for deterministic output. The result is
// non-empty exactly when adj has a cycle, but it does not list every
// elementary cycle: a cycle whose closing edge leads into an already
// fully explored node is not reported. adj maps a node to the ordered
// set of nodes it points to; a node with no outgoing edges may still
// need an entry (an empty slice) so it participates in the traversal.
//
// This mirrors the three-color DFS with back-edge detection used for
// general graph cycle detection, specialised to a purely directed
// graph: there are no undirected edges, and a self-loop is found like
// any other back edge, as a one-node cycle.
func FindCycles(adj map[string][]string) [][]string {
	nodes := make([]string, 0, len(adj))
	for n := range adj {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	state := make(map[string]int, len(nodes))
	var path []string
	seen := make(map[string]struct{})
	var cycles [][]string

	for _, n := range nodes {
		if state[n] == white {
			visit(adj, n, state, &path, seen, &cycles)
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return joinSig(cycles[i]) < joinSig(cycles[j])
	})
	return cycles
}

func visit(adj map[string][]string, id string, state map[string]int, path *[]string, seen map[string]struct{}, cycles *[][]string) {
	state[id] = gray
	*path = append(*path, id)

	for _, nbr := range adj[id] {
		switch state[nbr] {
		case white:
			visit(adj, nbr, state, path, seen, cycles)
		case gray:
			idx := indexOf(*path, nbr)
			recordCycle((*path)[idx:], seen, cycles)
		case black:
			// already fully explored, no new cycle through nbr
		}
	}

	*path = (*path)[:len(*path)-1]
	state[id] = black
}

func recordCycle(segment []string, seen map[string]struct{}, cycles *[][]string) {
	canon := canonicalRotation(segment)
	sig := joinSig(canon)
	if _, ok := seen[sig]; ok {
		return
	}
	seen[sig] = struct{}{}
	*cycles = append(*cycles, canon)
}

// canonicalRotation rotates a simple cycle (no repeated nodes) so it
// starts at its lexicographically smallest node. Unlike a general
// string sequence, a simple cycle's nodes are all distinct, so the
// minimal rotation is just "start at the smallest element" — no
// Booth's-algorithm tie-breaking is needed.
func canonicalRotation(cycle []string) []string {
	minIdx := 0
	for i, n := range cycle {
		if n < cycle[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, len(cycle))
	for i := range cycle {
		out[i] = cycle[(minIdx+i)%len(cycle)]
	}
	return out
}

func indexOf(path []string, id string) int {
	for i, p := range path {
		if p == id {
			return i
		}
	}
	return -1
}

func joinSig(cycle []string) string {
	sig := ""
	for i, n := range cycle {
		if i > 0 {
			sig += ","
		}
		sig += n
	}
	return sig
}
