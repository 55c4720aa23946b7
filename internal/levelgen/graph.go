package levelgen

import (
	"fmt"
	"sort"
)

type candidate struct {
	from   int
	to     int
	length float64
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// BuildGraph wires the node set into a connected traversable graph:
// nearest-neighbor candidate edges, a greedy spanning pass anchored at node
// 0, then shuffled densification up to the requested edge count, and finally
// per-edge kind assignment. Both endpoints' adjacency lists are updated for
// every realized edge.
//
// When the candidate set does not span the point set the residual graph is
// left disconnected and a diagnostic is returned; there is no repair step.
func BuildGraph(rng *Rand, nodes []Node, targetEdges int, mods Modifiers) ([]Edge, []string) {
	n := len(nodes)
	if n < 2 {
		return nil, nil
	}

	// Candidate edges: each node links to a random count of its 2-4 nearest
	// neighbors, deduplicated on the canonical (low, high) pair key.
	seen := make(map[[2]int]bool)
	var candidates []candidate
	for i := 0; i < n; i++ {
		neighbors := make([]int, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				neighbors = append(neighbors, j)
			}
		}
		sort.Slice(neighbors, func(a, b int) bool {
			return nodes[i].Position.Distance(nodes[neighbors[a]].Position) <
				nodes[i].Position.Distance(nodes[neighbors[b]].Position)
		})
		k := rng.Int(2, 4)
		if k > len(neighbors) {
			k = len(neighbors)
		}
		for _, j := range neighbors[:k] {
			key := pairKey(i, j)
			if seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, candidate{
				from:   key[0],
				to:     key[1],
				length: nodes[key[0]].Position.Distance(nodes[key[1]].Position),
			})
		}
	}

	// Spanning pass: grow the connected set from node 0, always taking the
	// globally shortest candidate that bridges into an unconnected node.
	connected := make([]bool, n)
	connected[0] = true
	connectedCount := 1
	used := make([]bool, len(candidates))
	var edges []Edge

	addEdge := func(c candidate) {
		kind := edgeKind(rng, nodes[c.from].Role, nodes[c.to].Role, mods)
		edges = append(edges, Edge{
			ID:     len(edges),
			From:   c.from,
			To:     c.to,
			Kind:   kind,
			Length: c.length,
		})
		linkAdjacent(nodes, c.from, c.to)
	}

	for connectedCount < n {
		best := -1
		for idx, c := range candidates {
			if used[idx] {
				continue
			}
			if connected[c.from] == connected[c.to] {
				continue
			}
			if best < 0 || c.length < candidates[best].length {
				best = idx
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		c := candidates[best]
		if !connected[c.from] {
			connected[c.from] = true
		} else {
			connected[c.to] = true
		}
		connectedCount++
		addEdge(c)
	}

	var diagnostics []string
	if connectedCount < n {
		diagnostics = append(diagnostics,
			fmt.Sprintf("graph disconnected: %d of %d nodes reachable from node 0", connectedCount, n))
	}

	// Densification: shuffle the remaining candidates and append in that
	// order until the edge target is met or candidates run out.
	var rest []candidate
	for idx, c := range candidates {
		if !used[idx] {
			rest = append(rest, c)
		}
	}
	rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
	for _, c := range rest {
		if len(edges) >= targetEdges {
			break
		}
		addEdge(c)
	}

	return edges, diagnostics
}

// edgeKind biases traversal kinds by endpoint roles: hidden endpoints pull
// toward witness-only or conditional, witness endpoints get a halved
// witness-only chance, everything else draws from fixed weight bands.
func edgeKind(rng *Rand, a, b Role, mods Modifiers) EdgeKind {
	if a == RoleHidden || b == RoleHidden {
		if rng.Next() < mods.WitnessAffinity {
			return EdgeWitnessOnly
		}
		return EdgeConditional
	}
	if a == RoleWitness || b == RoleWitness {
		if rng.Next() < mods.WitnessAffinity*0.5 {
			return EdgeWitnessOnly
		}
	}
	r := rng.Next()
	switch {
	case r < 0.10:
		return EdgeBridge
	case r < 0.15:
		return EdgeOneWay
	case r < 0.20:
		return EdgeConditional
	default:
		return EdgePath
	}
}

func linkAdjacent(nodes []Node, a, b int) {
	if !containsID(nodes[a].Adjacent, b) {
		nodes[a].Adjacent = append(nodes[a].Adjacent, b)
	}
	if !containsID(nodes[b].Adjacent, a) {
		nodes[b].Adjacent = append(nodes[b].Adjacent, a)
	}
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
