package levelgen

import (
	"math"
	"time"
)

// Spatial layout constants. The bounding square grows with the square root
// of the node count so point density, and therefore Poisson-disk delivery,
// stays roughly constant across level sizes.
const (
	minNodeDistance = 6.0
	boundsFactor    = 1.5
	exitFallback    = 10.0
)

// Generator produces levels. The zero clock means time.Now; batch callers
// and tests inject a fixed clock so fingerprint timestamps are controlled.
type Generator struct {
	clock func() time.Time
}

// NewGenerator returns a Generator stamping fingerprints with wall time.
func NewGenerator() *Generator {
	return &Generator{clock: time.Now}
}

// NewGeneratorAt returns a Generator with a fixed clock.
func NewGeneratorAt(clock func() time.Time) *Generator {
	return &Generator{clock: clock}
}

// Generate runs the full pipeline for one seed. It never fails for
// structurally valid input: degenerate configs are clamped and expected
// anomalies (Poisson under-delivery, an unreachable residual graph) surface
// through the actual output sizes and the Diagnostics list.
//
// The call is pure and self-contained; running many Generate calls
// concurrently is safe because every source of randomness hangs off the
// Rand instances constructed here.
func (g *Generator) Generate(seed int32, cfg Config, mods Modifiers) *Level {
	rng := NewRand(int64(seed))
	params := CalculateParameters(rng, cfg, mods)

	geometry := NewRand(params.GeometrySeed)
	pattern := NewRand(params.PatternSeed)
	color := NewRand(params.ColorSeed)

	side := minNodeDistance * boundsFactor * math.Sqrt(float64(params.NodeCount))
	points := SamplePoints(geometry, params.NodeCount, minNodeDistance, side)

	// Everything downstream sizes itself off the sampled count. The sampler
	// under-delivering is an expected outcome, not an error.
	roles := DistributeRoles(pattern, len(points), mods)
	nodes := buildNodes(geometry, pattern, points, roles, mods)

	targetEdges := params.EdgeCount
	edges, diagnostics := BuildGraph(pattern, nodes, targetEdges, mods)
	layers := PartitionLayers(color, nodes, params.DimensionLayers)
	portals := placePortals(geometry, nodes, params.PortalCount, params.DimensionLayers)
	objectives := DeriveObjectives(nodes, mods)

	var zones []MultiplayerZone
	if params.PlayerCount > 1 {
		zones = AllocateZones(pattern, nodes, params.PlayerCount)
	}

	spawn, exit := spawnAndExit(nodes)

	level := &Level{
		Seed:       seed,
		Parameters: params,
		Graph: Graph{
			Nodes:   nodes,
			Edges:   edges,
			Portals: portals,
		},
		Layers:           layers,
		Objectives:       objectives,
		MultiplayerZones: zones,
		SpawnPoint:       spawn,
		ExitPoint:        exit,
		Fingerprint:      NewFingerprint(seed, params, mods, g.clock()),
		Diagnostics:      diagnostics,
	}
	return level
}

// buildNodes pairs sampled positions with shuffled roles and attaches the
// role payload variants. Elevation jitter and radii come from the geometry
// stream, payload fields from the pattern stream.
func buildNodes(geometry, pattern *Rand, points []Point, roles []Role, mods Modifiers) []Node {
	nodes := make([]Node, len(points))
	puzzleSeq := 0
	for i, p := range points {
		elevation := geometry.Gaussian(0, 1.5)
		radius := geometry.Range(1.5, 3.5)

		var payload RolePayload
		switch roles[i] {
		case RolePuzzle:
			puzzleSeq++
			payload = PuzzlePayload{
				Complexity: pattern.Range(0.2, 0.2+mods.ComplexityTolerance*0.8),
				Sequence:   puzzleSeq,
			}
		case RoleWitness:
			payload = WitnessPayload{
				Sensitivity: pattern.Range(0.3, 1.0),
			}
		case RoleHidden:
			payload = HiddenPayload{
				Reveal: hiddenReveal(pattern, mods),
			}
		case RoleNexus:
			payload = NexusPayload{
				Charge: pattern.Range(0.5, 1.0),
			}
		}

		nodes[i] = Node{
			ID:       i,
			Position: Vec3{X: p.X, Y: elevation, Z: p.Z},
			Role:     roles[i],
			Radius:   radius,
			Payload:  payload,
		}
	}
	return nodes
}

func hiddenReveal(rng *Rand, mods Modifiers) RevealCondition {
	if rng.Next() < mods.WitnessAffinity {
		return RevealWitness
	}
	if rng.Next() < 0.5 {
		return RevealAttention
	}
	return RevealPuzzle
}

var revealCycle = []RevealCondition{RevealAttention, RevealWitness, RevealPuzzle, RevealAlways}

// placePortals anchors cross-dimension portals near randomly chosen nodes.
// A portal's destination layer is drawn over the full layer range; landing
// on its own layer is allowed and reads as a local rift.
func placePortals(rng *Rand, nodes []Node, count, layerCount int) []Portal {
	if count <= 0 || len(nodes) == 0 {
		return nil
	}
	portals := make([]Portal, 0, count)
	for i := 0; i < count; i++ {
		anchor := nodes[rng.Pick(len(nodes))]
		pos := Vec3{
			X: anchor.Position.X + rng.Gaussian(0, 2),
			Y: anchor.Position.Y,
			Z: anchor.Position.Z + rng.Gaussian(0, 2),
		}
		destination := 0
		if layerCount > 1 {
			destination = rng.Int(0, layerCount-1)
		}
		portals = append(portals, Portal{
			ID:          i,
			Position:    pos,
			Destination: destination,
			Reveal:      revealCycle[rng.Pick(len(revealCycle))],
		})
	}
	return portals
}

// spawnAndExit locates entry and exit by role, never by index: the role
// shuffle in DistributeRoles means index 0 rarely holds the anchor.
func spawnAndExit(nodes []Node) (Vec3, Vec3) {
	spawn := Vec3{}
	exit := Vec3{X: exitFallback, Z: exitFallback}
	for _, node := range nodes {
		switch node.Role {
		case RoleAnchor:
			spawn = node.Position
		case RoleNexus:
			exit = node.Position
		}
	}
	return spawn, exit
}
