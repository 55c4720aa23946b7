package levelgen

import "math"

// Config holds the base generation inputs supplied by the caller.
type Config struct {
	BaseNodeCount      int
	BaseDimensionCount int
	DifficultyScale    float64
	PlayerCount        int
	LevelProgression   int
}

// Modifiers are the personalization scores supplied by the external player
// profile subsystem. All values are expected in [0, 1].
type Modifiers struct {
	ComplexityTolerance float64
	ExplorationBias     float64
	WitnessAffinity     float64
	PerceptionDemand    float64
	TimePressure        float64
}

// Parameters are the concrete generation parameters for one call.
//
// The count formulas are behavioral contracts: leaderboards key on rounded
// parameters, so they must not drift between releases.
type Parameters struct {
	NodeCount       int `json:"node_count"`
	EdgeCount       int `json:"edge_count"`
	PortalCount     int `json:"portal_count"`
	DimensionLayers int `json:"dimension_layers"`

	ComplexityScore    float64 `json:"complexity_score"`
	IntensityScore     float64 `json:"intensity_score"`
	CoordinationDemand float64 `json:"coordination_demand"`

	PlayerCount int `json:"player_count"`

	GeometrySeed int64 `json:"geometry_seed"`
	PatternSeed  int64 `json:"pattern_seed"`
	ColorSeed    int64 `json:"color_seed"`
}

// Reference densities used by the composite scores and the difficulty
// rating. Absolute scales keep the scores monotone in the raw counts.
const (
	nodeDensityScale  = 50.0
	edgeDensityScale  = 75.0
	layerDensityScale = 3.0
)

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// CalculateParameters maps the base config and modifiers onto concrete
// generation parameters. It is pure aside from deriving the three stream
// sub-seeds from rng. Degenerate inputs are clamped, never rejected.
func CalculateParameters(rng *Rand, cfg Config, mods Modifiers) Parameters {
	baseNodes := cfg.BaseNodeCount
	if baseNodes < 2 {
		baseNodes = 2
	}
	players := cfg.PlayerCount
	if players < 1 {
		players = 1
	}
	baseLayers := cfg.BaseDimensionCount
	if baseLayers < 1 {
		baseLayers = 1
	}

	progressionScale := 1 + float64(cfg.LevelProgression)*0.2
	nodeCount := int(math.Round(float64(baseNodes) * progressionScale * (0.8 + mods.ComplexityTolerance*0.4)))
	if nodeCount < 2 {
		nodeCount = 2
	}
	edgeCount := int(math.Round(float64(nodeCount) * (1.2 + mods.ExplorationBias*0.6)))
	portalCount := int(math.Round(2 + mods.WitnessAffinity*4))
	layers := baseLayers + cfg.LevelProgression/3
	if layers > 3 {
		layers = 3
	}

	complexity := clamp01(float64(nodeCount)/nodeDensityScale*0.4 +
		float64(edgeCount)/edgeDensityScale*0.35 +
		float64(layers)/layerDensityScale*0.25)
	intensity := clamp01(mods.PerceptionDemand*0.5 + mods.TimePressure*0.3 + cfg.DifficultyScale*0.2)

	coordination := 0.0
	if players > 1 {
		coordination = 0.5 + float64(players)*0.1
	}

	return Parameters{
		NodeCount:          nodeCount,
		EdgeCount:          edgeCount,
		PortalCount:        portalCount,
		DimensionLayers:    layers,
		ComplexityScore:    complexity,
		IntensityScore:     intensity,
		CoordinationDemand: coordination,
		PlayerCount:        players,
		GeometrySeed:       rng.SubSeed("geometry"),
		PatternSeed:        rng.SubSeed("pattern"),
		ColorSeed:          rng.SubSeed("color"),
	}
}
