package levelgen

import (
	"math"
	"time"
)

// Vec3 is a point in level space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Distance returns the Euclidean distance between two points.
func (v Vec3) Distance(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Role classifies what a node does in the level.
type Role string

const (
	RoleAnchor  Role = "anchor"
	RoleTransit Role = "transit"
	RolePuzzle  Role = "puzzle"
	RoleWitness Role = "witness"
	RoleHidden  Role = "hidden"
	RoleNexus   Role = "nexus"
)

// EdgeKind classifies how an edge can be traversed.
type EdgeKind string

const (
	EdgePath        EdgeKind = "path"
	EdgeBridge      EdgeKind = "bridge"
	EdgeConditional EdgeKind = "conditional"
	EdgeOneWay      EdgeKind = "one-way"
	EdgeWitnessOnly EdgeKind = "witness-only"
)

// RevealCondition gates when a portal or hidden node becomes visible.
type RevealCondition string

const (
	RevealAttention RevealCondition = "attention"
	RevealWitness   RevealCondition = "witness"
	RevealPuzzle    RevealCondition = "puzzle"
	RevealAlways    RevealCondition = "always"
)

// LayerType is the thematic identity of a dimension layer.
type LayerType string

const (
	LayerLattice LayerType = "LATTICE"
	LayerMarrow  LayerType = "MARROW"
	LayerVoid    LayerType = "VOID"
)

// RolePayload carries role-specific node data. Variants hold only the
// fields relevant to their role; nodes without extra data carry nil.
type RolePayload interface {
	rolePayload()
}

// PuzzlePayload describes a puzzle node's mechanism.
type PuzzlePayload struct {
	Complexity float64 `json:"complexity"`
	Sequence   int     `json:"sequence"`
}

// WitnessPayload describes a witness node's observation field.
type WitnessPayload struct {
	Sensitivity float64 `json:"sensitivity"`
}

// HiddenPayload describes how a hidden node is revealed.
type HiddenPayload struct {
	Reveal RevealCondition `json:"reveal"`
}

// NexusPayload marks the level's terminal chamber.
type NexusPayload struct {
	Charge float64 `json:"charge"`
}

func (PuzzlePayload) rolePayload()  {}
func (WitnessPayload) rolePayload() {}
func (HiddenPayload) rolePayload()  {}
func (NexusPayload) rolePayload()   {}

// Node is a single location in the level graph.
type Node struct {
	ID       int         `json:"id"`
	Position Vec3        `json:"position"`
	Role     Role        `json:"role"`
	Radius   float64     `json:"radius"`
	Layer    int         `json:"layer"`
	Adjacent []int       `json:"adjacent"`
	Payload  RolePayload `json:"payload,omitempty"`
}

// Edge connects two nodes.
type Edge struct {
	ID     int      `json:"id"`
	From   int      `json:"from"`
	To     int      `json:"to"`
	Kind   EdgeKind `json:"kind"`
	Length float64  `json:"length"`
}

// Portal links a point in space to another dimension layer.
type Portal struct {
	ID          int             `json:"id"`
	Position    Vec3            `json:"position"`
	Destination int             `json:"destination"`
	Reveal      RevealCondition `json:"reveal"`
}

// Graph owns the realized spatial structure of a level.
type Graph struct {
	Nodes   []Node   `json:"nodes"`
	Edges   []Edge   `json:"edges"`
	Portals []Portal `json:"portals"`
}

// LayerStyle is the presentation parameter set for one dimension layer.
// Styling is consumed by external renderers but generated here so that a
// seed reproduces the level exactly, visuals included.
type LayerStyle struct {
	PrimaryColor    string  `json:"primary_color"`
	SecondaryColor  string  `json:"secondary_color"`
	FogDensity      float64 `json:"fog_density"`
	ParticleDensity float64 `json:"particle_density"`
	GeometryStyle   string  `json:"geometry_style"`
}

// DimensionLayer is a thematic partition of the node set.
type DimensionLayer struct {
	ID      int        `json:"id"`
	Type    LayerType  `json:"type"`
	NodeIDs []int      `json:"node_ids"`
	Style   LayerStyle `json:"style"`
}

// ObjectiveKind classifies a derived objective.
type ObjectiveKind string

const (
	ObjectiveReach    ObjectiveKind = "reach"
	ObjectiveActivate ObjectiveKind = "activate"
	ObjectiveWitness  ObjectiveKind = "witness"
)

// Objective is a goal derived from the realized graph.
type Objective struct {
	ID          string        `json:"id"`
	Kind        ObjectiveKind `json:"kind"`
	TargetIDs   []int         `json:"target_ids"`
	Required    bool          `json:"required"`
	Description string        `json:"description"`
}

// MultiplayerZone is a cooperative synchronization area.
type MultiplayerZone struct {
	ID              string  `json:"id"`
	Center          Vec3    `json:"center"`
	Radius          float64 `json:"radius"`
	RequiredPlayers int     `json:"required_players"`
	Mechanic        string  `json:"mechanic"`
}

// Tier buckets a difficulty rating for display.
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
	TierExpert       Tier = "expert"
	TierTranscendent Tier = "transcendent"
)

// Fingerprint identifies a level by its rounded generation parameters.
// Play statistics live in the registry, not here.
type Fingerprint struct {
	ID        string    `json:"id"`
	ShortCode string    `json:"short_code"`
	Rating    int       `json:"rating"`
	Tier      Tier      `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}

// Level is the fully assembled output of one generation call. It is
// immutable once returned; renderers and backends must not mutate it.
type Level struct {
	Seed             int32             `json:"seed"`
	Parameters       Parameters        `json:"parameters"`
	Graph            Graph             `json:"graph"`
	Layers           []DimensionLayer  `json:"layers"`
	Objectives       []Objective       `json:"objectives"`
	MultiplayerZones []MultiplayerZone `json:"multiplayer_zones,omitempty"`
	SpawnPoint       Vec3              `json:"spawn_point"`
	ExitPoint        Vec3              `json:"exit_point"`
	Fingerprint      Fingerprint       `json:"fingerprint"`
	Diagnostics      []string          `json:"diagnostics,omitempty"`
}
