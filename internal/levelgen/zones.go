package levelgen

import "fmt"

const (
	maxZones   = 3
	zoneRadius = 8.0
)

// zoneMechanics are the cooperative mechanic tags a zone can carry.
var zoneMechanics = []string{
	"simultaneous-activation",
	"weight-distribution",
	"relay-signal",
	"mirror-sync",
}

// AllocateZones places cooperative synchronization zones on up to three
// puzzle nodes in first-come order. Each zone demands between two and four
// players, capped at the actual player count. Never called for solo play.
func AllocateZones(rng *Rand, nodes []Node, playerCount int) []MultiplayerZone {
	if playerCount <= 1 {
		return nil
	}

	var zones []MultiplayerZone
	for _, node := range nodes {
		if node.Role != RolePuzzle {
			continue
		}
		required := rng.Int(2, 4)
		if required > playerCount {
			required = playerCount
		}
		zones = append(zones, MultiplayerZone{
			ID:              fmt.Sprintf("zone-%d", len(zones)+1),
			Center:          node.Position,
			Radius:          zoneRadius,
			RequiredPlayers: required,
			Mechanic:        zoneMechanics[rng.Pick(len(zoneMechanics))],
		})
		if len(zones) == maxZones {
			break
		}
	}
	return zones
}
