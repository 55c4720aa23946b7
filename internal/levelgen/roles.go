package levelgen

// DistributeRoles assigns a role to each of count node slots.
//
// Slot 0 starts as the anchor and the final slot as the nexus; interior
// slots draw from cumulative probability bands driven by the player's
// modifiers. The full list is then shuffled as a whole before being paired
// with positions, so neither special role is guaranteed to land on its
// original index. Spawn and exit lookups locate these roles by value, never
// by index, so the shuffle is load-bearing observed behavior and must stay.
func DistributeRoles(rng *Rand, count int, mods Modifiers) []Role {
	if count <= 0 {
		return nil
	}
	roles := make([]Role, count)
	roles[0] = RoleAnchor
	if count > 1 {
		roles[count-1] = RoleNexus
	}

	hiddenRatio := 0.10 + mods.ExplorationBias*0.15
	witnessRatio := 0.10 + mods.WitnessAffinity*0.15
	puzzleRatio := 0.20 + mods.ComplexityTolerance*0.10

	for i := 1; i < count-1; i++ {
		r := rng.Next()
		switch {
		case r < hiddenRatio:
			roles[i] = RoleHidden
		case r < hiddenRatio+witnessRatio:
			roles[i] = RoleWitness
		case r < hiddenRatio+witnessRatio+puzzleRatio:
			roles[i] = RolePuzzle
		default:
			roles[i] = RoleTransit
		}
	}

	rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	return roles
}
