package levelgen

import "testing"

func TestDistributeRolesPinsSpecialRoles(t *testing.T) {
	mods := Modifiers{ComplexityTolerance: 0.5, ExplorationBias: 0.5, WitnessAffinity: 0.5}
	for seed := int64(0); seed < 10; seed++ {
		roles := DistributeRoles(NewRand(seed), 20, mods)
		anchors, nexuses := 0, 0
		for _, role := range roles {
			switch role {
			case RoleAnchor:
				anchors++
			case RoleNexus:
				nexuses++
			case RoleTransit, RolePuzzle, RoleWitness, RoleHidden:
			default:
				t.Fatalf("seed %d: unexpected role %q", seed, role)
			}
		}
		if anchors != 1 {
			t.Fatalf("seed %d: expected exactly one anchor, got %d", seed, anchors)
		}
		if nexuses != 1 {
			t.Fatalf("seed %d: expected exactly one nexus, got %d", seed, nexuses)
		}
	}
}

func TestDistributeRolesDeterministic(t *testing.T) {
	mods := Modifiers{ComplexityTolerance: 0.3, ExplorationBias: 0.7, WitnessAffinity: 0.2}
	a := DistributeRoles(NewRand(55), 30, mods)
	b := DistributeRoles(NewRand(55), 30, mods)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("role list diverged at index %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestDistributeRolesTinyCounts(t *testing.T) {
	if roles := DistributeRoles(NewRand(1), 0, Modifiers{}); roles != nil {
		t.Fatalf("expected nil for zero count, got %v", roles)
	}
	one := DistributeRoles(NewRand(1), 1, Modifiers{})
	if len(one) != 1 {
		t.Fatalf("expected one role, got %d", len(one))
	}
	two := DistributeRoles(NewRand(1), 2, Modifiers{})
	found := map[Role]bool{two[0]: true, two[1]: true}
	if !found[RoleAnchor] || !found[RoleNexus] {
		t.Fatalf("expected anchor and nexus in two-node level, got %v", two)
	}
}
