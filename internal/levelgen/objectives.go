package levelgen

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var objectivePrinter = message.NewPrinter(language.AmericanEnglish)

// DeriveObjectives reads goals off the realized graph.
//
// A required reach objective targets the nexus when one exists. Puzzle nodes
// yield an optional activate objective over half of them (rounded up, in
// node order). Witness nodes yield an optional witness objective over all of
// them, but only for players whose witness affinity exceeds 0.5.
func DeriveObjectives(nodes []Node, mods Modifiers) []Objective {
	var objectives []Objective

	var nexusID = -1
	var puzzles, witnesses []int
	for _, node := range nodes {
		switch node.Role {
		case RoleNexus:
			if nexusID < 0 {
				nexusID = node.ID
			}
		case RolePuzzle:
			puzzles = append(puzzles, node.ID)
		case RoleWitness:
			witnesses = append(witnesses, node.ID)
		}
	}

	if nexusID >= 0 {
		objectives = append(objectives, Objective{
			ID:          fmt.Sprintf("obj-%d", len(objectives)+1),
			Kind:        ObjectiveReach,
			TargetIDs:   []int{nexusID},
			Required:    true,
			Description: objectivePrinter.Sprintf("Reach the nexus chamber"),
		})
	}

	if len(puzzles) > 0 {
		want := int(math.Ceil(float64(len(puzzles)) * 0.5))
		objectives = append(objectives, Objective{
			ID:          fmt.Sprintf("obj-%d", len(objectives)+1),
			Kind:        ObjectiveActivate,
			TargetIDs:   puzzles[:want],
			Required:    false,
			Description: objectivePrinter.Sprintf("Activate %d of %d puzzle mechanisms", want, len(puzzles)),
		})
	}

	if len(witnesses) > 0 && mods.WitnessAffinity > 0.5 {
		objectives = append(objectives, Objective{
			ID:          fmt.Sprintf("obj-%d", len(objectives)+1),
			Kind:        ObjectiveWitness,
			TargetIDs:   witnesses,
			Required:    false,
			Description: objectivePrinter.Sprintf("Observe all %d witness sites", len(witnesses)),
		})
	}

	return objectives
}
