package physics2d

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// snapshot renders a world's body list as one "position angle" line per
// body, in list-traversal order. Two worlds built by the same sequence
// of CreateBody calls traverse in the same order, so this is a stable
// basis for comparing two runs of the same scene.
func (world *World) snapshot() []string {
	lines := make([]string, 0, world.BodyCount)
	i := 0
	for b := world.BodyList; b != nil; b = b.Next {
		pos := b.GetPosition()
		lines = append(lines, fmt.Sprintf("body[%d]: %.6f %.6f %.6f", i, pos.X, pos.Y, b.GetAngle()))
		i++
	}
	return lines
}

// DiffAgainst compares this world's body transforms against another
// world's, returning a unified diff and whether the two matched. It
// exists for the same manual regression-chasing a developer would do
// by hand when a scene stops matching a previously recorded run: build
// the reference world once, replay the candidate, and DiffAgainst
// reports exactly which bodies moved.
func (world *World) DiffAgainst(other *World) (string, bool) {
	a := world.snapshot()
	b := other.snapshot()

	if len(a) != len(b) {
		return fmt.Sprintf("body count mismatch: %d vs %d", len(a), len(b)), false
	}
	for i := range a {
		if a[i] != b[i] {
			diff := difflib.UnifiedDiff{
				A:        a,
				B:        b,
				FromFile: "this",
				ToFile:   "other",
				Context:  1,
			}
			text, _ := difflib.GetUnifiedDiffString(diff)
			return text, false
		}
	}
	return "", true
}
