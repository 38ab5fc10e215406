package planner

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestSampleGridDegeneratesOnZeroVSamples(t *testing.T) {
	dirs := SampleGrid(90, 60, 5, 0)
	test.That(t, len(dirs), test.ShouldEqual, 5)
}

func TestSampleGridUnitVectors(t *testing.T) {
	dirs := SampleGrid(90, 60, 3, 3)
	for _, d := range dirs {
		test.That(t, d.Norm(), test.ShouldAlmostEqual, 1.0)
	}
}

func TestSortCandidatesPrependsGoalWhenInView(t *testing.T) {
	dirs := SampleGrid(90, 60, 3, 3)
	in := SortInputs{
		Pos:         r3.Vector{},
		Goal:        r3.Vector{X: 10},
		LastGoalDir: r3.Vector{X: 1},
		Yaw:         0,
		Heading:     0,
		HFOVDeg:     90,
		VFOVDeg:     60,
	}
	sorted, inView := SortCandidates(dirs, in)
	test.That(t, inView, test.ShouldBeTrue)
	test.That(t, sorted[0].IsGlobalGoal, test.ShouldBeTrue)
	test.That(t, sorted[0].Cost, test.ShouldEqual, 0.0)
}

func TestSortCandidatesAscendingCost(t *testing.T) {
	dirs := SampleGrid(90, 60, 5, 5)
	in := SortInputs{
		Goal:        r3.Vector{X: 10},
		LastGoalDir: r3.Vector{X: 1},
		HFOVDeg:     90,
		VFOVDeg:     60,
	}
	sorted, _ := SortCandidates(dirs, in)
	for i := 1; i < len(sorted); i++ {
		test.That(t, sorted[i].Cost, test.ShouldBeGreaterThanOrEqualTo, sorted[i-1].Cost)
	}
}
