package planner

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/aclswarm/tip/collision"
	"github.com/aclswarm/tip/obstaclememory"
	"github.com/aclswarm/tip/trajectory"
)

func testCollisionParams() collision.Params {
	return collision.Params{Buffer: 0.5, SafeDist: 3, SensorDist: 5, ZMin: 0.2, ZMax: 3, K: 1}
}

func testTrajParams() trajectory.FindTimesParams {
	return trajectory.FindTimesParams{JMax: 20, AMax: 2, AStop: 3, VMax: 2, TrimJerk: 5}
}

func TestSelectObstacleFreePicksGoalCandidate(t *testing.T) {
	mem := obstaclememory.NewMemory(1)
	mem.Insert(nil)

	from := trajectory.State{Z: trajectory.AxisState{X: 1}}
	goal := r3.Vector{X: 10, Y: 0, Z: 1}

	dirs := SampleGrid(90, 60, 5, 5)
	sorted, _ := SortCandidates(dirs, SortInputs{
		Pos: from.Position(), Goal: goal, LastGoalDir: r3.Vector{X: 1},
		HFOVDeg: 90, VFOVDeg: 60,
	})

	prim, canReach, _ := Select(sorted, from, goal, 0, 2, mem, testCollisionParams(), testTrajParams(), 5)
	test.That(t, canReach, test.ShouldBeTrue)
	test.That(t, prim.WorldDir.X, test.ShouldBeGreaterThan, 0)
}

func TestSelectNoCandidatesIsInfeasible(t *testing.T) {
	mem := obstaclememory.NewMemory(1)
	from := trajectory.State{}
	_, canReach, _ := Select(nil, from, r3.Vector{X: 1}, 0, 2, mem, testCollisionParams(), testTrajParams(), 5)
	test.That(t, canReach, test.ShouldBeFalse)
}

func TestStopCheckNoOpWhenCannotReachGlobalGoal(t *testing.T) {
	from := trajectory.State{}
	mustStop, _, _ := StopCheck(from, r3.Vector{X: 1}, false, testTrajParams())
	test.That(t, mustStop, test.ShouldBeFalse)
}
