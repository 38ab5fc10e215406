package collision

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/aclswarm/tip/obstaclememory"
	"github.com/aclswarm/tip/trajectory"
)

func testParams() Params {
	return Params{Buffer: 0.5, SafeDist: 3, SensorDist: 5, ZMin: 0.2, ZMax: 3, K: 1}
}

func fParams() trajectory.FindTimesParams {
	return trajectory.FindTimesParams{JMax: 20, AMax: 2, AStop: 3, VMax: 2, TrimJerk: 5}
}

func TestEvaluateClearPathIsReachable(t *testing.T) {
	mem := obstaclememory.NewMemory(1)
	mem.Insert(nil) // empty scan, nothing nearby

	from := trajectory.State{Z: trajectory.AxisState{X: 1}}
	goal := r3.Vector{X: 10, Y: 0, Z: 1}
	traj := trajectory.GenerateTrajectory3D(from, goal.Sub(from.Position()), 2, fParams(), false)

	res := Evaluate(traj, from, goal, 2, mem, testParams())
	test.That(t, res.Reachable, test.ShouldBeTrue)
	test.That(t, res.Penalty, test.ShouldEqual, 0.0)
}

func TestEvaluateBlockedNearStartIsRejected(t *testing.T) {
	mem := obstaclememory.NewMemory(1)
	mem.Insert([]r3.Vector{{X: 1, Y: 0, Z: 1}})

	from := trajectory.State{Z: trajectory.AxisState{X: 1}}
	goal := r3.Vector{X: 10, Y: 0, Z: 1}
	traj := trajectory.GenerateTrajectory3D(from, goal.Sub(from.Position()), 2, fParams(), false)

	res := Evaluate(traj, from, goal, 2, mem, testParams())
	test.That(t, res.Reachable, test.ShouldBeFalse)
	test.That(t, math.IsInf(res.Penalty, 1), test.ShouldBeTrue)
}

func TestCheckCurrentPrimitiveClearWhenFarFromObstacles(t *testing.T) {
	mem := obstaclememory.NewMemory(1)
	mem.Insert([]r3.Vector{{X: 100, Y: 100, Z: 100}})

	from := trajectory.State{Z: trajectory.AxisState{X: 1}}
	traj := trajectory.GenerateTrajectory3D(from, r3.Vector{X: 1}, 2, fParams(), false)

	ok := CheckCurrentPrimitive(traj, from, 0, 2, mem, testParams())
	test.That(t, ok, test.ShouldBeTrue)
}
