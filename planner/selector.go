package planner

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/aclswarm/tip/collision"
	"github.com/aclswarm/tip/obstaclememory"
	"github.com/aclswarm/tip/spatialmath"
	"github.com/aclswarm/tip/trajectory"
)

// Primitive is the world-frame direction and cost of a selected candidate.
type Primitive struct {
	WorldDir     r3.Vector
	Cost         float64
	IsGlobalGoal bool
}

// Select evaluates cost-sorted candidates (as produced by SortCandidates)
// in order, stopping at the first one whose trajectory is collision-clear.
// If none is outright clear, it falls back to the candidate with the
// lowest finite penalty across every candidate evaluated. The Go port of
// pick_ss.
//
// canReachGoal reports whether any feasible candidate was found at all;
// when false the caller must force a stop (C7/no-feasible-path handling).
// canReachGlobalGoal additionally reports whether the selected candidate
// is the synthetic global-goal candidate and the goal lies within
// sensorDist of the current position, mirroring can_reach_global_goal_.
func Select(
	candidates []Candidate,
	from trajectory.State,
	goal r3.Vector,
	yaw, v float64,
	mem *obstaclememory.Memory,
	cp collision.Params,
	tp trajectory.FindTimesParams,
	sensorDist float64,
) (prim Primitive, canReachGoal, canReachGlobalGoal bool) {
	if len(candidates) == 0 {
		return Primitive{}, false, false
	}

	reachedIdx := -1
	for i := range candidates {
		worldDir := spatialmath.BodyToWorldXY(candidates[i].BodyDir, yaw)
		traj := trajectory.GenerateTrajectory3D(from, worldDir, v, tp, false)
		res := collision.Evaluate(traj, from, goal, v, mem, cp)
		candidates[i].Cost = res.Penalty
		if res.Reachable {
			reachedIdx = i
			break
		}
	}

	chosenIdx := reachedIdx
	if chosenIdx < 0 {
		// No candidate was outright clear; fall back to the lowest-penalty
		// candidate evaluated so far (every candidate was evaluated in
		// this branch, since the loop above only breaks early on success).
		bestCost := math.Inf(1)
		for i := range candidates {
			if candidates[i].Cost < bestCost {
				bestCost = candidates[i].Cost
				chosenIdx = i
			}
		}
		if math.IsInf(bestCost, 1) {
			return Primitive{}, false, false
		}
	}

	chosen := candidates[chosenIdx]
	worldDir := spatialmath.BodyToWorldXY(chosen.BodyDir, yaw)

	horizDist := horizontalNorm(goal.Sub(from.Position()))
	canReachGlobalGoal = chosen.IsGlobalGoal && horizDist < sensorDist

	return Primitive{WorldDir: worldDir, Cost: chosen.Cost, IsGlobalGoal: chosen.IsGlobalGoal}, true, canReachGlobalGoal
}

func horizontalNorm(v r3.Vector) float64 {
	return math.Hypot(v.X, v.Y)
}
