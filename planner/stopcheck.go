package planner

import (
	"github.com/golang/geo/r3"

	"github.com/aclswarm/tip/trajectory"
)

// StopCheck is C7's decision wrapper around trajectory.StopDistance: given
// the vehicle can currently reach the global goal, decide whether it must
// begin braking now because its stopping distance already meets or
// exceeds the remaining distance to goal. It is a no-op (never forces a
// stop) when canReachGlobalGoal is false, matching get_stop_dist's own
// guard.
func StopCheck(from trajectory.State, goal r3.Vector, canReachGlobalGoal bool, tp trajectory.FindTimesParams) (mustStop bool, dStop, dGoal float64) {
	if !canReachGlobalGoal {
		return false, 0, 0
	}
	dStop, dGoal, mustStop = trajectory.StopDistance(from, goal, tp)
	return mustStop, dStop, dGoal
}
