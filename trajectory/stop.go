package trajectory

import "github.com/golang/geo/r3"

// StopDistance reports the horizontal braking distance the vehicle would
// travel if it started a full stop maneuver right now from current
// heading toward goal, the Go port of get_stop_dist. It also reports
// whether that braking distance already meets or exceeds the remaining
// horizontal distance to goal, in which case the caller must stop now
// rather than keep selecting new cruise primitives.
func StopDistance(from State, goal r3.Vector, p FindTimesParams) (dStop, dGoal float64, mustStop bool) {
	pos := from.Position()
	toGoal := goal.Sub(pos)

	stopTraj := GenerateTrajectory3D(from, toGoal, 0, p, true)
	dur := stopTraj.TotalDuration()
	stopEnd := stopTraj.Evaluate(dur)

	dStop = horizontalDist(stopEnd.Position(), pos)
	dGoal = horizontalDist(pos, goal)

	// Prevents oscillation when the commanded speed (and hence stopping
	// distance) is already very small.
	if dStop < 0.1 {
		dStop = 0.1
	}

	mustStop = dStop >= dGoal
	return dStop, dGoal, mustStop
}

func horizontalDist(a, b r3.Vector) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return (r3.Vector{X: dx, Y: dy}).Norm()
}
