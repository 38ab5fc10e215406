// Package collision implements C5: given a candidate (or currently
// followed) trajectory and the obstacle memory ring, decide whether the
// path is clear, and if not, how costly continuing to consider it is.
// It is a direct port of tip.cpp's collision_check (candidate evaluation)
// and check_current_prim (following-primitive re-check), restated with
// named return values instead of output parameters.
package collision

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/aclswarm/tip/obstaclememory"
	"github.com/aclswarm/tip/trajectory"
)

// Params bundles the distance/altitude bounds collision evaluation needs.
type Params struct {
	Buffer     float64
	SafeDist   float64
	SensorDist float64
	ZMin, ZMax float64
	K          int
}

// Result is the outcome of evaluating a single candidate trajectory.
type Result struct {
	Reachable bool
	// Penalty is the collision cost planner.Select records in place of a
	// candidate's direction-based cost; +Inf marks the candidate as
	// rejected outright.
	Penalty float64
}

// Evaluate propagates traj forward from "from", checking obstacle
// clearance at increasing lookahead distances until either a collision is
// found (within Buffer), the goal or sensor horizon is reached, or the
// path leaves the z-corridor. v is the candidate's commanded cruise speed,
// used to pace the propagation step like the original's t_ += dist/v.
func Evaluate(traj trajectory.Trajectory3D, from trajectory.State, goal r3.Vector, v float64, mem *obstaclememory.Memory, p Params) Result {
	origin := from.Position()
	goalDistance := goal.Sub(origin).Norm()

	meanDist, ok := mem.MeanNearestDistance(origin, p.K)
	if !ok {
		meanDist = math.Inf(1)
	}

	if meanDist > p.SensorDist || meanDist > goalDistance {
		return Result{Reachable: true, Penalty: 0}
	}

	t := math.Max(p.Buffer/v, meanDist/v)
	for {
		state := traj.Evaluate(t)
		pos := state.Position()

		meanDist, ok = mem.MeanNearestDistance(pos, p.K)
		if !ok {
			meanDist = math.Inf(1)
		}
		distTraveled := pos.Sub(origin).Norm()

		switch {
		case meanDist < p.Buffer:
			if distTraveled < p.SafeDist {
				return Result{Reachable: false, Penalty: math.Inf(1)}
			}
			return Result{Reachable: false, Penalty: 0.05 * (p.SensorDist - distTraveled) * (p.SensorDist - distTraveled)}
		case distTraveled > p.SensorDist || distTraveled > goalDistance:
			if pos.Z < p.ZMin || pos.Z > p.ZMax {
				return Result{Reachable: false, Penalty: math.Inf(1)}
			}
			return Result{Reachable: true, Penalty: 0}
		default:
			t += meanDist / v
		}
	}
}

// CheckCurrentPrimitive re-evaluates the trajectory the vehicle is already
// committed to (the "follow primitive" path), returning whether it
// remains clear all the way out to SafeDist, the Go port of
// check_current_prim.
func CheckCurrentPrimitive(traj trajectory.Trajectory3D, from trajectory.State, elapsed, v float64, mem *obstaclememory.Memory, p Params) (clear bool) {
	origin := from.Position()

	meanDist, ok := mem.MeanNearestDistance(origin, p.K)
	if !ok {
		meanDist = math.Inf(1)
	}
	if meanDist > p.SafeDist {
		return true
	}

	t := math.Max(p.Buffer/v, meanDist/v) + elapsed
	for {
		state := traj.Evaluate(t)
		pos := state.Position()

		meanDist, ok = mem.MeanNearestDistance(pos, p.K)
		if !ok {
			meanDist = math.Inf(1)
		}
		distTraveled := pos.Sub(origin).Norm()

		switch {
		case meanDist < p.Buffer:
			return false
		case distTraveled > p.SafeDist:
			return true
		default:
			t += meanDist / v
		}
	}
}
