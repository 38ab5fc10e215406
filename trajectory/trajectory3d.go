package trajectory

import "github.com/golang/geo/r3"

// State is the full triple-integrator state of a vehicle in the world
// frame: one AxisState per translational axis.
type State struct {
	X, Y, Z AxisState
}

// Position, Velocity, Acceleration and Jerk project State down to a single
// r3.Vector each, the shape the planner's collision and selection code
// actually wants to work with.
func (s State) Position() r3.Vector     { return r3.Vector{X: s.X.X, Y: s.Y.X, Z: s.Z.X} }
func (s State) Velocity() r3.Vector     { return r3.Vector{X: s.X.V, Y: s.Y.V, Z: s.Z.V} }
func (s State) Acceleration() r3.Vector { return r3.Vector{X: s.X.A, Y: s.Y.A, Z: s.Z.A} }
func (s State) Jerk() r3.Vector         { return r3.Vector{X: s.X.J, Y: s.Y.J, Z: s.Z.J} }

// Trajectory3D bundles one generated AxisProfile per world axis and
// evaluates them together, the Go counterpart of get_traj's three
// independent find_times calls plus eval_trajectory's joint sampling.
type Trajectory3D struct {
	PX, PY, PZ AxisProfile
}

// GenerateTrajectory3D builds a Trajectory3D driving state from toward a
// unit-normalized direction at speed v, independently per axis -- axes are
// not time-synchronized, matching the disabled sync_times routine in the
// source: off-axis moves can produce curved rather than straight paths,
// and that is treated as documented behavior, not a bug.
func GenerateTrajectory3D(from State, dir r3.Vector, v float64, p FindTimesParams, stop bool) Trajectory3D {
	unit := dir
	if n := unit.Norm(); n > 0 {
		unit = unit.Mul(1 / n)
	}
	vx, vy, vz := v*unit.X, v*unit.Y, v*unit.Z

	pp := p
	pp.StopCheck = stop

	return Trajectory3D{
		PX: GenerateAxisProfile(from.X, vx, pp),
		PY: GenerateAxisProfile(from.Y, vy, pp),
		PZ: GenerateAxisProfile(from.Z, vz, pp),
	}
}

// TotalDuration returns the longest of the three axis profile durations,
// the time at which every axis has reached its terminal state.
func (tr Trajectory3D) TotalDuration() float64 {
	d := tr.PX.TotalDuration()
	if v := tr.PY.TotalDuration(); v > d {
		d = v
	}
	if v := tr.PZ.TotalDuration(); v > d {
		d = v
	}
	return d
}

// Evaluate samples all three axes at elapsed time t and reassembles them
// into a joint State, the Go equivalent of eval_trajectory's per-axis
// segment lookup followed by assembly into the 4x3 Xc matrix.
func (tr Trajectory3D) Evaluate(t float64) State {
	return State{
		X: tr.PX.Evaluate(t),
		Y: tr.PY.Evaluate(t),
		Z: tr.PZ.Evaluate(t),
	}
}
