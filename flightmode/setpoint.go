package flightmode

import (
	"time"

	"github.com/golang/geo/r3"

	"github.com/aclswarm/tip/spatialmath"
)

// ControlMode selects how the downstream controller should interpret the
// xy/z fields of a Setpoint.
type ControlMode int

const (
	ModePosition ControlMode = iota
	ModeAccel
)

// OperatingMode is the externally commanded high-level operating mode
// (spec.md's `mode(kind)` input), used only to pick xy/z control modes.
type OperatingMode int

const (
	OpIdle OperatingMode = iota
	OpWaypoint
	OpOther
)

// ControlModesFor returns the xy/z ControlMode pair for an operating
// mode, the Go port of modeCB: idle and waypoint track position; every
// other mode commands acceleration in xy while still holding z position.
func ControlModesFor(op OperatingMode) (xy, z ControlMode) {
	if op == OpIdle || op == OpWaypoint {
		return ModePosition, ModePosition
	}
	return ModeAccel, ModePosition
}

// Setpoint is the periodic output described in spec.md's external
// interfaces: full triple-integrator state plus yaw, control modes, and a
// power-cut flag.
type Setpoint struct {
	Pos, Vel, Accel, Jerk r3.Vector
	Yaw, DYaw             float64
	XYMode, ZMode         ControlMode
	CutPower              bool
	Timestamp             time.Time
	Frame                 string
}

// YawStep advances yaw toward target by at most rMax*planEval radians,
// the Go port of the yaw() helper: diff is clamped to the per-tick slew
// limit, yaw is incremented by the clamped diff, and dyaw reports the
// constant-magnitude rate (signed by direction) the vehicle is
// commanded to turn at, not the (possibly smaller) instantaneous diff.
func YawStep(yaw, target, rMax, planEval float64) (newYaw, dyaw float64) {
	diff := spatialmath.AngleWrap(target - yaw)
	limit := rMax * planEval
	if diff > limit {
		diff = limit
	} else if diff < -limit {
		diff = -limit
	}
	if diff > 0 {
		dyaw = rMax
	} else {
		dyaw = -rMax
	}
	return spatialmath.AngleWrap(yaw + diff), dyaw
}
