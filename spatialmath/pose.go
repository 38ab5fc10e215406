// Package spatialmath provides the minimal pose/orientation math the
// planner needs: a world-frame Pose, yaw extraction, and rotation of
// vectors between the world frame and a yaw-only body frame. It is a
// deliberately small relative of the teacher's much larger spatialmath
// package (Pose, Compose, OrientationVector, quaternion helpers), trimmed
// to what a reactive 1-D-per-axis planner actually consumes.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/quat"
)

// Pose is a rigid-body pose expressed in the world frame.
type Pose struct {
	Position    r3.Vector
	Orientation quat.Number
}

// NewZeroPose returns the identity pose at the origin.
func NewZeroPose() Pose {
	return Pose{Position: r3.Vector{}, Orientation: quat.Number{Real: 1}}
}

// NewPoseFromPoint returns a pose at pt with identity orientation.
func NewPoseFromPoint(pt r3.Vector) Pose {
	return Pose{Position: pt, Orientation: quat.Number{Real: 1}}
}

// NewPoseFromYaw returns a pose at pt with only a yaw (about +Z) rotation.
func NewPoseFromYaw(pt r3.Vector, yawRad float64) Pose {
	return Pose{Position: pt, Orientation: quatFromYaw(yawRad)}
}

func quatFromYaw(yaw float64) quat.Number {
	h := yaw / 2
	return quat.Number{Real: math.Cos(h), Imag: 0, Jmag: 0, Kmag: math.Sin(h)}
}

// Yaw extracts the heading angle about +Z from an orientation that is
// assumed (as in tip.cpp) to carry no roll or pitch component.
func Yaw(q quat.Number) float64 {
	q = quat.Scale(1/quat.Abs(q), q)
	return 2 * math.Atan2(q.Kmag, q.Real)
}

// Yaw returns the pose's heading angle about +Z.
func (p Pose) Yaw() float64 { return Yaw(p.Orientation) }

// AngleWrap normalizes an angle in radians to (-pi, pi], mirroring tip.cpp's
// angle_wrap helper used throughout yaw-rate limiting.
func AngleWrap(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// WorldToBodyXY rotates a world-frame XY vector into the yaw-only body
// frame described by yawRad. Z is left untouched since the planner's body
// frame never rolls or pitches.
func WorldToBodyXY(v r3.Vector, yawRad float64) r3.Vector {
	c, s := math.Cos(yawRad), math.Sin(yawRad)
	return r3.Vector{
		X: c*v.X + s*v.Y,
		Y: -s*v.X + c*v.Y,
		Z: v.Z,
	}
}

// BodyToWorldXY is the inverse of WorldToBodyXY.
func BodyToWorldXY(v r3.Vector, yawRad float64) r3.Vector {
	c, s := math.Cos(yawRad), math.Sin(yawRad)
	return r3.Vector{
		X: c*v.X - s*v.Y,
		Y: s*v.X + c*v.Y,
		Z: v.Z,
	}
}

// Compose returns the pose resulting from applying delta in the frame of base.
func Compose(base, delta Pose) Pose {
	rotated := BodyToWorldXY(delta.Position, base.Yaw())
	return Pose{
		Position:    base.Position.Add(rotated),
		Orientation: quat.Mul(base.Orientation, delta.Orientation),
	}
}
