package flightmode

import "github.com/golang/geo/r3"

// DetectJump compares a freshly received position estimate against the
// planner's last known position and reports whether the discontinuity
// exceeds threshold, along with the bias (new - old) to apply, the Go
// port of stateCB's jump-detection block. The caller is responsible for
// only applying the bias to the active trajectory's position row while in
// Go mode, exactly as the original restricts the correction to that mode.
func DetectJump(oldPos, newPos r3.Vector, threshold float64) (bias r3.Vector, jumped bool) {
	bias = newPos.Sub(oldPos)
	return bias, bias.Norm() > threshold
}
