package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestAngleWrap(t *testing.T) {
	test.That(t, AngleWrap(0), test.ShouldAlmostEqual, 0)
	test.That(t, AngleWrap(3*math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, AngleWrap(-3*math.Pi), test.ShouldAlmostEqual, math.Pi)
}

func TestYawRoundTrip(t *testing.T) {
	for _, yaw := range []float64{0, math.Pi / 4, -math.Pi / 3, math.Pi - 0.01} {
		q := quatFromYaw(yaw)
		test.That(t, Yaw(q), test.ShouldAlmostEqual, yaw)
	}
}

func TestBodyWorldRoundTrip(t *testing.T) {
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	yaw := math.Pi / 6
	body := WorldToBodyXY(v, yaw)
	world := BodyToWorldXY(body, yaw)
	test.That(t, world.X, test.ShouldAlmostEqual, v.X)
	test.That(t, world.Y, test.ShouldAlmostEqual, v.Y)
	test.That(t, world.Z, test.ShouldAlmostEqual, v.Z)
}
