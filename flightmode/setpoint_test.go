package flightmode

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestControlModesForOperatingMode(t *testing.T) {
	xy, z := ControlModesFor(OpIdle)
	test.That(t, xy, test.ShouldEqual, ModePosition)
	test.That(t, z, test.ShouldEqual, ModePosition)

	xy, z = ControlModesFor(OpOther)
	test.That(t, xy, test.ShouldEqual, ModeAccel)
	test.That(t, z, test.ShouldEqual, ModePosition)
}

func TestYawStepClampsToSlewLimit(t *testing.T) {
	rMax := 1.0
	planEval := 0.02
	newYaw, dyaw := YawStep(0, math.Pi, rMax, planEval)
	test.That(t, math.Abs(newYaw), test.ShouldBeLessThanOrEqualTo, rMax*planEval+1e-9)
	test.That(t, dyaw, test.ShouldEqual, rMax)
}

func TestYawStepNegativeDirection(t *testing.T) {
	rMax := 1.0
	planEval := 0.02
	_, dyaw := YawStep(0, -math.Pi/2, rMax, planEval)
	test.That(t, dyaw, test.ShouldEqual, -rMax)
}

func TestYawStepConvergesOverManyTicks(t *testing.T) {
	rMax := 1.0
	planEval := 0.02
	yaw := 0.0
	target := 0.5
	for i := 0; i < 1000; i++ {
		yaw, _ = YawStep(yaw, target, rMax, planEval)
	}
	test.That(t, yaw, test.ShouldAlmostEqual, target)
}
