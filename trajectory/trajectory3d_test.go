package trajectory

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestGenerateTrajectory3DConverges(t *testing.T) {
	from := State{}
	dir := r3.Vector{X: 1, Y: 0, Z: 0}
	params := defaultParams()
	tr := GenerateTrajectory3D(from, dir, params.VMax, params, false)
	end := tr.Evaluate(tr.TotalDuration())
	test.That(t, end.X.V, test.ShouldAlmostEqual, params.VMax)
	test.That(t, end.Y.V, test.ShouldAlmostEqual, 0)
	test.That(t, end.Z.V, test.ShouldAlmostEqual, 0)
}

func TestStopDistanceClampsToMinimum(t *testing.T) {
	from := State{}
	params := defaultParams()
	dStop, _, _ := StopDistance(from, r3.Vector{X: 100, Y: 0, Z: 0}, params)
	test.That(t, dStop, test.ShouldBeGreaterThanOrEqualTo, 0.1)
}

func TestStopDistanceMustStopWhenCloseToGoal(t *testing.T) {
	from := State{X: AxisState{V: 2}}
	params := defaultParams()
	_, _, mustStop := StopDistance(from, r3.Vector{X: 0.05, Y: 0, Z: 0}, params)
	test.That(t, mustStop, test.ShouldBeTrue)
}
