package trajectory

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func defaultParams() FindTimesParams {
	return FindTimesParams{JMax: 20, AMax: 2, AStop: 3, VMax: 2, TrimJerk: 5}
}

func TestGenerateAxisProfileReproducesBoundaryAtZero(t *testing.T) {
	x0 := AxisState{X: 1, V: 0.5, A: 0.1, J: 0}
	p := GenerateAxisProfile(x0, 1.5, defaultParams())
	got := p.Evaluate(0)
	test.That(t, got.X, test.ShouldAlmostEqual, x0.X)
	test.That(t, got.V, test.ShouldAlmostEqual, x0.V)
	test.That(t, got.A, test.ShouldAlmostEqual, x0.A)
}

func TestGenerateAxisProfileReachesTerminalVelocity(t *testing.T) {
	x0 := AxisState{X: 0, V: 0, A: 0, J: 0}
	p := GenerateAxisProfile(x0, 2.0, defaultParams())
	end := p.Evaluate(p.TotalDuration())
	test.That(t, end.V, test.ShouldAlmostEqual, 2.0)
	test.That(t, end.A, test.ShouldAlmostEqual, 0)
	test.That(t, end.J, test.ShouldAlmostEqual, 0)
}

func TestGenerateAxisProfileZeroDeltaVIsConstant(t *testing.T) {
	x0 := AxisState{X: 3, V: 1, A: 0, J: 0}
	p := GenerateAxisProfile(x0, 1, defaultParams())
	test.That(t, p.TotalDuration(), test.ShouldAlmostEqual, 0)
	got := p.Evaluate(5)
	test.That(t, got.X, test.ShouldAlmostEqual, 3)
	test.That(t, got.V, test.ShouldAlmostEqual, 1)
}

func TestGenerateAxisProfileRespectsAccelBound(t *testing.T) {
	x0 := AxisState{X: 0, V: 0, A: 0, J: 0}
	params := defaultParams()
	p := GenerateAxisProfile(x0, params.VMax, params)
	dur := p.TotalDuration()
	const steps = 200
	maxA := 0.0
	for i := 0; i <= steps; i++ {
		tt := dur * float64(i) / steps
		s := p.Evaluate(tt)
		if math.Abs(s.A) > maxA {
			maxA = math.Abs(s.A)
		}
	}
	test.That(t, maxA, test.ShouldBeLessThanOrEqualTo, params.AMax+1e-6)
}

func TestGenerateAxisProfileStopCheckUsesAStop(t *testing.T) {
	x0 := AxisState{X: 0, V: 2, A: 0, J: 0}
	params := defaultParams()
	params.StopCheck = true
	p := GenerateAxisProfile(x0, 0, params)
	dur := p.TotalDuration()
	test.That(t, dur, test.ShouldBeGreaterThan, 0)
	const steps = 200
	maxA := 0.0
	for i := 0; i <= steps; i++ {
		tt := dur * float64(i) / steps
		s := p.Evaluate(tt)
		if math.Abs(s.A) > maxA {
			maxA = math.Abs(s.A)
		}
	}
	test.That(t, maxA, test.ShouldBeLessThanOrEqualTo, params.AStop+1e-6)
	end := p.Evaluate(dur)
	test.That(t, end.V, test.ShouldAlmostEqual, 0)
}
