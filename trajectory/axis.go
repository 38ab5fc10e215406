// Package trajectory generates and evaluates jerk-limited, 1-D
// triple-integrator motion profiles, one per world axis, and assembles
// them into 3-axis trajectories. It is a direct, line-for-line port of
// the switch-time algebra in the original planner's find_times/get_traj/
// eval_trajectory routines, restated with named fields instead of
// Eigen::Matrix4d/Vector4d so the segment algebra reads without a
// row/column legend next to the source.
package trajectory

import "math"

// AxisState is the triple-integrator state of a single axis: position,
// velocity, acceleration, and jerk.
type AxisState struct {
	X, V, A, J float64
}

// segment holds the constant-jerk boundary condition at the start of one
// of the (up to) three phases of an axis profile, together with that
// phase's duration.
type segment struct {
	X0, V0, A0, J float64
	Dur           float64
}

// AxisProfile is a generated, three-segment (jerk/coast/jerk) switching
// profile for a single axis. Segments with zero duration are legal and
// collapse the profile to one or two effective phases, exactly as in the
// source algorithm.
type AxisProfile struct {
	segs     [3]segment
	terminal AxisState
}

// TotalDuration returns the sum of the profile's three segment durations.
func (p AxisProfile) TotalDuration() float64 {
	return p.segs[0].Dur + p.segs[1].Dur + p.segs[2].Dur
}

// FindTimesParams bundles the kinematic bounds find_times needs, beyond
// the boundary condition and target velocity themselves.
type FindTimesParams struct {
	JMax     float64
	AMax     float64
	AStop    float64
	VMax     float64
	TrimJerk float64
	// StopCheck selects the stop-profile bounds (JMax/AStop) in place of
	// the cruise bounds (AMax, with the TrimJerk gentling rule).
	StopCheck bool
}

// GenerateAxisProfile computes the switch-time profile driving x0 to
// terminal velocity vf, choosing among the three shapes the original
// find_times distinguishes: no motion needed, a single jerk segment, or
// the full jerk/coast/jerk shape (clamped to AMax/AStop if it would
// otherwise saturate acceleration mid-maneuver).
func GenerateAxisProfile(x0 AxisState, vf float64, p FindTimesParams) AxisProfile {
	if vf == x0.V && x0.A == 0 {
		return AxisProfile{
			segs: [3]segment{
				{X0: 0, V0: 0, A0: 0, J: 0, Dur: 0},
				{X0: 0, V0: 0, A0: 0, J: 0, Dur: 0},
				{X0: x0.X, V0: x0.V, A0: x0.A, J: 0, Dur: 0},
			},
			terminal: AxisState{X: x0.X, V: x0.V, A: x0.A, J: 0},
		}
	}

	var jTemp, aTemp float64
	if p.StopCheck {
		jTemp = p.JMax
		aTemp = p.AStop
	} else {
		aTemp = p.AMax
		if math.Abs(vf-x0.V)/p.VMax < 0.2 && math.Abs(x0.A) != p.AMax && math.Abs(x0.J) != p.JMax {
			jTemp = p.TrimJerk
		} else {
			jTemp = p.JMax
		}
	}
	jTemp = math.Copysign(jTemp, vf-x0.V)

	vfp := x0.V + x0.A*x0.A/(2*jTemp)

	if math.Abs(vfp-vf) < 0.02*math.Abs(vf) && x0.A*(vf-x0.V) > 0 {
		// Single jerk segment brings acceleration straight to zero at vf.
		j0 := -jTemp
		t0 := -x0.A / j0

		v0 := x0.V
		vEnd := vf
		xStart := x0.X
		xEnd := xStart + v0*t0 + 0.5*x0.A*t0*t0 + (1.0/6.0)*j0*t0*t0*t0

		return AxisProfile{
			segs: [3]segment{
				{X0: xStart, V0: v0, A0: x0.A, J: j0, Dur: t0},
				{X0: 0, V0: 0, A0: 0, J: 0, Dur: 0},
				{X0: xEnd, V0: vEnd, A0: 0, J: 0, Dur: 0},
			},
			terminal: AxisState{X: xEnd, V: vEnd, A: 0, J: 0},
		}
	}

	j0 := jTemp
	j2 := -jTemp

	disc := 0.5*x0.A*x0.A - jTemp*(x0.V-vf)
	sq := math.Sqrt(disc)
	t1a := -x0.A/jTemp + sq/jTemp
	t1b := -x0.A/jTemp - sq/jTemp
	t1 := math.Max(t1a, t1b)
	t1 = math.Max(0, t1)

	a1f := x0.A + jTemp*t1

	if math.Abs(a1f) >= aTemp {
		am := math.Copysign(aTemp, jTemp)
		t0 := (am - x0.A) / j0
		t2 := -am / j2
		if x0.A == am {
			j0 = 0
		}

		a0 := x0.A

		v0 := x0.V
		v1 := v0 + a0*t0 + 0.5*j0*t0*t0
		v2 := vf - am*t2 - 0.5*j2*t2*t2

		tMid := (v2 - v1) / am

		x0v := x0.X
		x1 := x0v + v0*t0 + 0.5*a0*t0*t0 + (1.0/6.0)*j0*t0*t0*t0
		x2 := x1 + v1*tMid + 0.5*am*tMid*tMid
		x3 := x2 + v2*t2 + 0.5*am*t2*t2 + (1.0/6.0)*j2*t2*t2*t2

		return AxisProfile{
			segs: [3]segment{
				{X0: x0v, V0: v0, A0: a0, J: j0, Dur: t0},
				{X0: x1, V0: v1, A0: am, J: 0, Dur: tMid},
				{X0: x2, V0: v2, A0: am, J: j2, Dur: t2},
			},
			terminal: AxisState{X: x3, V: vf, A: 0, J: 0},
		}
	}

	t0 := t1
	t2 := -(x0.A + j0*t0) / j2

	a0 := x0.A
	a2 := a0 + j0*t0

	v0 := x0.V
	v2 := v0 + a0*t0 + 0.5*j0*t0*t0

	x0v := x0.X
	x2 := x0v + v0*t0 + 0.5*a0*t0*t0 + (1.0/6.0)*j0*t0*t0*t0
	x3 := x2 + v2*t2 + 0.5*a2*t2*t2 + (1.0/6.0)*j2*t2*t2*t2

	return AxisProfile{
		segs: [3]segment{
			{X0: x0v, V0: v0, A0: a0, J: j0, Dur: t0},
			{X0: 0, V0: 0, A0: 0, J: 0, Dur: 0},
			{X0: x2, V0: v2, A0: a2, J: j2, Dur: t2},
		},
		terminal: AxisState{X: x3, V: vf, A: 0, J: 0},
	}
}

// Evaluate samples the profile at elapsed time t, reproducing the boundary
// condition exactly at t=0 and the exact terminal state (v=vf, a=0, j=0)
// once t reaches or exceeds TotalDuration(), matching the original's
// dedicated fourth "terminal" switch column.
func (p AxisProfile) Evaluate(t float64) AxisState {
	d0, d1, d2 := p.segs[0].Dur, p.segs[1].Dur, p.segs[2].Dur
	total := d0 + d1 + d2
	if t >= total {
		return p.terminal
	}
	var k int
	var tk float64
	switch {
	case t < d0:
		k, tk = 0, t
	case t < d0+d1:
		k, tk = 1, t-d0
	default:
		k, tk = 2, t-(d0+d1)
	}
	s := p.segs[k]
	return AxisState{
		X: s.X0 + s.V0*tk + 0.5*s.A0*tk*tk + (1.0/6.0)*s.J*tk*tk*tk,
		V: s.V0 + s.A0*tk + 0.5*s.J*tk*tk,
		A: s.A0 + s.J*tk,
		J: s.J,
	}
}
