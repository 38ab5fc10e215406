// Package planner implements C3 (candidate generation and cost sort) and
// C6 (selection among ranked, collision-filtered candidates), the motion-
// primitive search at the heart of the reactive planner. It is a port of
// tip.cpp's sample_ss/sort_ss/pick_ss trio, restated over r3.Vector and
// plain slices instead of Eigen matrices and a std::priority_queue.
package planner

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/aclswarm/tip/spatialmath"
)

// SampleGrid returns the body-frame unit direction vectors of a
// hSamples x vSamples grid spanning +/-hFovDeg/2 horizontally and
// +/-vFovDeg/2 vertically, the Go port of sample_ss. A sample count of
// zero on either axis is coerced to 1, degenerating that axis to a single
// horizontal or vertical line through boresight.
func SampleGrid(hFovDeg, vFovDeg float64, hSamples, vSamples int) []r3.Vector {
	if hSamples == 0 {
		hSamples = 1
	}
	if vSamples == 0 {
		vSamples = 1
	}
	hFov := hFovDeg * math.Pi / 180
	vFov := vFovDeg * math.Pi / 180

	thetas := linspace(-hFov/2, hFov/2, hSamples)
	phis := linspace(-vFov/2, vFov/2, vSamples)

	dirs := make([]r3.Vector, 0, hSamples*vSamples)
	for _, phi := range phis {
		for _, theta := range thetas {
			dirs = append(dirs, r3.Vector{
				X: math.Cos(theta) * math.Cos(phi),
				Y: math.Sin(theta) * math.Cos(phi),
				Z: math.Sin(phi),
			})
		}
	}
	return dirs
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = (lo + hi) / 2
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}

// Candidate is a body-frame direction with its assigned angular cost.
type Candidate struct {
	BodyDir r3.Vector
	Cost    float64
	// IsGlobalGoal marks the synthetic zero-cost candidate prepended when
	// the global goal itself falls within the sensor field of view.
	IsGlobalGoal bool
}

// SortInputs bundles the pose/goal/heading context SortCandidates needs.
type SortInputs struct {
	Pos         r3.Vector
	Goal        r3.Vector
	LastGoalDir r3.Vector // world-frame direction of the previously selected primitive
	Yaw         float64   // current commanded yaw (quad_goal_.yaw)
	Heading     float64   // desired heading toward the global goal
	HFOVDeg     float64
	VFOVDeg     float64
}

// SortCandidates ranks body-frame candidate directions by
// angle-to-goal^2 + angle-to-last-primitive^2, ascending, and reports
// whether the global goal itself lies within the sensor FOV -- if so a
// zero-cost candidate pointing straight at the goal is prepended, the Go
// port of sort_ss's v_los_ handling.
func SortCandidates(dirs []r3.Vector, in SortInputs) (sorted []Candidate, goalInView bool) {
	toGoal := in.Goal.Sub(in.Pos)
	var goalWorld r3.Vector
	if n := toGoal.Norm(); n > 0 {
		goalWorld = toGoal.Mul(1 / n)
	}
	goalBody := spatialmath.WorldToBodyXY(goalWorld, in.Yaw)

	lastWorld := in.LastGoalDir
	if n := lastWorld.Norm(); n > 0 {
		lastWorld = lastWorld.Mul(1 / n)
	}
	lastBody := spatialmath.WorldToBodyXY(lastWorld, in.Yaw)

	sorted = make([]Candidate, len(dirs))
	for i, d := range dirs {
		angleGoal := math.Acos(clamp(d.Dot(goalBody), -1, 1))
		angleLast := math.Acos(clamp(d.Dot(lastBody), -1, 1))
		sorted[i] = Candidate{BodyDir: d, Cost: angleGoal*angleGoal + angleLast*angleLast}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Cost < sorted[j].Cost })

	angleH := spatialmath.AngleWrap(in.Heading - in.Yaw)
	// The body frame carries no pitch in this model, so the goal's
	// elevation in the world frame is also its elevation in the body frame.
	angleV := math.Asin(clamp(goalWorld.Z, -1, 1))
	goalInView = math.Abs(angleH) < in.HFOVDeg*math.Pi/180/2 &&
		math.Abs(angleV) < in.VFOVDeg*math.Pi/180/2

	if goalInView {
		goalCandidate := Candidate{BodyDir: goalBody, Cost: 0, IsGlobalGoal: true}
		sorted = append([]Candidate{goalCandidate}, sorted...)
	}
	return sorted, goalInView
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
