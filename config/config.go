// Package config loads and validates tip's planner configuration. It
// mirrors the teacher's config package in spirit -- a typed struct built
// from a loosely-typed AttributeMap -- but is sourced via viper so a real
// YAML/JSON/TOML file on disk can drive a deployment,
// the way niceyeti-tabular's services load their operating parameters.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/aclswarm/tip/utils"
)

// Options holds every recognized planner configuration value from the
// option table, one field per row.
type Options struct {
	Debug      bool
	UseMemory  bool
	SafeDist   float64
	Buffer     float64
	SensorDist float64
	MemDist    float64

	GoalX, GoalY, GoalZ float64
	GoalRadius          float64

	SpinupTime float64

	MaxSpeed  float64
	Accel     float64
	AccelStop float64
	Jerk      float64
	// TrimJerk is the "gentler jerk" constant used when the commanded
	// per-axis delta is small relative to max speed. Exposed as a
	// parameter per the resolved open question on the magic 5.0 in the
	// original source, rather than hard-coded.
	TrimJerk float64

	PlanEval float64

	K int

	HFOVDeg  float64
	VFOVDeg  float64
	HSamples int
	VSamples int

	RMax float64

	JumpThresh float64

	ZMin, ZMax float64
}

// DefaultOptions returns the option set used when a field is absent from
// the loaded config, matching the original planner's compiled-in defaults
// where known and conservative otherwise.
func DefaultOptions() Options {
	return Options{
		Debug:      false,
		UseMemory:  true,
		SafeDist:   3.0,
		Buffer:     0.5,
		SensorDist: 5.0,
		MemDist:    2.0,
		GoalRadius: 0.5,
		SpinupTime: 2.0,
		MaxSpeed:   2.0,
		Accel:      2.0,
		AccelStop:  3.0,
		Jerk:       20.0,
		TrimJerk:   5.0,
		PlanEval:   0.02,
		K:          10,
		HFOVDeg:    90,
		VFOVDeg:    60,
		HSamples:   9,
		VSamples:   5,
		RMax:       1.0,
		JumpThresh: 1.0,
		ZMin:       0.3,
		ZMax:       3.0,
	}
}

// Load reads a config file at path (any format viper supports: yaml, json,
// toml) and returns validated Options, falling back to DefaultOptions for
// anything unset.
func Load(path string) (*Options, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("tip: reading config %q: %w", path, err)
	}
	am := utils.AttributeMap(v.AllSettings())
	// viper lower-cases every key it reads, and "K" is the one recognized
	// option name that is not lower-case.
	if k, ok := am["k"]; ok && !am.Has("K") {
		am["K"] = k
	}
	return FromAttributeMap(am)
}

// FromAttributeMap builds Options from an already-decoded AttributeMap,
// applying defaults and then validating. Exported separately from Load so
// tests and cmd/tip can build Options from a literal map without a file on
// disk.
func FromAttributeMap(am utils.AttributeMap) (*Options, error) {
	d := DefaultOptions()
	o := Options{
		Debug:      am.Bool("debug", d.Debug),
		UseMemory:  am.Bool("use_memory", d.UseMemory),
		SafeDist:   am.Float64("safe_distance", d.SafeDist),
		Buffer:     am.Float64("buffer", d.Buffer),
		SensorDist: am.Float64("sensor_distance", d.SensorDist),
		MemDist:    am.Float64("mem_distance", d.MemDist),
		GoalX:      am.Float64("goal_x", d.GoalX),
		GoalY:      am.Float64("goal_y", d.GoalY),
		GoalZ:      am.Float64("goal_z", d.GoalZ),
		GoalRadius: am.Float64("goal_radius", d.GoalRadius),
		SpinupTime: am.Float64("spinup_time", d.SpinupTime),
		MaxSpeed:   am.Float64("max_speed", d.MaxSpeed),
		Accel:      am.Float64("accel", d.Accel),
		AccelStop:  am.Float64("accel_stop", d.AccelStop),
		Jerk:       am.Float64("jerk", d.Jerk),
		TrimJerk:   am.Float64("trim_jerk", d.TrimJerk),
		PlanEval:   am.Float64("plan_eval", d.PlanEval),
		K:          am.Int("K", d.K),
		HFOVDeg:    am.Float64("h_fov", d.HFOVDeg),
		VFOVDeg:    am.Float64("v_fov", d.VFOVDeg),
		HSamples:   am.Int("h_samples", d.HSamples),
		VSamples:   am.Int("v_samples", d.VSamples),
		RMax:       am.Float64("r_max", d.RMax),
		JumpThresh: am.Float64("jump_thresh", d.JumpThresh),
		ZMin:       am.Float64("z_min", d.ZMin),
		ZMax:       am.Float64("z_max", d.ZMax),
	}

	// v_samples = 0 is coerced to 1 per the documented boundary behaviour;
	// a degenerate grid is still a valid (if useless) grid.
	if o.VSamples == 0 {
		o.VSamples = 1
	}
	if o.HSamples == 0 {
		o.HSamples = 1
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Validate aggregates every field-level problem via multierr rather than
// returning on the first failure, so a misconfigured file reports all of
// its problems in one pass.
func (o *Options) Validate() error {
	var err error
	if o.MaxSpeed <= 0 {
		err = multierr.Append(err, fmt.Errorf("max_speed must be > 0, got %v", o.MaxSpeed))
	}
	if o.Accel <= 0 {
		err = multierr.Append(err, fmt.Errorf("accel must be > 0, got %v", o.Accel))
	}
	if o.AccelStop <= 0 {
		err = multierr.Append(err, fmt.Errorf("accel_stop must be > 0, got %v", o.AccelStop))
	}
	if o.Jerk <= 0 {
		err = multierr.Append(err, fmt.Errorf("jerk must be > 0, got %v", o.Jerk))
	}
	if o.TrimJerk <= 0 {
		err = multierr.Append(err, fmt.Errorf("trim_jerk must be > 0, got %v", o.TrimJerk))
	}
	if o.PlanEval <= 0 {
		err = multierr.Append(err, fmt.Errorf("plan_eval must be > 0, got %v", o.PlanEval))
	}
	if o.K < 1 {
		err = multierr.Append(err, fmt.Errorf("K must be >= 1, got %v", o.K))
	}
	if o.GoalRadius <= 0 {
		err = multierr.Append(err, fmt.Errorf("goal_radius must be > 0, got %v", o.GoalRadius))
	}
	if o.ZMax <= o.ZMin {
		err = multierr.Append(err, fmt.Errorf("z_max (%v) must be > z_min (%v)", o.ZMax, o.ZMin))
	}
	if o.RMax <= 0 {
		err = multierr.Append(err, fmt.Errorf("r_max must be > 0, got %v", o.RMax))
	}
	if o.Buffer < 0 {
		err = multierr.Append(err, fmt.Errorf("buffer must be >= 0, got %v", o.Buffer))
	}
	return err
}
