// Package tip wires together trajectory generation, collision-aware
// candidate selection, obstacle memory, and the flight-mode state machine
// into a single reactive motion planner. Planner owns all mutable plan
// state on one goroutine and communicates with the outside world only
// through bounded channels and a periodic ticker, the concurrency idiom
// the original design notes recommend in place of the source's per-field
// mutex.
package tip

import (
	"context"
	"math"
	"time"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/quat"

	"github.com/aclswarm/tip/collision"
	"github.com/aclswarm/tip/config"
	"github.com/aclswarm/tip/flightmode"
	"github.com/aclswarm/tip/logging"
	"github.com/aclswarm/tip/obstaclememory"
	"github.com/aclswarm/tip/planner"
	"github.com/aclswarm/tip/spatialmath"
	"github.com/aclswarm/tip/trajectory"
)

const chanBufferSize = 1

// StateEstimate is the `state(pose, orientation_quaternion)` input.
type StateEstimate struct {
	Pose        r3.Vector
	Orientation quat.Number
}

// PointCloud is the `point_cloud(points_in_sensor_frame, sensor_frame_id)`
// input.
type PointCloud struct {
	Points      []r3.Vector
	SensorFrame string
}

// GlobalGoal is the `global_goal(x, y, z, heading)` input.
type GlobalGoal struct {
	X, Y, Z, Heading float64
}

type modeEvent struct {
	kind flightmode.Event
}

type operatingModeEvent struct {
	kind flightmode.OperatingMode
}

// Planner is the top-level reactive motion planner.
type Planner struct {
	cfg    *config.Options
	logger logging.Logger
	broker TransformBroker

	machine *flightmode.Machine
	mem     *obstaclememory.Memory

	stateCh chan StateEstimate
	cloudCh chan PointCloud
	eventCh chan modeEvent
	opModeCh chan operatingModeEvent
	goalCh  chan GlobalGoal

	setpoints chan flightmode.Setpoint

	// Hot-path state, touched only by the Run goroutine.
	state        trajectory.State
	traj         trajectory.Trajectory3D
	trajStart    time.Time
	yaw          float64
	dyaw         float64
	goal         r3.Vector
	finalHeading float64
	heading      float64
	lastGoalDir  r3.Vector
	v            float64
	lastPrimCost float64
	minCostPrim  float64
	distTravLast float64
	poseLastMP   r3.Vector
	xyMode       flightmode.ControlMode
	zMode        flightmode.ControlMode
	lastSetpointTS time.Time
}

// NewPlanner constructs a Planner from validated Options and a transform
// broker for converting sensor-frame point clouds to world frame.
func NewPlanner(cfg *config.Options, broker TransformBroker, logger logging.Logger) *Planner {
	return &Planner{
		cfg:          cfg,
		logger:       logger,
		broker:       broker,
		machine:      flightmode.NewMachine(),
		mem:          obstaclememory.NewMemory(defaultRingSize(cfg)),
		stateCh:      make(chan StateEstimate, chanBufferSize),
		cloudCh:      make(chan PointCloud, chanBufferSize),
		eventCh:      make(chan modeEvent, 8),
		opModeCh:     make(chan operatingModeEvent, chanBufferSize),
		goalCh:       make(chan GlobalGoal, chanBufferSize),
		setpoints:    make(chan flightmode.Setpoint, 16),
		xyMode:       flightmode.ModePosition,
		zMode:        flightmode.ModePosition,
		goal:         r3.Vector{X: cfg.GoalX, Y: cfg.GoalY, Z: cfg.GoalZ},
		finalHeading: 0,
	}
}

func defaultRingSize(cfg *config.Options) int {
	// The original sizes its tree ring to roughly one second of scans;
	// absent a scan rate in config, ten scans is a reasonable memory
	// depth for the retention behavior in the testable scenarios.
	return 10
}

// Setpoints returns the channel of periodic output setpoints.
func (p *Planner) Setpoints() <-chan flightmode.Setpoint { return p.setpoints }

// Mode returns the planner's current flight mode.
func (p *Planner) Mode() flightmode.Mode { return p.machine.Mode() }

// SubmitState enqueues a new state estimate, dropping it if the queue is
// already full (the previous, not-yet-processed estimate wins).
func (p *Planner) SubmitState(s StateEstimate) {
	s.Orientation = normalizeQuat(s.Orientation)
	select {
	case p.stateCh <- s:
	default:
	}
}

// SubmitPointCloud enqueues a new point cloud, dropping it if the queue is
// already full per spec.md's concurrency model.
func (p *Planner) SubmitPointCloud(pc PointCloud) {
	select {
	case p.cloudCh <- pc:
	default:
		p.logger.Warnw("dropping point cloud, queue full", "frame", pc.SensorFrame)
	}
}

// SubmitGlobalGoal resets the goal.
func (p *Planner) SubmitGlobalGoal(g GlobalGoal) {
	select {
	case p.goalCh <- g:
	default:
	}
}

// SubmitFlightEvent enqueues a flight-mode transition event.
func (p *Planner) SubmitFlightEvent(ev flightmode.Event) {
	select {
	case p.eventCh <- modeEvent{kind: ev}:
	default:
	}
}

// SubmitOperatingMode enqueues an xy/z control-submode selection.
func (p *Planner) SubmitOperatingMode(m flightmode.OperatingMode) {
	select {
	case p.opModeCh <- operatingModeEvent{kind: m}:
	default:
	}
}

func normalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// Run drives the planner's single goroutine: it consumes the five input
// channels and fires the periodic setpoint tick until ctx is canceled.
func (p *Planner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(p.cfg.PlanEval * float64(time.Second)))
	defer ticker.Stop()
	defer close(p.setpoints)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s := <-p.stateCh:
			p.handleState(s)
		case pc := <-p.cloudCh:
			p.handleCloud(pc)
		case ev := <-p.eventCh:
			p.handleEvent(ev.kind)
		case m := <-p.opModeCh:
			p.xyMode, p.zMode = flightmode.ControlModesFor(m.kind)
		case g := <-p.goalCh:
			p.handleGoal(g)
		case <-ticker.C:
			p.tick()
		}
	}
}

func (p *Planner) handleGoal(g GlobalGoal) {
	p.goal = r3.Vector{X: g.X, Y: g.Y, Z: g.Z}
	p.heading = math.Atan2(p.goal.Y-p.state.Position().Y, p.goal.X-p.state.Position().X)
	p.finalHeading = g.Heading
}

func (p *Planner) handleEvent(ev flightmode.Event) {
	accepted := p.machine.Transition(ev, time.Duration(p.cfg.SpinupTime*float64(time.Second)))
	if !accepted {
		return
	}
	if ev == flightmode.EventTakeoff {
		pos := p.state.Position()
		p.state = trajectory.State{
			X: trajectory.AxisState{X: pos.X},
			Y: trajectory.AxisState{X: pos.Y},
			Z: trajectory.AxisState{X: pos.Z},
		}
		p.yaw = spatialmath.Yaw(quat.Number{Real: 1})
	}
}

func (p *Planner) handleState(s StateEstimate) {
	pos := s.Pose
	if p.Mode() == flightmode.Go {
		bias, jumped := flightmode.DetectJump(p.state.Position(), pos, p.cfg.JumpThresh)
		if jumped {
			p.logger.Warnw("jump detected", "magnitude", bias.Norm())
			p.state.X.X += bias.X
			p.state.Y.X += bias.Y
			p.state.Z.X += bias.Z
			p.machine.GenNewTraj.Store(true)
		}
	}
	if p.Mode() == flightmode.NotFlying {
		p.state = trajectory.State{
			X: trajectory.AxisState{X: pos.X},
			Y: trajectory.AxisState{X: pos.Y},
			Z: trajectory.AxisState{X: pos.Z},
		}
		p.yaw = spatialmath.Yaw(s.Orientation)
	}
}

func (p *Planner) handleCloud(pc PointCloud) {
	if p.Mode() == flightmode.NotFlying {
		return
	}
	world, err := p.broker.TransformToWorld(pc.Points, pc.SensorFrame)
	if err != nil {
		p.logger.Warnw("transform unavailable", "err", err)
		return
	}

	valid := 0
	for _, pt := range world {
		if !isNaN(pt) {
			valid++
		}
	}
	if valid < p.cfg.K {
		p.logger.Warnw("sparse point cloud, skipping selection", "valid", valid, "k", p.cfg.K)
		return
	}
	p.mem.Insert(world)

	dirs := planner.SampleGrid(p.cfg.HFOVDeg, p.cfg.VFOVDeg, p.cfg.HSamples, p.cfg.VSamples)
	sorted, _ := planner.SortCandidates(dirs, planner.SortInputs{
		Pos:         p.state.Position(),
		Goal:        p.goal,
		LastGoalDir: p.lastGoalDir,
		Yaw:         p.yaw,
		Heading:     p.heading,
		HFOVDeg:     p.cfg.HFOVDeg,
		VFOVDeg:     p.cfg.VFOVDeg,
	})

	prim, canReachGoal, canReachGlobalGoal := planner.Select(
		sorted, p.state, p.goal, p.yaw, p.v, p.mem,
		collision.Params{Buffer: p.cfg.Buffer, SafeDist: p.cfg.SafeDist, SensorDist: p.cfg.SensorDist, ZMin: p.cfg.ZMin, ZMax: p.cfg.ZMax, K: p.cfg.K},
		p.trajParams(), p.cfg.SensorDist,
	)
	p.machine.CanReachGoal.Store(canReachGoal)
	p.machine.CanReachGlobalGoal.Store(canReachGlobalGoal)

	if canReachGoal {
		p.minCostPrim = prim.Cost
	}

	distTraveled := p.state.Position().Sub(p.poseLastMP).Norm()
	stillFollowing := p.machine.FollowingPrim.Load() && p.v > 0
	if stillFollowing {
		elapsed := time.Since(p.trajStart).Seconds()
		stillFollowing = collision.CheckCurrentPrimitive(p.traj, p.state, elapsed, p.v, p.mem,
			collision.Params{Buffer: p.cfg.Buffer, SafeDist: p.cfg.SafeDist, SensorDist: p.cfg.SensorDist, ZMin: p.cfg.ZMin, ZMax: p.cfg.ZMax, K: p.cfg.K})
	}

	keepFollowing := stillFollowing && p.v > 0 && p.cfg.UseMemory && !p.machine.Stop.Load() &&
		p.distTravLast < p.cfg.MemDist && p.minCostPrim > p.lastPrimCost && p.Mode() == flightmode.Go

	if keepFollowing {
		p.distTravLast = distTraveled
		p.machine.FollowingPrim.Store(true)
		return
	}

	p.machine.FollowingPrim.Store(false)
	if !canReachGoal && !p.machine.Stop.Load() && p.Mode() == flightmode.Go && p.state.Velocity().Norm() > 0 {
		p.v = 0
		p.machine.Stop.Store(true)
		p.logger.Throttled(time.Second).Errorw("emergency stop -- no feasible path")
	}

	if canReachGoal {
		p.lastGoalDir = prim.WorldDir
	}
	p.machine.GenNewTraj.Store(true)
	p.poseLastMP = p.state.Position()
	p.distTravLast = 0
	p.lastPrimCost = p.minCostPrim
}

func isNaN(v r3.Vector) bool {
	return v.X != v.X || v.Y != v.Y || v.Z != v.Z
}

func (p *Planner) trajParams() trajectory.FindTimesParams {
	return trajectory.FindTimesParams{
		JMax: p.cfg.Jerk, AMax: p.cfg.Accel, AStop: p.cfg.AccelStop,
		VMax: p.cfg.MaxSpeed, TrimJerk: p.cfg.TrimJerk,
	}
}

// tick realizes C8/C9's periodic setpoint duties, the Go port of
// sendGoal: regenerate when requested, advance takeoff/land ramps or the
// Go-mode yaw/stop logic, evaluate the active trajectory, and emit.
func (p *Planner) tick() {
	now := time.Now()

	if p.machine.GenNewTraj.CompareAndSwap(true, false) {
		dir := p.lastGoalDir
		if p.machine.Stop.Load() {
			dir = p.goal.Sub(p.state.Position())
		}
		p.traj = trajectory.GenerateTrajectory3D(p.state, dir, p.v, p.trajParams(), p.machine.Stop.Load())
		p.trajStart = now
	}

	switch p.Mode() {
	case flightmode.NotFlying:
		p.emit(now, flightmode.Setpoint{CutPower: true, Timestamp: now, Frame: "world"})
		return

	case flightmode.Takeoff:
		z := p.state.Z.X + 0.003
		z = clamp(z, -0.1, p.goal.Z)
		p.state.Z.X = z
		if z == p.goal.Z {
			p.machine.CompleteTakeoff()
		}

	case flightmode.Land:
		if p.state.Velocity().Norm() == 0 {
			z := p.state.Z.X - 0.005
			z = clamp(z, -0.1, p.goal.Z)
			p.state.Z.X = z
			if z == -0.1 {
				p.machine.CompleteLanding()
				p.emit(now, flightmode.Setpoint{CutPower: true, Timestamp: now, Frame: "world"})
				return
			}
		} else {
			p.state = p.traj.Evaluate(now.Sub(p.trajStart).Seconds())
		}

	case flightmode.Go:
		p.tickGo(now)
	}

	p.emitState(now)
}

func (p *Planner) tickGo(now time.Time) {
	p.dyaw = 0
	distToGoal := math.Hypot(p.goal.X-p.state.Position().X, p.goal.Y-p.state.Position().Y)

	diff := spatialmath.AngleWrap(p.heading - p.yaw)
	if math.Abs(diff) > 0.02 && !p.machine.Stop.Load() && distToGoal > p.cfg.GoalRadius {
		if !p.machine.Yawing.Load() {
			if math.Abs(diff) > math.Pi/2 || p.state.Velocity().Norm() == 0 {
				p.v = 0
				p.machine.GenNewTraj.Store(true)
			} else if p.machine.CanReachGoal.Load() || p.machine.FollowingPrim.Load() {
				p.v = p.cfg.MaxSpeed
			} else {
				p.v = 0
				p.machine.GenNewTraj.Store(true)
			}
		}
		speed := p.state.Velocity().Norm()
		if speed <= p.v+0.1*p.cfg.MaxSpeed && speed >= p.v-0.1*p.cfg.MaxSpeed {
			p.machine.Yawing.Store(true)
			p.yaw, p.dyaw = flightmode.YawStep(p.yaw, p.heading, p.cfg.RMax, p.cfg.PlanEval)
		}
	} else {
		if !p.machine.Stop.Load() && (p.machine.CanReachGoal.Load() || p.machine.FollowingPrim.Load()) && distToGoal > p.cfg.GoalRadius {
			p.v = p.cfg.MaxSpeed
		}
		p.machine.Yawing.Store(false)
	}

	if !p.machine.Stop.Load() && p.state.Velocity().Norm() > 0 {
		mustStop, _, _ := planner.StopCheck(p.state, p.goal, p.machine.CanReachGlobalGoal.Load(), p.trajParams())
		if mustStop {
			p.v = 0
			p.machine.Stop.Store(true)
			p.machine.GenNewTraj.Store(true)
			p.logger.Throttled(time.Second).Infow("stopping")
		}
	}

	finalDiff := spatialmath.AngleWrap(p.finalHeading - p.yaw)
	if !p.machine.Stop.Load() && distToGoal < p.cfg.GoalRadius && p.state.Velocity().Norm() == 0 {
		if math.Abs(finalDiff) > 0.01 {
			p.machine.Yawing.Store(true)
			p.yaw, p.dyaw = flightmode.YawStep(p.yaw, p.finalHeading, p.cfg.RMax, p.cfg.PlanEval)
		} else {
			p.machine.Yawing.Store(false)
		}
	}

	p.state = p.traj.Evaluate(now.Sub(p.trajStart).Seconds())

	if p.state.Velocity().Norm() == 0 && p.machine.Stop.Load() {
		p.machine.Stop.Store(false)
		p.machine.Yawing.Store(false)
		switch {
		case distToGoal < p.cfg.GoalRadius:
			p.v = 0
		case p.machine.EStop.Load():
			p.v = 0
			p.machine.ResumeAfterEstop()
		case p.machine.CanReachGoal.Load():
			p.v = p.cfg.MaxSpeed
			p.machine.GenNewTraj.Store(true)
		}
	}
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

func (p *Planner) emitState(now time.Time) {
	p.emit(now, flightmode.Setpoint{
		Pos: p.state.Position(), Vel: p.state.Velocity(),
		Accel: p.state.Acceleration(), Jerk: p.state.Jerk(),
		Yaw: p.yaw, DYaw: p.dyaw, XYMode: p.xyMode, ZMode: p.zMode,
		Timestamp: now, Frame: "world",
	})
}

// emit enforces strict monotonic timestamp ordering before sending, and
// drops the setpoint rather than blocking if the output channel's
// consumer has fallen behind.
func (p *Planner) emit(now time.Time, sp flightmode.Setpoint) {
	if !p.lastSetpointTS.IsZero() && !now.After(p.lastSetpointTS) {
		now = p.lastSetpointTS.Add(time.Nanosecond)
		sp.Timestamp = now
	}
	p.lastSetpointTS = now
	select {
	case p.setpoints <- sp:
	default:
	}
}
