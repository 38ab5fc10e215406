// Package flightmode implements C8 (the flight-mode state machine and
// yaw-rate-limited heading control) and C9 (state-estimate ingest with
// jump detection), ported from tip.cpp's eventCB/sendGoal mode switch and
// stateCB's jump-bias handling.
package flightmode

import (
	"time"

	"go.uber.org/atomic"
)

// Mode is the vehicle's high-level flight mode.
type Mode int32

const (
	NotFlying Mode = iota
	Takeoff
	Flying
	Go
	Land
)

func (m Mode) String() string {
	switch m {
	case NotFlying:
		return "NotFlying"
	case Takeoff:
		return "Takeoff"
	case Flying:
		return "Flying"
	case Go:
		return "Go"
	case Land:
		return "Land"
	default:
		return "Unknown"
	}
}

// Event is an externally triggered flight event.
type Event int

const (
	EventTakeoff Event = iota
	EventKill
	EventLand
	EventInit
	EventStart
	EventEstop
)

// Machine holds the current flight mode plus the handful of boolean flags
// that event handlers set and the periodic setpoint loop reads. Every
// flag is an atomic, not a mutex-guarded field: per the message-passing
// concurrency model, event handling and the setpoint tick run on the same
// planner goroutine, but the flags are also read directly by tests,
// outside that goroutine, so atomic visibility is load-bearing.
type Machine struct {
	mode          atomic.Int32
	EStop         atomic.Bool
	Stop          atomic.Bool
	GenNewTraj    atomic.Bool
	FollowingPrim atomic.Bool
	CanReachGoal  atomic.Bool
	// CanReachGlobalGoal mirrors tip.cpp's can_reach_global_goal_: distinct
	// from CanReachGoal, it additionally requires the selected primitive to
	// be the synthetic global-goal candidate and the goal to lie within
	// sensor range, per sort_ss/pick_ss. get_stop_dist only ever engages
	// braking against this flag, never against CanReachGoal alone.
	CanReachGlobalGoal atomic.Bool
	Yawing             atomic.Bool
}

// NewMachine returns a Machine starting in NotFlying.
func NewMachine() *Machine {
	m := &Machine{}
	m.mode.Store(int32(NotFlying))
	return m
}

// Mode returns the current flight mode.
func (m *Machine) Mode() Mode { return Mode(m.mode.Load()) }

func (m *Machine) setMode(v Mode) { m.mode.Store(int32(v)) }

// Transition applies a flight event to the machine, mirroring eventCB's
// per-event guard conditions exactly (each event is only accepted from
// specific current modes; anything else is ignored). spinup is the motor
// spinup delay and is only consulted for EventTakeoff, during which this
// call blocks the caller for that duration before committing the mode
// change -- the one voluntary suspension point in the design, matching
// the original's ros::Duration(spinup_time_).sleep() inside eventCB.
//
// accepted reports whether the event's guard matched the current mode.
func (m *Machine) Transition(ev Event, spinup time.Duration) (accepted bool) {
	switch ev {
	case EventTakeoff:
		if m.Mode() != NotFlying {
			return false
		}
		time.Sleep(spinup)
		m.setMode(Takeoff)
		return true

	case EventKill:
		if m.Mode() == NotFlying {
			return false
		}
		m.setMode(NotFlying)
		return true

	case EventLand:
		if m.Mode() == NotFlying {
			return false
		}
		m.setMode(Land)
		m.Stop.Store(true)
		m.GenNewTraj.Store(true)
		return true

	case EventInit:
		if m.Mode() != Flying {
			return false
		}
		m.EStop.Store(false)
		return true

	case EventStart:
		if m.Mode() != Flying {
			return false
		}
		m.EStop.Store(false)
		m.setMode(Go)
		return true

	case EventEstop:
		if m.Mode() != Go {
			return false
		}
		m.Stop.Store(true)
		m.GenNewTraj.Store(true)
		m.EStop.Store(true)
		return true

	default:
		return false
	}
}

// CompleteTakeoff transitions Takeoff -> Go, as sendGoal does once the
// vehicle's z coordinate reaches the goal altitude.
func (m *Machine) CompleteTakeoff() {
	if m.Mode() == Takeoff {
		m.setMode(Go)
	}
}

// CompleteLanding transitions Land -> NotFlying, as sendGoal does once the
// vehicle's z coordinate reaches the ground clamp.
func (m *Machine) CompleteLanding() {
	if m.Mode() == Land {
		m.setMode(NotFlying)
	}
}

// ResumeAfterEstop clears Stop and returns to Flying once the vehicle has
// braked to rest after an ESTOP, requiring INIT then START to resume Go.
func (m *Machine) ResumeAfterEstop() {
	if m.EStop.Load() {
		m.EStop.Store(false)
		m.Stop.Store(false)
		m.setMode(Flying)
	}
}
