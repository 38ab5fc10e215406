package flightmode

import (
	"testing"
	"time"

	"go.viam.com/test"
)

func TestTakeoffRequiresNotFlying(t *testing.T) {
	m := NewMachine()
	ok := m.Transition(EventTakeoff, time.Millisecond)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, m.Mode(), test.ShouldEqual, Takeoff)

	ok = m.Transition(EventTakeoff, time.Millisecond)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, m.Mode(), test.ShouldEqual, Takeoff)
}

func TestKillFromAnyFlyingModeReturnsToNotFlying(t *testing.T) {
	m := NewMachine()
	m.Transition(EventTakeoff, 0)
	m.CompleteTakeoff() // Takeoff -> Go (simulating altitude reached)
	ok := m.Transition(EventKill, 0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, m.Mode(), test.ShouldEqual, NotFlying)
}

func TestEstopOnlyFromGo(t *testing.T) {
	m := NewMachine()
	ok := m.Transition(EventEstop, 0)
	test.That(t, ok, test.ShouldBeFalse)

	m.mode.Store(int32(Go))
	ok = m.Transition(EventEstop, 0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, m.Stop.Load(), test.ShouldBeTrue)
	test.That(t, m.EStop.Load(), test.ShouldBeTrue)
}

func TestStartRequiresFlying(t *testing.T) {
	m := NewMachine()
	m.mode.Store(int32(Flying))
	ok := m.Transition(EventStart, 0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, m.Mode(), test.ShouldEqual, Go)
}

func TestResumeAfterEstop(t *testing.T) {
	m := NewMachine()
	m.mode.Store(int32(Go))
	m.Transition(EventEstop, 0)
	m.ResumeAfterEstop()
	test.That(t, m.Mode(), test.ShouldEqual, Flying)
	test.That(t, m.EStop.Load(), test.ShouldBeFalse)
	test.That(t, m.Stop.Load(), test.ShouldBeFalse)
}
