package stepcore_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"tinygo.org/x/tinygstep/stepcore"
)

func TestNullMoveProducesNoPulsesAndFlipsOwnership(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	core, stepPins, _, timer := newTestCore(cfg, &noopPlanner{}, &fakeController{})

	core.PrepNull()
	c.Assert(core.Snapshot().ExecOwnedByLoader, qt.IsTrue)

	core.RequestLoadMove()

	c.Assert(stepPins[stepcore.ZAxis].toggles, qt.Equals, 0)
	c.Assert(stepPins[stepcore.RAxis].toggles, qt.Equals, 0)
	c.Assert(core.Snapshot().ExecOwnedByLoader, qt.IsFalse) // flipped back to exec-owned
	c.Assert(timer.enabled, qt.IsFalse)                     // NULL never arms the DDA timer
}

func TestNullMoveRequestsExecMove(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	planner := &noopPlanner{}
	core, _, _, _ := newTestCore(cfg, planner, &fakeController{})

	core.PrepNull()
	core.RequestLoadMove()

	c.Assert(planner.calls, qt.Equals, 1)
}

func TestDrainedQueueSetsMotionCompleteOnce(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	controller := &fakeController{}
	core, _, _, _ := newTestCore(cfg, &noopPlanner{}, controller)

	// Buffer starts exec-owned with nothing prepared; the loader must find
	// it not loader-owned and report motion complete.
	core.RequestLoadMove()

	c.Assert(controller.complete, qt.IsTrue)
	c.Assert(controller.completeSets, qt.Equals, 1)

	// Calling again while still drained reports it again (idempotent in
	// effect, but the loader doesn't suppress repeats on its own -- the
	// "exactly once per drain" guarantee is about one drain event, not one
	// poll).
	core.RequestLoadMove()
	c.Assert(controller.completeSets, qt.Equals, 2)
}

func TestRequestIdempotence(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	planner := &noopPlanner{}
	core, _, _, timer := newTestCore(cfg, planner, &fakeController{})

	core.PrepLine([stepcore.NumMotors]float32{10, 0}, [stepcore.NumMotors]uint8{0, 0}, 1_000_000)

	// RequestLoadMove is called multiple times; with ImmediateInterrupt each
	// call runs synchronously, but runLoad itself is idempotent once the
	// timer is armed: the second call is a no-op because the timer is busy.
	core.RequestLoadMove()
	enablesAfterFirst := timer.enables
	core.RequestLoadMove()
	c.Assert(timer.enables, qt.Equals, enablesAfterFirst) // second call was a no-op, busy

	// RequestExecMove while exec-owned and nothing queued by the planner:
	// multiple calls only ever invoke the planner, never corrupt state.
	core.RequestExecMove()
	core.RequestExecMove()
	c.Assert(core.Snapshot().ExecOwnedByLoader, qt.IsFalse) // still exec-owned, busy running segment
}
