package stepcore_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"tinygo.org/x/tinygstep/stepcore"
)

func TestVerifyIntegrityHealthyByDefault(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	core, _, _, _ := newTestCore(cfg, &noopPlanner{}, &fakeController{})

	c.Assert(core.VerifyIntegrity(), qt.IsTrue)
	c.Assert(core.Fault(), qt.Equals, stepcore.NoFault)
}

func TestHaltDisarmsTimerAndRestoresOwnership(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	core, _, _, timer := newTestCore(cfg, &noopPlanner{}, &fakeController{})

	core.PrepLine([stepcore.NumMotors]float32{1000, 0}, [stepcore.NumMotors]uint8{0, 0}, 1_000_000)
	core.RequestLoadMove()
	c.Assert(timer.enabled, qt.IsTrue)

	core.Halt()

	c.Assert(timer.enabled, qt.IsFalse)
	c.Assert(core.IsBusy(), qt.IsFalse)
	c.Assert(core.Snapshot().ExecOwnedByLoader, qt.IsFalse)
}

func TestRejectionLeavesPrepUnchanged(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	core, _, _, _ := newTestCore(cfg, &noopPlanner{}, &fakeController{})

	before := core.Snapshot()
	status := core.PrepLine([stepcore.NumMotors]float32{500, 500}, [stepcore.NumMotors]uint8{0, 0}, 0)

	c.Assert(status, qt.Equals, stepcore.MinTimeMoveError)
	c.Assert(core.Snapshot(), qt.DeepEquals, before)
}
