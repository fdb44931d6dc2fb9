package stepcore_test

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"

	"tinygo.org/x/tinygstep/stepcore"
)

func TestPrepLineRejectsBelowEpsilon(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	core, _, _, _ := newTestCore(cfg, &scriptedPlanner{}, &fakeController{})

	before := core.Snapshot()
	status := core.PrepLine([stepcore.NumMotors]float32{1000, 0}, [stepcore.NumMotors]uint8{0, 0}, 0)

	c.Assert(status, qt.Equals, stepcore.MinTimeMoveError)
	after := core.Snapshot()
	c.Assert(after, qt.DeepEquals, before)
}

func TestPrepLineRejectsNonFinite(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	core, _, _, _ := newTestCore(cfg, &scriptedPlanner{}, &fakeController{})

	status := core.PrepLine([stepcore.NumMotors]float32{1000, 0}, [stepcore.NumMotors]uint8{0, 0}, float32(math.Inf(1)))

	c.Assert(status, qt.Equals, stepcore.MinLengthMoveError)
}

func TestPrepLineRejectsWhenLoaderOwned(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	core, _, _, _ := newTestCore(cfg, &scriptedPlanner{}, &fakeController{})

	status := core.PrepLine([stepcore.NumMotors]float32{1000, 0}, [stepcore.NumMotors]uint8{0, 0}, 1_000_000)
	c.Assert(status, qt.Equals, stepcore.OK)
	c.Assert(core.Snapshot().ExecOwnedByLoader, qt.IsTrue)

	// Buffer is now loader-owned; a second call is a protocol violation.
	status = core.PrepLine([stepcore.NumMotors]float32{1, 0}, [stepcore.NumMotors]uint8{0, 0}, 1_000_000)
	c.Assert(status, qt.Equals, stepcore.InternalError)
}

func TestPrepLineComputesDdaTicks(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig() // F_DDA=50000, Substeps=1

	core, _, _, _ := newTestCore(cfg, &scriptedPlanner{}, &fakeController{})

	status := core.PrepLine([stepcore.NumMotors]float32{1000, 0}, [stepcore.NumMotors]uint8{0, 0}, 1_000_000)
	c.Assert(status, qt.Equals, stepcore.OK)

	// Consume the prepared segment via the loader to inspect runtime state.
	core.RequestLoadMove()
	snap := core.Snapshot()
	c.Assert(snap.DdaTicksDowncount, qt.Equals, int32(50_000))
	c.Assert(snap.PhaseIncrement[stepcore.ZAxis], qt.Equals, int32(1000))
	c.Assert(snap.PhaseIncrement[stepcore.RAxis], qt.Equals, int32(0))
}

func TestPrepLineScalesPhaseIncrementBySubstepsBeforeRounding(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	cfg.Substeps = 4

	core, _, _, _ := newTestCore(cfg, &scriptedPlanner{}, &fakeController{})

	status := core.PrepLine([stepcore.NumMotors]float32{10.3, 0}, [stepcore.NumMotors]uint8{0, 0}, 1_000_000)
	c.Assert(status, qt.Equals, stepcore.OK)

	core.RequestLoadMove()
	snap := core.Snapshot()
	// round_to_u32(10.3 * 4) == round_to_u32(41.2) == 41, not round_to_u32(10.3)*4 == 10*4 == 40.
	c.Assert(snap.PhaseIncrement[stepcore.ZAxis], qt.Equals, int32(41))
}

func TestPrepNullAlwaysSucceeds(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	core, _, _, _ := newTestCore(cfg, &scriptedPlanner{}, &fakeController{})

	core.PrepNull()
	c.Assert(core.Snapshot().ExecOwnedByLoader, qt.IsTrue)
}

func TestAccumulatorResetHeuristic(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	cfg.FDDA = 1_000_000 // ticks == microseconds for easy arithmetic
	cfg.AccumulatorResetFactor = 10

	core, _, _, _ := newTestCore(cfg, &noopPlanner{}, &fakeController{})

	// Segment A: dda_ticks = 10000.
	c.Assert(core.PrepLine([stepcore.NumMotors]float32{1, 1}, [stepcore.NumMotors]uint8{0, 0}, 10_000), qt.Equals, stepcore.OK)
	core.RequestLoadMove()
	c.Assert(core.Snapshot().ResetFlag, qt.IsFalse) // prev_ticks starts at 0, heuristic never trips on the first segment

	// Let segment A drain instantly by forcing downcount to 0 via ticks.
	for i := 0; i < 10_000; i++ {
		core.Tick()
	}
	c.Assert(core.IsBusy(), qt.IsFalse)

	// Segment B: dda_ticks = 100, factor 10 => 100*10=1000 < prev_ticks(10000) => reset.
	c.Assert(core.PrepLine([stepcore.NumMotors]float32{1, 1}, [stepcore.NumMotors]uint8{0, 0}, 100), qt.Equals, stepcore.OK)
	snap := core.Snapshot()
	c.Assert(snap.ResetFlag, qt.IsTrue)

	core.RequestLoadMove()
	snap = core.Snapshot()
	c.Assert(snap.PhaseAccumulator[stepcore.ZAxis], qt.Equals, int32(-100))
	c.Assert(snap.PhaseAccumulator[stepcore.RAxis], qt.Equals, int32(-100))
}
