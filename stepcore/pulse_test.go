package stepcore_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"tinygo.org/x/tinygstep/stepcore"
)

func runSegment(core *stepcore.Core, ticks int) {
	for i := 0; i < ticks; i++ {
		core.Tick()
	}
}

func TestSingleStraightMove(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	cfg.FDDA = 50_000
	cfg.Substeps = 1

	core, stepPins, dirPins, timer := newTestCore(cfg, &noopPlanner{}, &fakeController{})

	status := core.PrepLine([stepcore.NumMotors]float32{1000, 0}, [stepcore.NumMotors]uint8{0, 0}, 1_000_000)
	c.Assert(status, qt.Equals, stepcore.OK)
	core.RequestLoadMove()
	c.Assert(timer.enabled, qt.IsTrue)

	runSegment(core, 50_000)

	counts := core.StepCounts()
	c.Assert(counts[stepcore.ZAxis], qt.Equals, uint32(1000))
	c.Assert(counts[stepcore.RAxis], qt.Equals, uint32(0))
	c.Assert(dirPins[stepcore.ZAxis].level, qt.IsFalse) // direction low
	c.Assert(core.IsBusy(), qt.IsFalse)
	c.Assert(timer.enabled, qt.IsFalse)
	_ = stepPins
}

func TestReverseDirection(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	cfg.FDDA = 50_000
	cfg.Substeps = 1
	cfg.MotorPolarity = [stepcore.NumMotors]uint8{0, 0}

	core, _, dirPins, _ := newTestCore(cfg, &noopPlanner{}, &fakeController{})

	status := core.PrepLine([stepcore.NumMotors]float32{1000, 0}, [stepcore.NumMotors]uint8{1, 0}, 1_000_000)
	c.Assert(status, qt.Equals, stepcore.OK)
	core.RequestLoadMove()

	c.Assert(dirPins[stepcore.ZAxis].level, qt.IsTrue) // direction high

	runSegment(core, 50_000)

	c.Assert(core.StepCounts()[stepcore.ZAxis], qt.Equals, uint32(1000))
}

func TestTwoAxisBresenhamInterleave(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	cfg.FDDA = 50_000
	cfg.Substeps = 1

	core, stepPins, _, _ := newTestCore(cfg, &noopPlanner{}, &fakeController{})

	status := core.PrepLine([stepcore.NumMotors]float32{300, 200}, [stepcore.NumMotors]uint8{0, 0}, 100_000)
	c.Assert(status, qt.Equals, stepcore.OK)
	core.RequestLoadMove()

	// Track the tick index of each motor's steps, to check they're spread
	// evenly (Bresenham, worst-case jitter of one tick) rather than bursty.
	var zTicks, rTicks []int
	for tick := 0; tick < 5000; tick++ {
		zBefore := stepPins[stepcore.ZAxis].toggles
		rBefore := stepPins[stepcore.RAxis].toggles
		core.Tick()
		if stepPins[stepcore.ZAxis].toggles != zBefore {
			zTicks = append(zTicks, tick)
		}
		if stepPins[stepcore.RAxis].toggles != rBefore {
			rTicks = append(rTicks, tick)
		}
	}

	counts := core.StepCounts()
	c.Assert(counts[stepcore.ZAxis], qt.Equals, uint32(300))
	c.Assert(counts[stepcore.RAxis], qt.Equals, uint32(200))
	c.Assert(core.IsBusy(), qt.IsFalse)

	c.Assert(maxGap(zTicks), qt.Satisfies, func(g int) bool { return g <= 5000/300+2 })
	c.Assert(maxGap(rTicks), qt.Satisfies, func(g int) bool { return g <= 5000/200+2 })
}

func maxGap(ticks []int) int {
	max := 0
	prev := -1
	for _, t := range ticks {
		if prev >= 0 && t-prev > max {
			max = t - prev
		}
		prev = t
	}
	return max
}

func TestPulseWidthIsHighThenLow(t *testing.T) {
	c := qt.New(t)
	cfg := stepcore.DefaultConfig()
	cfg.FDDA = 1
	cfg.Substeps = 1

	core, stepPins, _, _ := newTestCore(cfg, &noopPlanner{}, &fakeController{})
	core.PrepLine([stepcore.NumMotors]float32{1, 0}, [stepcore.NumMotors]uint8{0, 0}, 1_000_000)
	core.RequestLoadMove()

	core.Tick()
	// Exactly one High/Low pair recorded for the one step pulse.
	c.Assert(stepPins[stepcore.ZAxis].toggles, qt.Equals, 2)
	c.Assert(stepPins[stepcore.ZAxis].level, qt.IsFalse) // ends low
}
