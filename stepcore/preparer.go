package stepcore

import (
	"math"

	"github.com/orsinium-labs/tinymath"
)

// roundU32 rounds a non-negative float to the nearest uint32 using the
// reference library's own no-allocation rounding helper (the same one its
// stepper-velocity conversions use) rather than math.Round, so this stays
// buildable on a tinygo target with no software-float runtime for float64.
func roundU32(v float32) uint32 {
	if v < 0 {
		v = -v
	}
	return uint32(tinymath.Round(v))
}

// PrepLine converts one planner segment into the integer DDA parameters the
// loader will copy into Runtime. It must be called from the medium-priority
// exec context, after the loader has handed the buffer back.
func (c *Core) PrepLine(steps [NumMotors]float32, directions [NumMotors]uint8, microseconds float32) Status {
	if c.faulted.Load() {
		return InternalError
	}
	if c.sps.execState.load() != ownedByExec {
		return InternalError
	}
	if math.IsNaN(float64(microseconds)) || math.IsInf(float64(microseconds), 0) {
		return MinLengthMoveError
	}
	if microseconds < c.cfg.Epsilon {
		return MinTimeMoveError
	}

	for m := Motor(0); m < NumMotors; m++ {
		dir := directions[m] ^ c.cfg.MotorPolarity[m]
		c.sps.motors[m] = motorPrep{
			phaseIncrement: roundU32(steps[m] * float32(c.cfg.Substeps)),
			dir:            dir,
		}
	}

	ddaTicks := roundU32((microseconds / 1e6) * c.cfg.FDDA)
	ddaTicksXSubsteps := ddaTicks * c.cfg.Substeps

	// Anti-stall heuristic: a segment much longer per step than the one
	// before it would otherwise leave a stale accumulator and cause a short
	// leading pulse burst. Unsigned comparison, matching the source.
	resetFlag := uint64(ddaTicks)*uint64(c.cfg.AccumulatorResetFactor) < uint64(c.sps.prevTicks)

	c.sps.ddaTicks = ddaTicks
	c.sps.ddaTicksXSubsteps = ddaTicksXSubsteps
	c.sps.resetFlag.Store(resetFlag)
	c.sps.prevTicks = ddaTicks
	c.sps.moveType = MoveAline
	c.sps.prepState = true
	c.sps.execState.store(ownedByLoader)

	return OK
}

// PrepNull fills the buffer with a no-op segment: always succeeds, used to
// keep pipeline cadence for M-codes and dwell placeholders that don't move
// a motor.
func (c *Core) PrepNull() {
	c.sps.moveType = MoveNull
	c.sps.prepState = true
	c.sps.execState.store(ownedByLoader)
}
