package stepcore

// runLoad is the segment loader. It runs at medium interrupt priority, and
// is entered either because the DDA pulse generator invoked it directly
// when a segment ended (safe: same interrupt level can call down without
// preemption hazards), or because the foreground asked for a load via
// RequestLoadMove.
func (c *Core) runLoad() {
	if c.faulted.Load() {
		return // a latched fault keeps the DDA timer disarmed until Recover
	}
	if c.st.ddaTicksDowncount != 0 {
		return // runtime still busy; reentry deferred
	}
	if c.sps.execState.load() != ownedByLoader {
		// Nothing prepared: the queue is drained.
		if c.controller != nil {
			c.controller.SetMotionComplete(true)
		}
		return
	}

	switch c.sps.moveType {
	case MoveAline:
		c.loadAline()
	case MoveNull:
		// no motor state to copy
	}

	c.sps.execState.store(ownedByExec)
	c.sps.prepState = false
	c.RequestExecMove()
}

func (c *Core) loadAline() {
	c.st.ddaTicksDowncount = int32(c.sps.ddaTicks)
	c.st.ddaTicksXSubsteps = c.sps.ddaTicksXSubsteps

	reset := c.sps.resetFlag.Load()

	for m := Motor(0); m < NumMotors; m++ {
		mp := &c.sps.motors[m]
		mr := &c.st.motors[m]

		mr.phaseIncrement = int32(mp.phaseIncrement)
		if reset {
			// Reinitialize instead of leaving a residual accumulator: the
			// previous segment ran much slower than this one.
			mr.phaseAccumulator = -c.st.ddaTicksDowncount
		}
		if mp.phaseIncrement != 0 {
			// Direction must settle before the first step pulse of the new
			// segment, so program it here, before the timer below is armed.
			if mp.dir != 0 {
				c.pins[m].Dir.High()
			} else {
				c.pins[m].Dir.Low()
			}
		}
	}

	c.ddaTimer.Reset()
	c.ddaTimer.Enable()
}
