package stepcore

// Tick is the DDA pulse generator. It runs at the highest interrupt
// priority, on a fixed-period timer at F_DDA Hz, and is the only code that
// ever writes Runtime's phase accumulators.
func (c *Core) Tick() {
	for m := Motor(0); m < NumMotors; m++ {
		mr := &c.st.motors[m]
		mr.phaseAccumulator += mr.phaseIncrement
		if mr.phaseAccumulator > 0 {
			// Edge triggers the driver; the on/off writes occur back to
			// back, the handful of intervening instructions providing the
			// ~1us pulse width drivers require. A core fast enough to
			// finish those writes in under a microsecond needs an explicit
			// delay or a hardware one-shot here instead.
			c.pins[m].Step.High()
			mr.phaseAccumulator -= int32(c.st.ddaTicksXSubsteps)
			c.pins[m].Step.Low()
			mr.stepCount.Add(1)
		}
	}

	c.st.ddaTicksDowncount--
	if c.st.ddaTicksDowncount <= 0 {
		c.st.ddaTicksDowncount = 0
		c.ddaTimer.Disable()
		c.runLoad()
	}
}
