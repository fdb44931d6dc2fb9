package stepcore

// RequestExecMove asks the preparer to run, at medium priority. It is
// idempotent: calling it any number of times while the buffer is
// loader-owned (already full, or already requested) is a no-op. The loader
// calls this every time it hands the buffer back; foreground code may also
// call it after enqueueing new planner work.
func (c *Core) RequestExecMove() {
	c.execIRQ.Trigger(c.runExec)
}

// RequestLoadMove asks the loader to run, at medium priority. It is a no-op
// if the DDA timer is still armed (dda_ticks_downcount != 0).
func (c *Core) RequestLoadMove() {
	c.loadIRQ.Trigger(c.runLoad)
}

// runExec is the exec-request handler: a no-op if the buffer isn't
// exec-owned, otherwise it hands control to the planner, which is expected
// to call PrepLine or PrepNull synchronously before returning.
func (c *Core) runExec() {
	if c.sps.execState.load() != ownedByExec {
		return
	}
	if c.planner == nil {
		return
	}
	c.planner.ExecMove(c)
}
