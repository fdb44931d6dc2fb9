package stepcore

import (
	"fmt"
	"sync/atomic"
)

// Config carries the compile-time constants a real build fixes once, at
// power-up.
type Config struct {
	FDDA                   float32 // DDA tick frequency, Hz
	Substeps               uint32  // fractional-step scaling factor
	AccumulatorResetFactor uint32  // anti-stall ratio threshold
	MotorPolarity          [NumMotors]uint8
	Epsilon                float32 // minimum accepted segment duration, microseconds
	ThermalTripCelsius     float32 // thermal guard cutoff, checked once at Init and continuously thereafter
}

// DefaultConfig mirrors the reference firmware's defaults for a Z/R
// two-axis build: 50kHz DDA tick rate, no sub-tick fractional resolution,
// and a 10x anti-stall ratio.
func DefaultConfig() Config {
	return Config{
		FDDA:                   50_000,
		Substeps:               1,
		AccumulatorResetFactor: 10,
		Epsilon:                1, // 1us floor
		ThermalTripCelsius:     80,
	}
}

// Core owns the whole triple-buffered pipeline: Runtime state (st),
// Prep/staging state (sps), the hardware it drives, and the fault latch
// shared by corruption detection, the thermal guard, and driver-chip wire
// errors.
type Core struct {
	cfg Config

	sps prep
	st  runtime

	pins     [NumMotors]MotorPins
	ddaTimer Timer
	loadIRQ  Interrupt
	execIRQ  Interrupt

	planner    Planner
	controller MotorController

	faulted   atomic.Bool
	faultKind atomic.Uint32
}

// Init installs the reference used to report motion_complete, sets the
// sentinels, and initializes exec_state = OWNED_BY_EXEC so the preparer may
// fill the buffer immediately. It does not arm the DDA timer -- that only
// happens once the loader has a prepared segment to run.
//
// Before returning, Init runs the driver-chip bank's one-time configuration
// pass and takes one thermal-guard reading. Either one failing -- a UART/SPI
// comm error configuring the TMC2209/TMC5160, an open thermocouple, or a
// temperature already at or above Config.ThermalTripCelsius -- is fatal:
// Init returns a non-nil error and a nil *Core, and the DDA timer is never
// armed. drivers or thermal may be nil to skip that check entirely (host
// tests that have no driver bank or thermocouple to wire up).
func Init(cfg Config, pins [NumMotors]MotorPins, ddaTimer Timer, loadIRQ, execIRQ Interrupt, planner Planner, controller MotorController, drivers DriverBankConfigurer, thermal ThermalSensor) (*Core, error) {
	if drivers != nil {
		if err := drivers.Configure(); err != nil {
			return nil, fmt.Errorf("driver bank configure: %w", err)
		}
	}
	if thermal != nil {
		temp, err := thermal.Read()
		if err != nil {
			return nil, fmt.Errorf("thermal guard arm: %w", err)
		}
		if temp >= cfg.ThermalTripCelsius {
			return nil, fmt.Errorf("thermal guard arm: %.1fC at or above trip %.1fC", temp, cfg.ThermalTripCelsius)
		}
	}

	c := &Core{
		cfg:        cfg,
		pins:       pins,
		ddaTimer:   ddaTimer,
		loadIRQ:    loadIRQ,
		execIRQ:    execIRQ,
		planner:    planner,
		controller: controller,
	}
	c.sps.magicStart, c.sps.magicEnd = magicWord, magicWord
	c.st.magicStart, c.st.magicEnd = magicWord, magicWord
	// exec_state defaults to its zero value, ownedByExec(0), which is the
	// correct initial state; written explicitly for readability.
	c.sps.execState.store(ownedByExec)
	// prevTicks is deliberately left at zero, matching the source: the
	// first segment's anti-stall heuristic compares dda_ticks*factor
	// against zero, which never trips. This is a preserved quirk, not a bug.
	return c, nil
}

// IsBusy reports whether the DDA timer has ticks left to run.
func (c *Core) IsBusy() bool {
	return c.st.ddaTicksDowncount != 0
}

// StepCounts returns a consistent snapshot of the per-motor pulse counters.
// Safe to call from foreground diagnostics while the pulse generator is
// running concurrently.
func (c *Core) StepCounts() [NumMotors]uint32 {
	var out [NumMotors]uint32
	for m := Motor(0); m < NumMotors; m++ {
		out[m] = c.st.motors[m].stepCount.Load()
	}
	return out
}

// Snapshot is a foreground-readable view of pipeline state, used by the
// status display and console and by tests; it is never consulted by the
// ISRs themselves.
type Snapshot struct {
	Busy              bool
	DdaTicksDowncount int32
	PrevTicks         uint32
	ResetFlag         bool
	ExecOwnedByLoader bool
	PhaseAccumulator  [NumMotors]int32
	PhaseIncrement    [NumMotors]int32
	StepCounts        [NumMotors]uint32
	Fault             FaultKind
}

// Snapshot takes a point-in-time read of pipeline state for diagnostics.
func (c *Core) Snapshot() Snapshot {
	s := Snapshot{
		Busy:              c.IsBusy(),
		DdaTicksDowncount: c.st.ddaTicksDowncount,
		PrevTicks:         c.sps.prevTicks,
		ResetFlag:         c.sps.resetFlag.Load(),
		ExecOwnedByLoader: c.sps.execState.load() == ownedByLoader,
		StepCounts:        c.StepCounts(),
		Fault:             c.Fault(),
	}
	for m := Motor(0); m < NumMotors; m++ {
		s.PhaseAccumulator[m] = c.st.motors[m].phaseAccumulator
		s.PhaseIncrement[m] = c.st.motors[m].phaseIncrement
	}
	return s
}

// VerifyIntegrity checks the magic-sentinel guards on both shared structs.
// Intended to be polled periodically from the foreground loop; a mismatch
// is reported as FaultCorruption through the same path the thermal guard
// and driver-chip wire errors use.
func (c *Core) VerifyIntegrity() bool {
	ok := c.sps.magicStart == magicWord && c.sps.magicEnd == magicWord &&
		c.st.magicStart == magicWord && c.st.magicEnd == magicWord
	if !ok {
		c.raiseFault(FaultCorruption)
	}
	return ok
}

// raiseFault latches a fault and disarms the DDA timer. It is foreground-
// only: VerifyIntegrity calls it on a magic-word mismatch, and the thermal
// guard and the console's driver selftest reach it through RaiseFault;
// never an ISR.
func (c *Core) raiseFault(kind FaultKind) {
	c.ddaTimer.Disable()
	c.faultKind.Store(uint32(kind))
	c.faulted.Store(true)
}

// RaiseFault is the entry point external foreground collaborators use to
// report an out-of-band condition -- the thermal guard on an over-
// temperature read, the driver bank on a wire fault -- through the same
// latch VerifyIntegrity uses for sentinel corruption. It must never be
// called from an ISR.
func (c *Core) RaiseFault(kind FaultKind) {
	c.raiseFault(kind)
}

// Halt is the foreground emergency stop: disable the DDA timer, then
// restore exec_state = OWNED_BY_EXEC and clear prep_state, matching the
// spec's halt sequence exactly (timer first, then ownership).
func (c *Core) Halt() {
	c.ddaTimer.Disable()
	c.st.ddaTicksDowncount = 0
	c.sps.prepState = false
	c.sps.execState.store(ownedByExec)
}

// Fault reports the latched fault kind, or NoFault if none is latched.
func (c *Core) Fault() FaultKind {
	if !c.faulted.Load() {
		return NoFault
	}
	return FaultKind(c.faultKind.Load())
}

// Recover clears a latched fault and restores the buffer to exec-owned so
// the planner can resume filling it. Callers are expected to have already
// addressed the underlying condition (cooled down, re-seated a connector,
// re-initialized after corruption).
func (c *Core) Recover() {
	c.faulted.Store(false)
	c.faultKind.Store(uint32(NoFault))
	c.Halt()
}
