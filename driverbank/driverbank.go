//go:build tinygo

// Package driverbank binds the two smart stepper driver chips this machine
// is built around: a TMC2209 on the Z axis, talked to over UART, and a
// TMC5160 on the R axis, talked to over SPI. Configuring and polling them
// is a foreground concern entirely separate from step-pulse generation --
// once configured, the chips step on the STEP/DIR lines stepcore already
// drives directly. Microstep resolution here is the driver chip's own
// chopper table, unrelated to the DDA's fractional-accumulator substeps:
// a chip set for 1/16 microstepping still receives exactly one STEP edge
// per DDA pulse.
package driverbank

import (
	"tinygo.org/x/tinygstep/stepcore"
	"tinygo.org/x/tinygstep/tmc2209"
	"tinygo.org/x/tinygstep/tmc5160"
)

// ZConfig configures the TMC2209 on the Z axis.
type ZConfig struct {
	RunCurrentPercent  uint8
	HoldCurrentPercent uint8
	MicrostepResolution uint16
	StealthChop        bool
	StallGuardThreshold uint8 // sensorless-homing hint; 0 disables
}

// RConfig configures the TMC5160 on the R axis. The Stepper electrical
// parameters (coil resistance, supply voltage, clock) are fixed at
// construction time (tmc5160.NewDriver), not here -- Configure only pushes
// the run-time power/motor register values.
type RConfig struct {
	Power tmc5160.PowerStageParameters
	Motor tmc5160.MotorParameters
}

// DriverStatus is a foreground snapshot of one driver chip's health,
// returned by Status. It never blocks the ISRs -- a full read takes a UART
// or SPI round trip, at most a few Hz of polling.
type DriverStatus struct {
	OverTemperatureWarning bool
	OverTemperatureShutdown bool
	OpenLoadOrShortToGround bool
	WireOK                  bool

	// InterfaceTransmissionCount is the UART link's IFCNT value on the Z
	// axis, useful for spotting a silently dropped write (it only
	// increments on a well-formed transaction reaching the chip). The R
	// axis talks SPI, which has no equivalent counter, so this is always
	// zero there.
	InterfaceTransmissionCount uint32
}

// DriverBank holds one TMC2209 bound to the Z axis and one TMC5160 bound to
// the R axis -- the two comm styles (UART, SPI) the reference packages
// already implement, kept one of each rather than arbitrarily standardizing
// on a single chip family.
type DriverBank struct {
	z *tmc2209.TMC2209
	r *tmc5160.Driver
}

// New wraps an already-constructed TMC2209 and TMC5160 instance. Building
// the comm links (UART for Z, SPI for R) is the caller's job, since that's
// board wiring, not driver-chip configuration.
func New(z *tmc2209.TMC2209, r *tmc5160.Driver) *DriverBank {
	return &DriverBank{z: z, r: r}
}

// Configure pushes run/hold current, microstepping, chopper mode, and (Z
// only) the StallGuard threshold to both chips. It never touches stepcore's
// runtime or prep state -- this is plain register I/O, run once from
// Core.Init or after a fault Recover, never from an ISR. It stops at the
// first error so a partially-configured chip is never treated as ready.
func (b *DriverBank) Configure(z ZConfig, r RConfig) error {
	if err := b.z.Setup(); err != nil {
		return err
	}
	if err := b.z.SetRunCurrent(z.RunCurrentPercent); err != nil {
		return err
	}
	if err := b.z.SetHoldCurrent(z.HoldCurrentPercent); err != nil {
		return err
	}
	if _, err := b.z.SetMicrostepsPerStep(z.MicrostepResolution); err != nil {
		return err
	}
	if z.StealthChop {
		if err := b.z.EnableStealthChop(); err != nil {
			return err
		}
	} else if err := b.z.DisableStealthChop(); err != nil {
		return err
	}
	if z.StallGuardThreshold != 0 {
		sg := tmc2209.NewSgthrs()
		sg.Threshold = uint32(z.StallGuardThreshold)
		if err := b.z.WriteRegister(tmc2209.SGTHRS, sg.Pack()); err != nil {
			return err
		}
	}

	if !b.r.Begin(r.Power, r.Motor, tmc5160.Clockwise) {
		return tmc5160.CustomError("TMC5160 configuration failed")
	}
	return nil
}

// Bind fixes a Z/R configuration pair to this bank and returns a
// stepcore.DriverBankConfigurer closing over them, so stepcore.Init can run
// Configure exactly once as part of bringing up the pipeline rather than
// leaving the ordering (configure the chips, then build the Core) to caller
// discipline.
func (b *DriverBank) Bind(z ZConfig, r RConfig) stepcore.DriverBankConfigurer {
	return boundConfig{bank: b, z: z, r: r}
}

type boundConfig struct {
	bank *DriverBank
	z    ZConfig
	r    RConfig
}

func (c boundConfig) Configure() error {
	return c.bank.Configure(c.z, c.r)
}

// Status reads back the DRV_STATUS-equivalent register for the given axis:
// temperature warning/shutdown, open-load/short-to-ground, and overall wire
// health. Used by the console's selftest command.
func (b *DriverBank) Status(axis stepcore.Motor) (DriverStatus, error) {
	switch axis {
	case stepcore.ZAxis:
		return b.zStatus()
	default:
		return b.rStatus()
	}
}

func (b *DriverBank) zStatus() (DriverStatus, error) {
	value, err := b.z.ReadRegister(tmc2209.DRV_STATUS)
	if err != nil {
		return DriverStatus{}, err
	}
	reg := tmc2209.NewDrvStatus()
	reg.Bytes = value
	reg.Unpack(value)
	openOrShort := reg.Ola|reg.S2vsa|reg.S2vsb|reg.S2ga|reg.S2gb|reg.Olb != 0

	ifcnt, err := b.z.InterfaceTransmissionCount()
	if err != nil {
		return DriverStatus{}, err
	}

	return DriverStatus{
		OverTemperatureWarning:     reg.Otpw != 0,
		OverTemperatureShutdown:    reg.Ot != 0,
		OpenLoadOrShortToGround:    openOrShort,
		InterfaceTransmissionCount: ifcnt,
		WireOK:                  reg.Ot == 0 && !openOrShort,
	}, nil
}

func (b *DriverBank) rStatus() (DriverStatus, error) {
	value, err := b.r.ReadRegister(tmc5160.DRV_STATUS)
	if err != nil {
		return DriverStatus{}, err
	}
	reg := tmc5160.NewDRV_STATUS()
	reg.Unpack(value)
	openOrShort := reg.S2ga || reg.S2gb || reg.Ola || reg.Olb
	return DriverStatus{
		OverTemperatureWarning:  reg.Otpw,
		OverTemperatureShutdown: reg.Ot,
		OpenLoadOrShortToGround: openOrShort,
		WireOK:                  !reg.Ot && !openOrShort,
	}, nil
}
