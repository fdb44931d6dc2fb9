//go:build tinygo

package tmc2209

// EnableStealthChop clears EN_SPREADCYCLE in GCONF, switching the driver to
// the quiet voltage-PWM chopper.
func (driver *TMC2209) EnableStealthChop() error {
	return driver.writeGconf(func(r *Gconf) { r.EnSpreadcycle = 0 })
}

// DisableStealthChop sets EN_SPREADCYCLE in GCONF, switching back to the
// classic SpreadCycle chopper.
func (driver *TMC2209) DisableStealthChop() error {
	return driver.writeGconf(func(r *Gconf) { r.EnSpreadcycle = 1 })
}

func (driver *TMC2209) writeGconf(fn func(*Gconf)) error {
	value, err := driver.ReadRegister(GCONF)
	if err != nil {
		return err
	}
	r := NewGconf()
	r.Bytes = value
	r.Unpack(value)
	fn(r)
	return driver.WriteRegister(GCONF, r.Pack())
}

// EnableCoolStep turns on load-adaptive current scaling between the given
// stall-guard thresholds (SEMIN/SEMAX in COOLCONF, each masked to 4 bits) and
// sets the CoolStep enable bit in COOLCONF. It does not write TCOOLTHRS, so
// the step-rate threshold is whatever that register already holds.
func (driver *TMC2209) EnableCoolStep(lowerThreshold, upperThreshold uint8) error {
	value, err := driver.ReadRegister(COOLCONF)
	if err != nil {
		return err
	}
	r := NewCoolConf()
	r.Bytes = value
	r.Unpack(value)
	r.Semin = uint32(lowerThreshold) & 0x0F
	r.Semax = uint32(upperThreshold) & 0x0F
	r.CoolStepEnable = 1
	return driver.WriteRegister(COOLCONF, r.Pack())
}

// DisableCoolStep clears SEMIN, which disables CoolStep per the datasheet
// (SEMIN=0 means CoolStep is off regardless of the other fields).
func (driver *TMC2209) DisableCoolStep() error {
	value, err := driver.ReadRegister(COOLCONF)
	if err != nil {
		return err
	}
	r := NewCoolConf()
	r.Bytes = value
	r.Unpack(value)
	r.Semin = 0
	r.CoolStepEnable = 0
	return driver.WriteRegister(COOLCONF, r.Pack())
}

// EnableAutomaticCurrentScaling sets PWM_AUTOSCALE in PWMCONF, letting
// StealthChop regulate motor current automatically instead of running the
// fixed PWM_GRAD/PWM_OFS values.
func (driver *TMC2209) EnableAutomaticCurrentScaling() error {
	return driver.writePwmConf(func(r *PWMConf) { r.PwmAutoscale = 1 })
}

// DisableAutomaticCurrentScaling clears PWM_AUTOSCALE in PWMCONF.
func (driver *TMC2209) DisableAutomaticCurrentScaling() error {
	return driver.writePwmConf(func(r *PWMConf) { r.PwmAutoscale = 0 })
}

func (driver *TMC2209) writePwmConf(fn func(*PWMConf)) error {
	value, err := driver.ReadRegister(PWMCONF)
	if err != nil {
		return err
	}
	r := NewPWMConf()
	r.Bytes = value
	r.Unpack(value)
	fn(r)
	return driver.WriteRegister(PWMCONF, r.Pack())
}
