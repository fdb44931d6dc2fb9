//go:build tinygo

package tmc2209

// SetMicrostepsPerStep configures MRES in CHOPCONF from a microstep count,
// rounding down to the nearest power of two the register can express (1 to
// 256). It returns the exponent actually applied.
func (driver *TMC2209) SetMicrostepsPerStep(microsteps uint16) (uint8, error) {
	exponent := uint8(0)
	microstepsShifted := microsteps >> 1

	for microstepsShifted > 0 {
		microstepsShifted = microstepsShifted >> 1
		exponent++
	}
	if exponent > 8 {
		exponent = 8
	}

	return exponent, driver.SetMicrostepsPerStepPowerOfTwo(exponent)
}

// SetMicrostepsPerStepPowerOfTwo writes MRES directly from a power-of-two
// exponent (0 = 1 microstep/fullstep, 8 = 256 microsteps). The register
// field runs the opposite direction from the exponent -- MRES=8 is
// fullstep, MRES=0 is finest -- so the conversion is 8-exponent, clamped.
func (driver *TMC2209) SetMicrostepsPerStepPowerOfTwo(exponent uint8) error {
	if exponent > 8 {
		exponent = 8
	}
	mres := uint32(8 - exponent)

	value, err := driver.ReadRegister(CHOPCONF)
	if err != nil {
		return err
	}
	chopconf := NewChopconf()
	chopconf.Bytes = value
	chopconf.Unpack(value)
	chopconf.Mres = mres
	return driver.WriteRegister(CHOPCONF, chopconf.Pack())
}
