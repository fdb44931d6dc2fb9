//go:build tinygo

// Package thermal repurposes the reference library's MAX6675 thermocouple
// driver from "read a temperature" into "protect the stepper driver power
// stage". A Guard samples the thermocouple mounted on the driver heatsink
// and, above a configured trip point, raises the same fault the DDA core
// uses for sentinel corruption -- there is exactly one way this machine
// stops unexpectedly, regardless of why.
package thermal

import (
	"tinygo.org/x/tinygstep/max6675"
	"tinygo.org/x/tinygstep/stepcore"
)

// Guard polls one thermocouple and escalates to Core's fault latch.
type Guard struct {
	sensor *max6675.Device
	core   *stepcore.Core

	tripCelsius float32
}

// NewGuard builds a Guard. tripCelsius is the driver heatsink temperature
// above which the guard halts motion; a typical smart stepper driver's
// datasheet thermal shutdown sits well above this, so the trip point is
// meant to act first.
func NewGuard(sensor *max6675.Device, core *stepcore.Core, tripCelsius float32) *Guard {
	return &Guard{sensor: sensor, core: core, tripCelsius: tripCelsius}
}

// Sample reads the thermocouple once and returns the temperature in
// celsius. An open thermocouple or an over-trip reading both raise
// FaultThermal on the core before Sample returns; the caller (the
// foreground loop) doesn't need its own escalation logic, only the polling
// cadence, which must stay well under interrupt priority -- a thermocouple
// SPI transaction is far too slow to run there.
func (g *Guard) Sample() (float32, error) {
	temp, err := g.sensor.Read()
	if err != nil {
		g.core.RaiseFault(stepcore.FaultThermal)
		return 0, err
	}
	if temp >= g.tripCelsius {
		g.core.RaiseFault(stepcore.FaultThermal)
	}
	return temp, nil
}

// TripCelsius reports the configured trip point, for display/console use.
func (g *Guard) TripCelsius() float32 {
	return g.tripCelsius
}
