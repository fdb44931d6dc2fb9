//go:build tinygo

// Package diag renders live pipeline state to an attached Sharp Memory
// Display and exposes a line-oriented command console over it -- a
// foreground debug surface, entirely separate from the interrupt-priority
// pipeline it reports on.
package diag

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyterm"

	"tinygo.org/x/tinygstep/driverbank"
	"tinygo.org/x/tinygstep/sharpmem"
	"tinygo.org/x/tinygstep/stepcore"
	"tinygo.org/x/tinygstep/thermal"
)

var (
	colorOn  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorOff = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// Display renders, once per foreground tick: a status word (RUN, IDLE, or
// FAULT with the latched fault kind) and a per-axis step counter, as a fixed
// status block at the top of the screen; a scrolling event log fills the
// rest.
type Display struct {
	lcd  *sharpmem.Device
	log  *tinyterm.Terminal
	core *stepcore.Core
}

// NewDisplay wraps an already-configured sharpmem.Device.
func NewDisplay(lcd *sharpmem.Device, core *stepcore.Core) *Display {
	term := tinyterm.NewTerminal(lcd)
	term.Configure(&tinyterm.Config{
		Font:            &freemono.Regular9pt7b,
		FontColor:       colorOn,
		BackgroundColor: colorOff,
	})
	return &Display{lcd: lcd, log: term, core: core}
}

// Render draws the status block. It never touches st/sps directly -- only
// through Core's consistent-snapshot accessors -- and never runs from an
// ISR; a sharpmem frame transfer is an SPI transaction, far too slow for
// interrupt priority.
func (d *Display) Render() error {
	snap := d.core.Snapshot()

	status := "RUN"
	if !snap.Busy {
		status = "IDLE"
	}
	if snap.Fault != stepcore.NoFault {
		status = "FAULT:" + snap.Fault.String()
	}

	tinyfont.WriteLine(d.lcd, &freemono.Regular9pt7b, 2, 12, status, colorOn)
	tinyfont.WriteLine(d.lcd, &freemono.Regular9pt7b, 2, 26,
		"Z="+itoa(snap.StepCounts[stepcore.ZAxis])+" R="+itoa(snap.StepCounts[stepcore.RAxis]), colorOn)

	return d.lcd.Display()
}

// Logf appends a line to the scrolling event log below the status block.
func (d *Display) Logf(line string) {
	d.log.Write([]byte(line + "\n"))
}

// ReportDriverFault logs a wire-fault line for one axis when status reports
// one, and nothing otherwise.
func (d *Display) ReportDriverFault(axis stepcore.Motor, status driverbank.DriverStatus) {
	if status.WireOK {
		return
	}
	d.Logf(axis.String() + ": driver wire fault")
}

// ReportThermal logs a trip line when celsius is at or above the guard's
// trip temperature, and nothing otherwise.
func (d *Display) ReportThermal(guard *thermal.Guard, celsius float32) {
	if celsius >= guard.TripCelsius() {
		d.Logf("thermal trip: " + itoa(uint32(celsius)) + "C")
	}
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
