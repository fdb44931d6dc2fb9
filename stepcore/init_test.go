package stepcore_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"tinygo.org/x/tinygstep/stepcore"
)

// failingDrivers always reports a comm error, standing in for a TMC2209/
// TMC5160 bank that doesn't answer on the bus.
type failingDrivers struct{ err error }

func (f failingDrivers) Configure() error { return f.err }

// okDrivers configures cleanly, tracking that it was actually invoked.
type okDrivers struct{ calls int }

func (d *okDrivers) Configure() error { d.calls++; return nil }

// stubThermal reports a fixed reading, or an error if one is set.
type stubThermal struct {
	temp float32
	err  error
}

func (s stubThermal) Read() (float32, error) { return s.temp, s.err }

func initArgs() ([stepcore.NumMotors]stepcore.MotorPins, *mockTimer) {
	var pins [stepcore.NumMotors]stepcore.MotorPins
	for m := stepcore.Motor(0); m < stepcore.NumMotors; m++ {
		pins[m] = stepcore.MotorPins{Step: &mockPin{}, Dir: &mockPin{}}
	}
	return pins, &mockTimer{}
}

func TestInitFailsFatallyOnDriverBankCommError(t *testing.T) {
	c := qt.New(t)
	pins, timer := initArgs()

	core, err := stepcore.Init(stepcore.DefaultConfig(), pins, timer,
		stepcore.ImmediateInterrupt{}, stepcore.ImmediateInterrupt{},
		&noopPlanner{}, &fakeController{},
		failingDrivers{err: errors.New("uart comm error")}, nil)

	c.Assert(err, qt.IsNotNil)
	c.Assert(core, qt.IsNil)
	c.Assert(timer.enables, qt.Equals, 0)
}

func TestInitFailsFatallyOnThermalSensorError(t *testing.T) {
	c := qt.New(t)
	pins, timer := initArgs()
	drivers := &okDrivers{}

	core, err := stepcore.Init(stepcore.DefaultConfig(), pins, timer,
		stepcore.ImmediateInterrupt{}, stepcore.ImmediateInterrupt{},
		&noopPlanner{}, &fakeController{},
		drivers, stubThermal{err: errors.New("open thermocouple")})

	c.Assert(err, qt.IsNotNil)
	c.Assert(core, qt.IsNil)
	c.Assert(timer.enables, qt.Equals, 0)
	// the driver bank is still configured before the thermal read runs
	c.Assert(drivers.calls, qt.Equals, 1)
}

func TestInitFailsFatallyOnThermalAtOrAboveTrip(t *testing.T) {
	c := qt.New(t)
	pins, timer := initArgs()
	cfg := stepcore.DefaultConfig()
	cfg.ThermalTripCelsius = 80

	core, err := stepcore.Init(cfg, pins, timer,
		stepcore.ImmediateInterrupt{}, stepcore.ImmediateInterrupt{},
		&noopPlanner{}, &fakeController{},
		nil, stubThermal{temp: 80})

	c.Assert(err, qt.IsNotNil)
	c.Assert(core, qt.IsNil)
	c.Assert(timer.enables, qt.Equals, 0)
}

func TestInitSucceedsWhenDriversAndThermalClear(t *testing.T) {
	c := qt.New(t)
	pins, timer := initArgs()
	drivers := &okDrivers{}

	core, err := stepcore.Init(stepcore.DefaultConfig(), pins, timer,
		stepcore.ImmediateInterrupt{}, stepcore.ImmediateInterrupt{},
		&noopPlanner{}, &fakeController{},
		drivers, stubThermal{temp: 42})

	c.Assert(err, qt.IsNil)
	c.Assert(core, qt.IsNotNil)
	c.Assert(drivers.calls, qt.Equals, 1)
}

func TestInitSkipsDriverAndThermalChecksWhenNil(t *testing.T) {
	c := qt.New(t)
	pins, timer := initArgs()

	core, err := stepcore.Init(stepcore.DefaultConfig(), pins, timer,
		stepcore.ImmediateInterrupt{}, stepcore.ImmediateInterrupt{},
		&noopPlanner{}, &fakeController{}, nil, nil)

	c.Assert(err, qt.IsNil)
	c.Assert(core, qt.IsNotNil)
}
