package stepcore

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

// whitebox tests exercise package-private fields directly to simulate
// conditions (sentinel corruption) that can't be induced through the public
// API, matching the reference library's own package-internal _test.go files
// (e.g. sharpmem_test.go tests unexported helpers directly).

type wbPin struct{}

func (wbPin) High() {}
func (wbPin) Low()  {}

type wbController struct{ complete bool }

func (w *wbController) SetMotionComplete(b bool) { w.complete = b }

func newWhiteboxCore() *Core {
	var pins [NumMotors]MotorPins
	for m := Motor(0); m < NumMotors; m++ {
		pins[m] = MotorPins{Step: wbPin{}, Dir: wbPin{}}
	}
	core, err := Init(DefaultConfig(), pins, &mockTimerWB{}, ImmediateInterrupt{}, ImmediateInterrupt{}, nil, &wbController{}, nil, nil)
	if err != nil {
		panic(err)
	}
	return core
}

type mockTimerWB struct{ enabled bool }

func (t *mockTimerWB) Enable()  { t.enabled = true }
func (t *mockTimerWB) Disable() { t.enabled = false }
func (t *mockTimerWB) Reset()   {}

func TestCorruptionRaisesFaultAndBlocksPrepLine(t *testing.T) {
	c := qt.New(t)
	core := newWhiteboxCore()

	c.Assert(core.VerifyIntegrity(), qt.IsTrue)

	core.sps.magicStart = 0xBAD

	c.Assert(core.VerifyIntegrity(), qt.IsFalse)
	c.Assert(core.Fault(), qt.Equals, FaultCorruption)

	status := core.PrepLine([NumMotors]float32{1, 0}, [NumMotors]uint8{0, 0}, 1_000_000)
	c.Assert(status, qt.Equals, InternalError)

	// Fix the sentinel (as a real re-init would) and recover.
	core.sps.magicStart = magicWord
	core.Recover()

	c.Assert(core.Fault(), qt.Equals, NoFault)
	status = core.PrepLine([NumMotors]float32{1, 0}, [NumMotors]uint8{0, 0}, 1_000_000)
	c.Assert(status, qt.Equals, OK)
}

func TestRaiseFaultDisarmsTimer(t *testing.T) {
	c := qt.New(t)
	core := newWhiteboxCore()
	timer := core.ddaTimer.(*mockTimerWB)
	timer.enabled = true

	core.raiseFault(FaultThermal)

	c.Assert(timer.enabled, qt.IsFalse)
	c.Assert(core.Fault(), qt.Equals, FaultThermal)
}
