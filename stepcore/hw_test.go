package stepcore_test

import (
	"tinygo.org/x/tinygstep/stepcore"
)

// mockPin records every transition so tests can assert pulse counts and
// direction levels without real hardware, the same shape as the reference
// driver library's sharpmem_test mockPin.
type mockPin struct {
	level   bool
	toggles int
}

func (p *mockPin) High() { p.level = true; p.toggles++ }
func (p *mockPin) Low()  { p.level = false; p.toggles++ }

// mockTimer is a no-op Timer that just records calls.
type mockTimer struct {
	enabled  bool
	enables  int
	disables int
	resets   int
}

func (t *mockTimer) Enable()  { t.enabled = true; t.enables++ }
func (t *mockTimer) Disable() { t.enabled = false; t.disables++ }
func (t *mockTimer) Reset()   { t.resets++ }

// fakeController captures the motion_complete flag.
type fakeController struct {
	complete     bool
	completeSets int
}

func (f *fakeController) SetMotionComplete(b bool) {
	f.complete = b
	f.completeSets++
}

// scriptedPlanner feeds one queued segment per ExecMove call, then falls
// back to PrepNull once the queue is drained -- matching the spec's "a
// companion prep_null() ... used to keep the pipeline cadence intact".
type scriptedPlanner struct {
	queue []plannedSegment
	pos   int
	calls int
}

type plannedSegment struct {
	steps        [stepcore.NumMotors]float32
	directions   [stepcore.NumMotors]uint8
	microseconds float32
}

func (p *scriptedPlanner) ExecMove(c *stepcore.Core) (stepcore.ExecStatus, error) {
	p.calls++
	if p.pos >= len(p.queue) {
		c.PrepNull()
		return stepcore.ExecNoop, nil
	}
	seg := p.queue[p.pos]
	p.pos++
	c.PrepLine(seg.steps, seg.directions, seg.microseconds)
	return stepcore.ExecOK, nil
}

// noopPlanner never calls back into PrepLine/PrepNull, for tests that drive
// the preparer manually and want ownership transitions to stay predictable.
type noopPlanner struct{ calls int }

func (p *noopPlanner) ExecMove(c *stepcore.Core) (stepcore.ExecStatus, error) {
	p.calls++
	return stepcore.ExecNoop, nil
}

func newTestCore(cfg stepcore.Config, planner stepcore.Planner, controller stepcore.MotorController) (*stepcore.Core, [stepcore.NumMotors]*mockPin, [stepcore.NumMotors]*mockPin, *mockTimer) {
	var stepPins, dirPins [stepcore.NumMotors]*mockPin
	var pins [stepcore.NumMotors]stepcore.MotorPins
	for m := stepcore.Motor(0); m < stepcore.NumMotors; m++ {
		stepPins[m] = &mockPin{}
		dirPins[m] = &mockPin{}
		pins[m] = stepcore.MotorPins{Step: stepPins[m], Dir: dirPins[m]}
	}
	timer := &mockTimer{}
	core, err := stepcore.Init(cfg, pins, timer, stepcore.ImmediateInterrupt{}, stepcore.ImmediateInterrupt{}, planner, controller, nil, nil)
	if err != nil {
		panic(err)
	}
	return core, stepPins, dirPins, timer
}
