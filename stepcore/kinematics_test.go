package stepcore_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"tinygo.org/x/tinygstep/stepcore"
)

func TestMapIdentityScaling(t *testing.T) {
	c := qt.New(t)

	travel := []float32{10, -5}
	pulsesPerUnit := []float32{200, 200}
	axisOf := []int{0, 1}

	steps, duration := stepcore.Map(travel, float32(1000), pulsesPerUnit, axisOf, nil)

	c.Assert(steps, qt.DeepEquals, []float32{2000, -1000})
	c.Assert(duration, qt.Equals, float32(1000))
}

func TestMapInhibitedAxis(t *testing.T) {
	c := qt.New(t)

	travel := []float32{10, -5}
	pulsesPerUnit := []float32{200, 200}
	axisOf := []int{0, 1}
	inhibited := []bool{false, true}

	steps, _ := stepcore.Map(travel, float32(1000), pulsesPerUnit, axisOf, inhibited)

	c.Assert(steps, qt.DeepEquals, []float32{2000, 0})
}

func TestMapZR(t *testing.T) {
	c := qt.New(t)

	stepsZ, stepsR, duration := stepcore.MapZR(float32(5), float32(-2), float32(5000), float32(200), float32(160))

	c.Assert(stepsZ, qt.Equals, float32(1000))
	c.Assert(stepsR, qt.Equals, float32(-320))
	c.Assert(duration, qt.Equals, float32(5000))
}
