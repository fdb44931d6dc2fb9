package stepcore

import "golang.org/x/exp/constraints"

// Map is the kinematics mapper: a pure function with no retained state that
// turns joint travel (length units) into signed step counts per motor.
//
// For a Cartesian machine the mapping is identity per axis followed by
// scaling: steps[m] = travel[axisOf(m)] * pulsesPerUnit[m]. An inhibited
// axis (inhibited[axisOf(m)] == true) always produces zero step count
// regardless of the commanded travel. Duration passes through unchanged --
// it is opaque to the mapper.
//
// The function is generic over the float type and the motor count so that
// it can serve any MOTORS-parametric caller, even though this core's
// preparer/loader/pulse-generator stay unrolled over exactly Z and R for
// ISR speed (see the design notes on a MOTORS-parametric API at the
// preparer level).
func Map[T constraints.Float](travel []T, durationUs T, pulsesPerUnit []T, axisOf []int, inhibited []bool) (steps []T, duration T) {
	steps = make([]T, len(pulsesPerUnit))
	for m := range steps {
		axis := axisOf[m]
		if axis < 0 || axis >= len(travel) || (inhibited != nil && axis < len(inhibited) && inhibited[axis]) {
			continue
		}
		steps[m] = travel[axis] * pulsesPerUnit[m]
	}
	return steps, durationUs
}

// MapZR is the Z/R two-axis convenience form: axis 0 maps to ZAxis, axis 1
// maps to RAxis, one-to-one, with no shared axes and no inhibition map
// required.
func MapZR[T constraints.Float](travelZ, travelR, durationUs T, pulsesPerUnitZ, pulsesPerUnitR T) (stepsZ, stepsR T, duration T) {
	return travelZ * pulsesPerUnitZ, travelR * pulsesPerUnitR, durationUs
}
