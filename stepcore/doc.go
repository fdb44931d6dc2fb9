// Package stepcore implements the triple-buffered, triple-interrupt-priority
// step-pulse generation pipeline for a two-axis (Z, R) CNC-style motor
// controller: a digital differential analyzer (DDA) that turns prepared
// motion segments into timed STEP/DIR edges.
//
// The pipeline has four stages, run at three distinct priority levels:
//
//	Planner -> Preparer (sps) -> Loader -> Runtime (st) -> Pulse Generator -> step pins
//
// The pulse generator (Core.Tick) runs at the highest priority, on a fixed
// timer at F_DDA Hz. The loader (Core.runLoad) and the preparer trampoline
// (Core.runExec) run at a medium, software-interrupt priority. Everything
// else -- driver-chip configuration, the thermal guard, the status display,
// fault recovery -- runs at foreground priority and never touches Runtime or
// Prep directly.
package stepcore
