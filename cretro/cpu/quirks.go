package cpu

// Quirks selects between behaviours that differ across historical
// interpreters. The zero value shifts Vx in place, advances I past
// register transfers and faults on index overflow.
type Quirks struct {
	// ShiftUsesVY makes 8xy6/8xyE shift Vy into Vx instead of shifting Vx in place.
	ShiftUsesVY bool

	// LoadStoreLeavesI keeps I unchanged after Fx55/Fx65. Without it I is
	// left pointing past the last register transferred.
	LoadStoreLeavesI bool

	// IndexOverflowSetsVF makes Fx1E set VF when I+Vx leaves the 12 bit
	// address space and wrap I. Without it the overflow is a runtime fault.
	IndexOverflowSetsVF bool
}
