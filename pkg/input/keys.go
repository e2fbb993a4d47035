package input

// Keys is the held state of the physical controls shared by every keyboard
// frontend.
type Keys struct {
	Escape bool
	Space  bool
	Up     bool
	Left   bool
	Right  bool
	F5     bool
}

// Mask maps held keys onto input kinds. Opposite roll keys cancel out.
func (k Keys) Mask() Type {
	var mask Type
	if k.Escape {
		mask |= Reset
	}
	if k.Space || k.Up {
		mask |= Thrust
	}
	if k.Left && !k.Right {
		mask |= RollLeft
	}
	if k.Right && !k.Left {
		mask |= RollRight
	}
	if k.F5 {
		mask |= SaveReplay
	}
	return mask
}
