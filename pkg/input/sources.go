package input

// Latch is a Source driven by explicit Press/Release calls. Changes become
// visible on the next Tick so a tick never observes a half-applied update.
type Latch struct {
	pending Type
	current Type
}

// NewLatch creates a latch with no inputs held.
func NewLatch() *Latch {
	return &Latch{}
}

// Press marks kind as held from the next tick on.
func (l *Latch) Press(kind Type) {
	l.pending |= kind
}

// Release clears kind from the next tick on.
func (l *Latch) Release(kind Type) {
	l.pending &^= kind
}

// Set replaces the pending mask.
func (l *Latch) Set(mask Type) {
	l.pending = mask
}

// Tick latches the pending mask.
func (l *Latch) Tick() {
	l.current = l.pending
}

// IsActive implements Source.
func (l *Latch) IsActive(kind Type) bool {
	return l.current.Has(kind)
}

// Script replays a fixed per-tick sequence of masks, then reports nothing.
type Script struct {
	masks []Type
	index int
}

// NewScript creates a script whose i-th tick reports masks[i].
func NewScript(masks ...Type) *Script {
	return &Script{masks: masks, index: -1}
}

// Repeat appends mask for n ticks and returns the script for chaining.
func (s *Script) Repeat(mask Type, n int) *Script {
	for i := 0; i < n; i++ {
		s.masks = append(s.masks, mask)
	}
	return s
}

// Tick advances to the next mask.
func (s *Script) Tick() {
	if s.index < len(s.masks) {
		s.index++
	}
}

// IsActive implements Source.
func (s *Script) IsActive(kind Type) bool {
	if s.index < 0 || s.index >= len(s.masks) {
		return false
	}
	return s.masks[s.index].Has(kind)
}

// Done reports whether every scripted tick has been consumed.
func (s *Script) Done() bool {
	return s.index >= len(s.masks)-1
}

// Len returns the number of scripted ticks.
func (s *Script) Len() int {
	return len(s.masks)
}
