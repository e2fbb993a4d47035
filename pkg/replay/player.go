package replay

import "github.com/opd-ai/go-lander/pkg/input"

// Player is an input.Source that plays back recorded entries. It always
// starts with a one-tick Reset so the simulation begins from the start
// state. Once the log is exhausted, or the live source reports Reset, it
// hands control to the live source for good.
type Player struct {
	entries []Entry
	index   int
	tick    int
	live    input.Source
	done    bool
}

// NewPlayer creates a player over entries. live may be nil.
func NewPlayer(entries []Entry, live input.Source) *Player {
	log := make([]Entry, 0, len(entries)+1)
	log = append(log, Entry{Ticks: 1, Inputs: input.Reset})
	for _, e := range entries {
		if e.Ticks > 0 {
			log = append(log, e)
		}
	}
	return &Player{
		entries: log,
		tick:    -1,
		live:    live,
	}
}

// Tick advances playback by one tick.
func (p *Player) Tick() {
	if p.live != nil {
		p.live.Tick()
	}
	if p.done {
		return
	}
	if p.live != nil && p.live.IsActive(input.Reset) {
		p.done = true
		return
	}

	p.tick++
	if p.tick == int(p.entries[p.index].Ticks) {
		p.index++
		p.tick = 0
		if p.index >= len(p.entries) {
			p.done = true
		}
	}
}

// IsActive implements input.Source.
func (p *Player) IsActive(kind input.Type) bool {
	if p.done || p.tick < 0 {
		if p.live == nil {
			return false
		}
		return p.live.IsActive(kind)
	}
	return p.entries[p.index].Inputs.Has(kind)
}

// Done reports whether playback has handed over to the live source.
func (p *Player) Done() bool {
	return p.done
}

// Remaining returns the number of recorded ticks not yet played.
func (p *Player) Remaining() int {
	if p.done {
		return 0
	}
	rest := 0
	for i := p.index; i < len(p.entries); i++ {
		rest += int(p.entries[i].Ticks)
	}
	if p.tick >= 0 {
		rest -= p.tick + 1
	}
	return rest
}
