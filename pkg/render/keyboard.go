package render

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-lander/pkg/input"
)

// DefaultKeyHold is how long a terminal key counts as held after its last
// press or auto-repeat. Terminals report no key releases.
const DefaultKeyHold = 150 * time.Millisecond

// Action is a frontend command triggered by a key outside the tick inputs.
type Action int

// Frontend actions.
const (
	ActionNone Action = iota
	ActionQuit
	ActionLoadReplay
)

type termKey int

const (
	termEscape termKey = iota
	termSpace
	termUp
	termLeft
	termRight
	termF5
	termKeyCount
)

// TerminalKeyboard is an input.Source fed by tcell key events. Events and
// ticks must come from the same goroutine.
type TerminalKeyboard struct {
	hold    time.Duration
	now     func() time.Time
	seen    [termKeyCount]time.Time
	current input.Type
}

// NewTerminalKeyboard creates a keyboard. A nil now uses time.Now.
func NewTerminalKeyboard(hold time.Duration, now func() time.Time) *TerminalKeyboard {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	if now == nil {
		now = time.Now
	}
	return &TerminalKeyboard{hold: hold, now: now}
}

// HandleKey records a key event and reports any frontend action it maps to.
func (k *TerminalKeyboard) HandleKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyF9:
		return ActionLoadReplay
	case tcell.KeyEscape:
		k.press(termEscape)
	case tcell.KeyUp:
		k.press(termUp)
	case tcell.KeyLeft:
		k.press(termLeft)
	case tcell.KeyRight:
		k.press(termRight)
	case tcell.KeyF5:
		k.press(termF5)
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			k.press(termSpace)
		case 'q', 'Q':
			return ActionQuit
		}
	}
	return ActionNone
}

func (k *TerminalKeyboard) press(key termKey) {
	k.seen[key] = k.now()
}

func (k *TerminalKeyboard) held(key termKey, now time.Time) bool {
	last := k.seen[key]
	return !last.IsZero() && now.Sub(last) < k.hold
}

// Tick implements input.Source.
func (k *TerminalKeyboard) Tick() {
	now := k.now()
	k.current = input.Keys{
		Escape: k.held(termEscape, now),
		Space:  k.held(termSpace, now),
		Up:     k.held(termUp, now),
		Left:   k.held(termLeft, now),
		Right:  k.held(termRight, now),
		F5:     k.held(termF5, now),
	}.Mask()
}

// IsActive implements input.Source.
func (k *TerminalKeyboard) IsActive(kind input.Type) bool {
	return k.current.Has(kind)
}
