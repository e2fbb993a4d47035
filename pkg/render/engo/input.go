// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-lander/pkg/input"
)

// Button names registered with engo.
const (
	ButtonEscape     = "escape"
	ButtonSpace      = "space"
	ButtonUp         = "up"
	ButtonLeft       = "left"
	ButtonRight      = "right"
	ButtonSave       = "save"
	ButtonLoadReplay = "loadReplay"
)

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonEscape, engo.KeyEscape)
	engo.Input.RegisterButton(ButtonSpace, engo.KeySpace)
	engo.Input.RegisterButton(ButtonUp, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonLeft, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonRight, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonSave, engo.KeyF5)
	engo.Input.RegisterButton(ButtonLoadReplay, engo.KeyF9)
}

// ButtonReader reports whether a registered button is held.
type ButtonReader func(name string) bool

// EngoButtons reads button state from engo's global input manager.
func EngoButtons(name string) bool {
	return engo.Input.Button(name).Down()
}

// Keyboard is an input.Source sampling engo buttons once per tick.
type Keyboard struct {
	down    ButtonReader
	current input.Type
}

// NewKeyboard creates a keyboard source. A nil reader uses EngoButtons.
func NewKeyboard(down ButtonReader) *Keyboard {
	if down == nil {
		down = EngoButtons
	}
	return &Keyboard{down: down}
}

// Tick implements input.Source.
func (k *Keyboard) Tick() {
	k.current = input.Keys{
		Escape: k.down(ButtonEscape),
		Space:  k.down(ButtonSpace),
		Up:     k.down(ButtonUp),
		Left:   k.down(ButtonLeft),
		Right:  k.down(ButtonRight),
		F5:     k.down(ButtonSave),
	}.Mask()
}

// IsActive implements input.Source.
func (k *Keyboard) IsActive(kind input.Type) bool {
	return k.current.Has(kind)
}
