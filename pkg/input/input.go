// Package input defines the logical controls of the lander and the sources
// that produce them: keyboards, scripted sequences, replays and simple AIs.
package input

import (
	"fmt"
	"strings"
)

// Type is a bitmask of logical inputs. Its numeric values are part of the
// replay file format and must not change.
type Type uint8

// Logical inputs.
const (
	Reset      Type = 0x01
	Thrust     Type = 0x02
	RollLeft   Type = 0x04
	RollRight  Type = 0x08
	SaveReplay Type = 0x10

	None Type = 0
)

// Kinds lists every logical input in bit order.
var Kinds = []Type{Reset, Thrust, RollLeft, RollRight, SaveReplay}

var names = map[Type]string{
	Reset:      "Reset",
	Thrust:     "Thrust",
	RollLeft:   "RollLeft",
	RollRight:  "RollRight",
	SaveReplay: "SaveReplay",
}

// Has reports whether every bit of k is set in t.
func (t Type) Has(k Type) bool {
	return k != None && t&k == k
}

// String renders the mask as names joined with '|'.
func (t Type) String() string {
	if t == None {
		return "None"
	}
	var parts []string
	for _, k := range Kinds {
		if t&k != 0 {
			parts = append(parts, names[k])
		}
	}
	if rest := t &^ (Reset | Thrust | RollLeft | RollRight | SaveReplay); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%02X", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// Source supplies the state of logical inputs. Tick is called exactly once
// per simulation tick, before any entity reads the source; IsActive must
// return the same answer for the remainder of that tick.
type Source interface {
	IsActive(kind Type) bool
	Tick()
}

// AllActive returns the union of every active input of src.
func AllActive(src Source) Type {
	var mask Type
	for _, k := range Kinds {
		if src.IsActive(k) {
			mask |= k
		}
	}
	return mask
}
