package input

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-lander/pkg/physics"
)

// Telemetry exposes the flight state a controller may observe.
type Telemetry interface {
	Position() physics.Vector2D
	Velocity() physics.Vector2D
}

// HoverAI keeps its target hovering around a fixed screen altitude by
// feathering thrust. Reset is delegated to a fallback source so a player
// can still restart the run.
type HoverAI struct {
	// Altitude is the screen y below which the AI starts thrusting.
	Altitude float64
	// Band is the distance below Altitude over which thrust ramps to full.
	Band float64

	target   Telemetry
	fallback Source
	rng      *rand.Rand
	mask     Type
}

// NewHoverAI creates a hover controller. fallback may be nil.
func NewHoverAI(target Telemetry, fallback Source, seed uint64) *HoverAI {
	return &HoverAI{
		Altitude: 300,
		Band:     200,
		target:   target,
		fallback: fallback,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// SetTarget changes the observed object.
func (a *HoverAI) SetTarget(target Telemetry) {
	a.target = target
}

// Tick decides the inputs for this tick.
func (a *HoverAI) Tick() {
	a.mask = None
	if a.fallback != nil {
		a.fallback.Tick()
		if a.fallback.IsActive(Reset) {
			a.mask |= Reset
		}
	}
	if a.target == nil {
		return
	}

	pos := a.target.Position()
	if pos.Y <= a.Altitude {
		return
	}
	if a.target.Velocity().Y < 0 {
		// climbing: thrust with a probability growing with depth below the band top
		p := math.Min(pos.Y-a.Altitude, a.Band) / a.Band
		if a.rng.Float64() <= p {
			a.mask |= Thrust
		}
		return
	}
	a.mask |= Thrust
}

// IsActive implements Source.
func (a *HoverAI) IsActive(kind Type) bool {
	return a.mask.Has(kind)
}
