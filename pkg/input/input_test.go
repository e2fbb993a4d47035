package input

import (
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-lander/pkg/physics"
)

func TestType_String(t *testing.T) {
	tests := []struct {
		name     string
		mask     Type
		expected string
	}{
		{"none", None, "None"},
		{"single", Thrust, "Thrust"},
		{"combined", Thrust | RollLeft, "Thrust|RollLeft"},
		{"all", Reset | Thrust | RollLeft | RollRight | SaveReplay, "Reset|Thrust|RollLeft|RollRight|SaveReplay"},
		{"unknown_bits", Reset | 0x80, "Reset|0x80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mask.String(); got != tt.expected {
				t.Errorf("String() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestType_WireValues(t *testing.T) {
	if Reset != 0x01 || Thrust != 0x02 || RollLeft != 0x04 || RollRight != 0x08 || SaveReplay != 0x10 {
		t.Fatal("input bit values changed; replay files would no longer decode")
	}
}

func TestLatch_ChangesVisibleAfterTick(t *testing.T) {
	l := NewLatch()
	l.Press(Thrust)

	if l.IsActive(Thrust) {
		t.Error("Press() visible before Tick()")
	}

	l.Tick()
	if !l.IsActive(Thrust) {
		t.Error("Thrust not active after Tick()")
	}

	l.Press(RollLeft)
	l.Release(Thrust)
	if got := AllActive(l); got != Thrust {
		t.Errorf("AllActive() mid-tick = %v, expected Thrust", got)
	}

	l.Tick()
	if got := AllActive(l); got != RollLeft {
		t.Errorf("AllActive() = %v, expected RollLeft", got)
	}

	l.Set(Reset | RollRight)
	l.Tick()
	if got := AllActive(l); got != Reset|RollRight {
		t.Errorf("AllActive() = %v, expected Reset|RollRight", got)
	}
}

func TestScript_Sequence(t *testing.T) {
	s := NewScript(Thrust, Thrust|RollLeft).Repeat(None, 2).Repeat(RollRight, 1)

	if s.Len() != 5 {
		t.Fatalf("Len() = %d, expected 5", s.Len())
	}
	if s.IsActive(Thrust) {
		t.Error("script active before first Tick()")
	}

	expected := []Type{Thrust, Thrust | RollLeft, None, None, RollRight, None, None}
	for i, want := range expected {
		s.Tick()
		if got := AllActive(s); got != want {
			t.Errorf("tick %d: AllActive() = %v, expected %v", i, got, want)
		}
	}
	if !s.Done() {
		t.Error("Done() = false after exhausting the script")
	}
}

type fakeTelemetry struct {
	pos, vel physics.Vector2D
}

func (f *fakeTelemetry) Position() physics.Vector2D { return f.pos }
func (f *fakeTelemetry) Velocity() physics.Vector2D { return f.vel }

func TestHoverAI_Decisions(t *testing.T) {
	tests := []struct {
		name   string
		pos    physics.Vector2D
		vel    physics.Vector2D
		thrust bool
	}{
		{"above_band_idle", physics.Vector2D{X: 100, Y: 200}, physics.Vector2D{}, false},
		{"below_band_falling", physics.Vector2D{X: 100, Y: 400}, physics.Vector2D{Y: 3}, true},
		{"below_band_at_rest", physics.Vector2D{X: 100, Y: 350}, physics.Vector2D{}, true},
		{"at_band_top_climbing", physics.Vector2D{X: 100, Y: 300.0000001}, physics.Vector2D{Y: -5}, false},
		{"deep_climbing", physics.Vector2D{X: 100, Y: 600}, physics.Vector2D{Y: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := NewHoverAI(&fakeTelemetry{pos: tt.pos, vel: tt.vel}, nil, 42)
			ai.Tick()
			if got := ai.IsActive(Thrust); got != tt.thrust {
				t.Errorf("IsActive(Thrust) = %v, expected %v", got, tt.thrust)
			}
		})
	}
}

// fixedDraw always yields the same 64 random bits.
type fixedDraw uint64

func (f fixedDraw) Uint64() uint64 { return uint64(f) }

func TestHoverAI_ThrustChanceInclusive(t *testing.T) {
	// halfway down the band the chance is 0.5; a draw of exactly 0.5 thrusts
	ai := NewHoverAI(&fakeTelemetry{pos: physics.Vector2D{X: 100, Y: 400}, vel: physics.Vector2D{Y: -1}}, nil, 0)
	ai.rng = rand.New(fixedDraw(1 << 52))
	if got := ai.rng.Float64(); got != 0.5 {
		t.Fatalf("draw = %v, expected 0.5", got)
	}
	ai.Tick()
	if !ai.IsActive(Thrust) {
		t.Error("draw equal to the thrust chance should thrust")
	}

	ai.rng = rand.New(fixedDraw(1<<52 + 1))
	ai.Tick()
	if ai.IsActive(Thrust) {
		t.Error("draw above the thrust chance should coast")
	}
}

func TestHoverAI_ResetFromFallback(t *testing.T) {
	keys := NewLatch()
	ai := NewHoverAI(nil, keys, 1)

	keys.Press(Reset)
	ai.Tick()
	if !ai.IsActive(Reset) {
		t.Error("Reset from fallback not forwarded")
	}
	if ai.IsActive(Thrust) {
		t.Error("Thrust active without a target")
	}

	keys.Release(Reset)
	ai.Tick()
	if ai.IsActive(Reset) {
		t.Error("Reset still active after release")
	}
}

func TestHoverAI_SeededIsDeterministic(t *testing.T) {
	target := &fakeTelemetry{pos: physics.Vector2D{Y: 380}, vel: physics.Vector2D{Y: -1}}
	a := NewHoverAI(target, nil, 7)
	b := NewHoverAI(target, nil, 7)

	thrusts := 0
	for i := 0; i < 500; i++ {
		a.Tick()
		b.Tick()
		if a.IsActive(Thrust) != b.IsActive(Thrust) {
			t.Fatalf("tick %d: seeded controllers diverged", i)
		}
		if a.IsActive(Thrust) {
			thrusts++
		}
	}
	// 80px into a 200px band: thrust about 40% of the time
	if thrusts < 120 || thrusts > 280 {
		t.Errorf("thrust ticks = %d, expected roughly 200", thrusts)
	}
}

func TestKeys_Mask(t *testing.T) {
	tests := []struct {
		name string
		keys Keys
		want Type
	}{
		{"nothing", Keys{}, None},
		{"space thrusts", Keys{Space: true}, Thrust},
		{"up thrusts", Keys{Up: true}, Thrust},
		{"left rolls", Keys{Left: true}, RollLeft},
		{"right rolls", Keys{Right: true}, RollRight},
		{"opposite rolls cancel", Keys{Left: true, Right: true}, None},
		{"escape resets", Keys{Escape: true}, Reset},
		{"f5 saves", Keys{F5: true}, SaveReplay},
		{"combined", Keys{Up: true, Left: true, F5: true}, Thrust | RollLeft | SaveReplay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.keys.Mask(); got != tt.want {
				t.Errorf("Mask() = %v, want %v", got, tt.want)
			}
		})
	}
}
