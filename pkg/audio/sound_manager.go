package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-lander/pkg/config"
	"github.com/opd-ai/go-lander/pkg/event"
	"github.com/opd-ai/go-lander/pkg/logging"
)

// Output is the device the mixer plays through.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	// Lock and Unlock guard streamers the device is currently pulling from.
	Lock()
	Unlock()
}

// Speaker plays through the system audio device.
type Speaker struct{}

// Init implements Output.
func (Speaker) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

// Play implements Output.
func (Speaker) Play(s beep.Streamer) { speaker.Play(s) }

// Lock implements Output.
func (Speaker) Lock() { speaker.Lock() }

// Unlock implements Output.
func (Speaker) Unlock() { speaker.Unlock() }

// cueEvents maps bus events to the cue they trigger.
var cueEvents = map[event.Type]Cue{
	event.RocketLaunched:  CueLaunch,
	event.RocketLanded:    CueLand,
	event.RocketCrashed:   CueCrash,
	event.RocketSucceeded: CueSuccess,
	event.FuelEmpty:       CueFuelEmpty,
	event.RocketReset:     CueReset,
	event.ReplaySaved:     CueSaved,
}

// SoundManager mixes event cues into a single output stream.
type SoundManager struct {
	mu          sync.Mutex
	out         Output
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	muted       bool
	initialized bool
	subs        []*event.Subscription
	played      map[Cue]int
	logger      *logging.Logger
}

// NewSoundManager creates a manager for cfg. A nil out uses the speaker.
func NewSoundManager(cfg config.AudioConfig, out Output, logger *logging.Logger) *SoundManager {
	if out == nil {
		out = Speaker{}
	}
	if logger == nil {
		logger = logging.NewLogger()
	}
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &SoundManager{
		out:    out,
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(rate),
		volume: cfg.Volume,
		muted:  !cfg.Enabled,
		played: make(map[Cue]int),
		logger: logger,
	}
}

// Initialize opens the output and starts the mixer. Muted managers never
// touch the device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}
	if err := sm.out.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return logging.WrapError(err, "init audio output at %d Hz", int(sm.rate))
	}
	sm.out.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Subscribe plays cues for flight and replay events published on bus.
func (sm *SoundManager) Subscribe(bus *event.Bus) {
	for t, cue := range cueEvents {
		sm.subs = append(sm.subs, bus.Subscribe(t, func(event.Event) {
			sm.Play(cue)
		}))
	}
}

// Play mixes in cue. It is a no-op while muted or before Initialize.
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.muted || !sm.initialized {
		return
	}
	s := NewCue(cue, sm.rate, sm.volume)
	if s == nil {
		return
	}
	sm.out.Lock()
	sm.mixer.Add(s)
	sm.out.Unlock()
	sm.played[cue]++
	sm.logger.Debug(context.Background(), "audio cue", "cue", cue.String())
}

// SetMuted toggles playback. Muting drops cues that are still sounding.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if muted && sm.initialized {
		sm.out.Lock()
		sm.mixer.Clear()
		sm.out.Unlock()
	}
}

// Played returns how many times cue was mixed in.
func (sm *SoundManager) Played(cue Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[cue]
}

// Cleanup unsubscribes from the bus and silences the mixer.
func (sm *SoundManager) Cleanup() {
	for _, sub := range sm.subs {
		sub.Cancel()
	}
	sm.subs = nil

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	sm.out.Lock()
	sm.mixer.Clear()
	sm.out.Unlock()
	sm.initialized = false
}
