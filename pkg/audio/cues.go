// Package audio plays short synthesized cues for flight events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue identifies a sound effect.
type Cue int

// Sound cues.
const (
	CueLaunch Cue = iota
	CueLand
	CueCrash
	CueSuccess
	CueFuelEmpty
	CueReset
	CueSaved
)

var cueNames = map[Cue]string{
	CueLaunch:    "launch",
	CueLand:      "land",
	CueCrash:     "crash",
	CueSuccess:   "success",
	CueFuelEmpty: "fuel_empty",
	CueReset:     "reset",
	CueSaved:     "saved",
}

func (c Cue) String() string {
	if name, ok := cueNames[c]; ok {
		return name
	}
	return "unknown"
}

// Wave is an oscillator shape.
type Wave int

// Oscillator shapes.
const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// oscillator streams a fixed length wave.
type oscillator struct {
	freq  float64
	phase float64
	left  int
	wave  Wave
	rate  beep.SampleRate
	seed  uint32
}

// NewOscillator creates a streamer producing d of the given wave.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq: freq,
		left: rate.N(d),
		wave: wave,
		rate: rate,
		seed: 0x2545f491,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.left <= 0 {
		return 0, false
	}
	for i := range samples {
		if o.left <= 0 {
			return i, true
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveNoise:
			// xorshift keeps cues identical between runs
			o.seed ^= o.seed << 13
			o.seed ^= o.seed >> 17
			o.seed ^= o.seed << 5
			v = float64(o.seed)/float64(math.MaxUint32)*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.left--
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade applies a linear attack and release to a streamer of known length.
type fade struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

// NewFade shapes s, which must last total, with the given attack and release.
func NewFade(s beep.Streamer, total, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(total),
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if f.attack > 0 && f.pos < f.attack {
			gain = float64(f.pos) / float64(f.attack)
		}
		if rest := f.total - f.pos; f.release > 0 && rest < f.release {
			gain = math.Max(0, float64(rest)/float64(f.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewFade(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// chime plays a pure sine note from beep's generators.
func chime(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		// frequencies above Nyquist fall back to the local oscillator
		return tone(freq, d, WaveSine, rate)
	}
	return NewFade(beep.Take(rate.N(d), sine), d, 5*time.Millisecond, d/2, rate)
}

// NewCue builds the streamer for c at the given sample rate and volume.
// Unknown cues return nil.
func NewCue(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueLaunch:
		s = beep.Mix(
			tone(70, 400*time.Millisecond, WaveSquare, rate),
			withVolume(tone(0, 400*time.Millisecond, WaveNoise, rate), 0.5),
		)
	case CueLand:
		s = beep.Seq(
			chime(523.25, 120*time.Millisecond, rate),
			chime(659.25, 180*time.Millisecond, rate),
		)
	case CueCrash:
		s = beep.Mix(
			NewFade(NewOscillator(0, 600*time.Millisecond, WaveNoise, rate), 600*time.Millisecond, 0, 550*time.Millisecond, rate),
			tone(55, 600*time.Millisecond, WaveSine, rate),
		)
	case CueSuccess:
		s = beep.Seq(
			chime(523.25, 120*time.Millisecond, rate),
			chime(659.25, 120*time.Millisecond, rate),
			chime(783.99, 120*time.Millisecond, rate),
			chime(1046.5, 300*time.Millisecond, rate),
		)
	case CueFuelEmpty:
		s = beep.Seq(
			tone(220, 150*time.Millisecond, WaveSquare, rate),
			tone(165, 250*time.Millisecond, WaveSquare, rate),
		)
	case CueReset:
		s = tone(330, 80*time.Millisecond, WaveSine, rate)
	case CueSaved:
		s = chime(880, 100*time.Millisecond, rate)
	default:
		return nil
	}
	return withVolume(s, volume)
}
