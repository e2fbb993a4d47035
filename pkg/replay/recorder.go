package replay

import (
	"context"

	"github.com/opd-ai/go-lander/pkg/input"
)

// Saver persists a finished recording and returns where it was written.
type Saver interface {
	Save(ctx context.Context, entries []Entry) (string, error)
}

// Recorder accumulates the input mask of every tick as run-length entries.
type Recorder struct {
	entries   []Entry
	last      input.Type
	ticks     uint8
	recording bool
}

// NewRecorder creates a stopped, empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins a new recording, discarding the previous one.
// It is a no-op while already recording.
func (r *Recorder) Start() {
	if r.recording {
		return
	}
	r.entries = r.entries[:0]
	r.last = input.None
	r.ticks = 0
	r.recording = true
}

// Record appends the mask held during one tick.
func (r *Recorder) Record(mask input.Type) {
	if !r.recording {
		return
	}
	if r.ticks > 0 && (mask != r.last || r.ticks == MaxTicks) {
		r.flush()
	}
	r.last = mask
	r.ticks++
}

// Stop flushes the pending run and ends the recording.
func (r *Recorder) Stop() {
	if !r.recording {
		return
	}
	if r.ticks > 0 {
		r.flush()
	}
	r.recording = false
}

func (r *Recorder) flush() {
	r.entries = append(r.entries, Entry{Ticks: r.ticks, Inputs: r.last})
	r.ticks = 0
}

// IsRecording reports whether Record currently has an effect.
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// Entries returns a copy of the flushed entries.
func (r *Recorder) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Save hands a finished recording to s. While recording, or with nothing
// recorded, it does nothing and returns an empty path.
func (r *Recorder) Save(ctx context.Context, s Saver) (string, error) {
	if r.recording || len(r.entries) == 0 || s == nil {
		return "", nil
	}
	return s.Save(ctx, r.Entries())
}
