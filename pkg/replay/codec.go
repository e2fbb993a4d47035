// Package replay records per-tick input masks as run-length entries, stores
// them as raw two-byte records and plays them back as an input source.
package replay

import (
	"fmt"
	"io"

	"github.com/opd-ai/go-lander/pkg/input"
)

// EntrySize is the on-disk size of one record: a tick count followed by an input mask.
const EntrySize = 2

// MaxTicks is the longest run a single entry can hold.
const MaxTicks = 255

// Entry says that Inputs were held for Ticks consecutive ticks.
type Entry struct {
	Ticks  uint8
	Inputs input.Type
}

// DecodeStats reports the malformed parts of a replay stream.
type DecodeStats struct {
	// TrailingBytes is the count of bytes after the last whole record.
	TrailingBytes int
	// ZeroTickRecords is the count of dropped records with a zero tick count.
	ZeroTickRecords int
}

// Clean reports whether the stream decoded without dropping anything.
func (s DecodeStats) Clean() bool {
	return s.TrailingBytes == 0 && s.ZeroTickRecords == 0
}

// Encode serializes entries with no header.
func Encode(entries []Entry) []byte {
	out := make([]byte, 0, len(entries)*EntrySize)
	for _, e := range entries {
		out = append(out, e.Ticks, byte(e.Inputs))
	}
	return out
}

// Decode parses raw records. A trailing partial record is ignored and
// zero-tick records are dropped since playback could never leave them.
func Decode(data []byte) ([]Entry, DecodeStats) {
	var stats DecodeStats
	whole := len(data) / EntrySize * EntrySize
	stats.TrailingBytes = len(data) - whole

	entries := make([]Entry, 0, whole/EntrySize)
	for i := 0; i < whole; i += EntrySize {
		if data[i] == 0 {
			stats.ZeroTickRecords++
			continue
		}
		entries = append(entries, Entry{Ticks: data[i], Inputs: input.Type(data[i+1])})
	}
	return entries, stats
}

// Write encodes entries to w.
func Write(w io.Writer, entries []Entry) error {
	if _, err := w.Write(Encode(entries)); err != nil {
		return fmt.Errorf("write replay: %w", err)
	}
	return nil
}

// Read decodes every record from r.
func Read(r io.Reader) ([]Entry, DecodeStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, DecodeStats{}, fmt.Errorf("read replay: %w", err)
	}
	entries, stats := Decode(data)
	return entries, stats, nil
}

// TotalTicks returns the number of ticks covered by entries.
func TotalTicks(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += int(e.Ticks)
	}
	return total
}
