package replay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-lander/pkg/logging"
)

// FileTimeLayout names replay files after their save time.
const FileTimeLayout = "2006-01-02T150405"

// FileExt is the replay file extension.
const FileExt = ".sav"

var (
	// ErrOpenReplay is returned when a replay file cannot be opened.
	ErrOpenReplay = errors.New("unable to open replay file")
	// ErrNoReplays is returned by Latest when the saves directory is empty.
	ErrNoReplays = errors.New("no saved replays")
)

// StoreOptions configures a Store.
type StoreOptions struct {
	// Dir holds replay files and is created on first save.
	Dir string
	// MaxFailures consecutive write failures open the breaker.
	MaxFailures uint32
	// Timeout is how long an open breaker rejects writes.
	Timeout time.Duration
	Logger  *logging.Logger
	// Now overrides the clock used for file names.
	Now func() time.Time
}

// Store reads and writes replay files in a directory. Writes go through a
// circuit breaker so a full or read-only disk does not stall every save.
type Store struct {
	dir     string
	now     func() time.Time
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
}

// NewStore creates a Store.
func NewStore(opts StoreOptions) *Store {
	if opts.Dir == "" {
		opts.Dir = "saves"
	}
	if opts.MaxFailures == 0 {
		opts.MaxFailures = 3
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger := opts.Logger
	settings := gobreaker.Settings{
		Name:        "replay-store",
		MaxRequests: 1,
		Timeout:     opts.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "replay store breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Store{
		dir:     opts.Dir,
		now:     opts.Now,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Dir returns the saves directory.
func (s *Store) Dir() string {
	return s.dir
}

// BreakerState exposes the write breaker state.
func (s *Store) BreakerState() gobreaker.State {
	return s.breaker.State()
}

// Save writes entries to a new timestamped file and returns its path.
func (s *Store) Save(ctx context.Context, entries []Entry) (string, error) {
	path := filepath.Join(s.dir, s.now().Format(FileTimeLayout)+FileExt)

	_, err := s.breaker.Execute(func() (interface{}, error) {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return nil, fmt.Errorf("create saves directory: %w", err)
		}
		return nil, os.WriteFile(path, Encode(entries), 0o644)
	})
	if err != nil {
		s.logger.Error(ctx, "replay save failed", err,
			"path", path,
			"breaker_state", s.breaker.State().String(),
		)
		return "", logging.WrapError(err, "save replay %s", path)
	}

	s.logger.Info(ctx, "replay saved",
		"path", path,
		"entries", len(entries),
		"ticks", TotalTicks(entries),
	)
	return path, nil
}

// Load reads a replay file. Open failures wrap both ErrOpenReplay and the
// underlying error, so errors.Is(err, fs.ErrNotExist) works for missing files.
func (s *Store) Load(ctx context.Context, path string) ([]Entry, error) {
	entries, stats, err := Open(path)
	if err != nil {
		return nil, err
	}
	if !stats.Clean() {
		s.logger.Warn(ctx, "replay file truncated or malformed",
			"path", path,
			"trailing_bytes", stats.TrailingBytes,
			"zero_tick_records", stats.ZeroTickRecords,
		)
	}
	s.logger.Info(ctx, "replay loaded", "path", path, "entries", len(entries))
	return entries, nil
}

// Open reads and decodes a replay file.
func Open(path string) ([]Entry, DecodeStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, DecodeStats{}, fmt.Errorf("%w %s: %w", ErrOpenReplay, path, err)
	}
	defer f.Close()
	return Read(f)
}

// List returns the replay files in the saves directory, oldest first.
// A missing directory yields an empty list.
func (s *Store) List() ([]string, error) {
	items, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list replays: %w", err)
	}

	var paths []string
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(item.Name(), FileExt) {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, item.Name()))
	}
	// timestamp names sort chronologically
	sort.Strings(paths)
	return paths, nil
}

// Latest returns the most recently named replay file.
func (s *Store) Latest() (string, error) {
	paths, err := s.List()
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoReplays, s.dir)
	}
	return paths[len(paths)-1], nil
}
