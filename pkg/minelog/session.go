package minelog

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/minelog/minelog-go/internal/logfinder"
)

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Session searches one log directory. It holds no open files between calls
// and is safe to share between goroutines; each Search owns its own state.
type Session struct {
	dir string
	cfg sessionConfig
	log *slog.Logger
}

// New creates a session bound to dir. If dir is empty, the platform default
// Minecraft log directory is used.
//
// Returns ErrNotADirectory (wrapped) if dir does not exist or is not a
// directory. The check happens here, not lazily on first search.
//
// Example:
//
//	s, err := minelog.New("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for line, err := range s.Search(ctx, []byte(`^.*ERROR.*$`)) {
//	    ...
//	}
func New(dir string, opts ...Option) (*Session, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if dir == "" {
		def, err := logfinder.HostLogDir()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotADirectory, err)
		}
		dir = def
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotADirectory, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	log := cfg.logger
	if log == nil {
		log = discardLogger
	}

	return &Session{
		dir: dir,
		cfg: *cfg,
		log: log,
	}, nil
}

// Dir returns the root directory of the session.
func (s *Session) Dir() string {
	return s.dir
}

func (s *Session) String() string {
	return fmt.Sprintf("minelog.Session(%q)", s.dir)
}
