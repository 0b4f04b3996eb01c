package main

import (
	"io"
	"log/slog"

	"github.com/minelog/minelog-go/internal/logfinder"
	"github.com/minelog/minelog-go/pkg/minelog"
)

// newLogger returns a text logger on w: debug level when verbose, warnings
// only otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openSession resolves the log directory and encoding from the global flags.
func openSession(g *globalOptions, stderr io.Writer) (*minelog.Session, error) {
	dir, err := logfinder.FindLogDir(g.directory)
	if err != nil {
		return nil, err
	}
	enc, err := lookupEncoding(g.encoding)
	if err != nil {
		return nil, err
	}

	logger := newLogger(stderr, g.verbose)
	opts := []minelog.Option{minelog.WithLogger(logger)}
	if enc != nil {
		opts = append(opts, minelog.WithSourceEncoding(enc))
	}

	s, err := minelog.New(dir, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("using log directory", "dir", s.Dir(), "encoding", g.encoding)
	return s, nil
}
