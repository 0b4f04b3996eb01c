package minelog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/minelog/minelog-go/internal/safefile"
)

// Sources lists the sources of the session directory in scan order:
// archives sorted by file name, then latest.log if present.
// Names that are neither archives nor latest.log are ignored, as are
// directories. Symlinks are followed.
func (s *Session) Sources() ([]Source, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &SourceError{Op: OpList, Path: s.dir, Err: err}
	}

	var sources []Source
	for _, e := range entries {
		date, number, ok := ParseArchiveName(e.Name())
		if !ok {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if isDirEntry(e, path) {
			continue
		}
		sources = append(sources, Source{
			Kind:   KindArchive,
			Path:   path,
			Name:   e.Name(),
			Date:   date,
			Number: number,
		})
	}

	// ReadDir already sorts by name; keep the ordering explicit since it is
	// part of the contract.
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})

	// Only a missing latest.log is left out. Anything else that is not a
	// directory is listed, and reading it reports an error if it is not a
	// regular file.
	latest := filepath.Join(s.dir, LatestLogName)
	info, err := os.Stat(latest)
	if (err == nil && !info.IsDir()) || (err != nil && !errors.Is(err, fs.ErrNotExist)) {
		sources = append(sources, Source{
			Kind: KindLatest,
			Path: latest,
			Name: LatestLogName,
		})
	}

	return sources, nil
}

// Contents yields every source with its fully decoded content, one at a
// time. Each file is opened, read and closed before it is yielded, so
// stopping the iteration early leaks nothing.
//
// A corrupt archive yields a *SourceError wrapping ErrDecodeFailure and
// ends the iteration. A latest.log that vanished since listing is skipped.
func (s *Session) Contents(ctx context.Context) iter.Seq2[SourceContent, error] {
	return func(yield func(SourceContent, error) bool) {
		sources, err := s.Sources()
		if err != nil {
			yield(SourceContent{}, err)
			return
		}

		for _, src := range sources {
			if err := ctx.Err(); err != nil {
				yield(SourceContent{}, err)
				return
			}

			content, err := s.read(src)
			if err != nil {
				if src.Kind == KindLatest && errors.Is(err, fs.ErrNotExist) {
					s.log.Debug("live log disappeared, skipping", "path", src.Path)
					continue
				}
				yield(SourceContent{}, err)
				return
			}
			s.log.Debug("read source", "path", src.Path, "kind", src.Kind, "bytes", len(content))

			if !yield(SourceContent{Source: src, Content: content}, nil) {
				return
			}
		}
	}
}

// read loads the full decoded content of src.
func (s *Session) read(src Source) ([]byte, error) {
	var wrap func(io.Reader) (io.ReadCloser, error)
	if src.Compressed() {
		wrap = openGzip
	}

	content, err := safefile.ReadFile(src.Path, s.cfg.maxSourceBytes, wrap)
	if err == nil {
		return s.transcode(src, content)
	}

	switch {
	case errors.Is(err, safefile.ErrTooLarge):
		return nil, &SourceError{Op: OpRead, Path: src.Path, Err: ErrSourceTooLarge}
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission), errors.Is(err, safefile.ErrNotRegularFile):
		return nil, &SourceError{Op: OpOpen, Path: src.Path, Err: err}
	case src.Compressed():
		return nil, &SourceError{Op: OpDecode, Path: src.Path, Err: fmt.Errorf("%w: %w", ErrDecodeFailure, err)}
	default:
		return nil, &SourceError{Op: OpRead, Path: src.Path, Err: err}
	}
}

// isDirEntry reports whether e is a directory or a symlink to one.
// A dangling link is not a directory; reading it reports the error.
func isDirEntry(e fs.DirEntry, path string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// transcode converts content to UTF-8 when a source encoding is set.
func (s *Session) transcode(src Source, content []byte) ([]byte, error) {
	if s.cfg.sourceEncoding == nil {
		return content, nil
	}
	out, err := s.cfg.sourceEncoding.NewDecoder().Bytes(content)
	if err != nil {
		return nil, &SourceError{Op: OpRead, Path: src.Path, Err: fmt.Errorf("transcoding: %w", err)}
	}
	return out, nil
}

func openGzip(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err == io.EOF {
		// A zero-length archive decodes to nothing.
		return io.NopCloser(strings.NewReader("")), nil
	}
	if err != nil {
		return nil, err
	}
	return zr, nil
}
