// Package safefile provides hardened file reads for log sources.
package safefile

import (
	"errors"
	"io"
	"os"
)

// ErrNotRegularFile is returned when a path, after following symlinks,
// names a FIFO, device, socket or directory instead of a regular file.
var ErrNotRegularFile = errors.New("not a regular file")

// ErrTooLarge is returned by ReadAll when the content exceeds the limit.
var ErrTooLarge = errors.New("content exceeds size limit")

// OpenRegular opens path after checking, both before and after the open,
// that it is a regular file. Symlinks are followed; the check applies to
// the target. A FIFO or device would otherwise block or stream forever
// during a full read.
//
// The caller must close the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	pre, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if !pre.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	// Re-check on the descriptor in case the path was swapped after Stat.
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}

	return f, info, nil
}

// ReadAll reads r to EOF. If limit is positive and r yields more than limit
// bytes, ErrTooLarge is returned. sizeHint preallocates the buffer when known.
func ReadAll(r io.Reader, limit, sizeHint int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
		if sizeHint > limit {
			sizeHint = limit
		}
	}

	buf := make([]byte, 0, max(sizeHint, 512))
	for {
		if len(buf) == cap(buf) {
			buf = append(buf, 0)[:len(buf)]
		}
		n, err := r.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if limit > 0 && int64(len(buf)) > limit {
		return nil, ErrTooLarge
	}
	return buf, nil
}

// ReadFile opens path with OpenRegular, passes it through wrap (which may
// be nil), and reads the result fully. The file is closed before returning,
// whatever the outcome.
func ReadFile(path string, limit int64, wrap func(io.Reader) (io.ReadCloser, error)) ([]byte, error) {
	f, info, err := OpenRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if wrap == nil {
		return ReadAll(f, limit, info.Size())
	}

	rc, err := wrap(f)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	// Compressed size is a floor for the decoded size.
	return ReadAll(rc, limit, info.Size())
}
