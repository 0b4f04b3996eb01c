package safefile

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestOpenRegular_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latest.log")
	if err := os.WriteFile(path, []byte("[12:00:00] hello"), 0644); err != nil {
		t.Fatal(err)
	}

	f, info, err := OpenRegular(path)
	if err != nil {
		t.Fatalf("OpenRegular() error = %v, want nil", err)
	}
	defer f.Close()

	if !info.Mode().IsRegular() {
		t.Error("expected regular file")
	}
	if info.Size() != 16 {
		t.Errorf("Size() = %d, want 16", info.Size())
	}
}

func TestOpenRegular_FileNotExist(t *testing.T) {
	_, _, err := OpenRegular("/nonexistent/path/latest.log")
	if !os.IsNotExist(err) {
		t.Errorf("OpenRegular() error = %v, want os.IsNotExist", err)
	}
}

func TestOpenRegular_FollowsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test requires Unix")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "target.log")
	link := filepath.Join(dir, "latest.log")

	if err := os.WriteFile(target, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	f, info, err := OpenRegular(link)
	if err != nil {
		t.Fatalf("OpenRegular() error = %v, want nil", err)
	}
	defer f.Close()
	if info.Size() != 4 {
		t.Errorf("Size() = %d, want size of target (4)", info.Size())
	}
}

func TestOpenRegular_RejectsSymlinkToDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test requires Unix")
	}

	dir := t.TempDir()
	link := filepath.Join(dir, "latest.log")
	if err := os.Symlink(t.TempDir(), link); err != nil {
		t.Fatal(err)
	}

	_, _, err := OpenRegular(link)
	if !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("OpenRegular() error = %v, want ErrNotRegularFile", err)
	}
}

func TestOpenRegular_RejectsDirectory(t *testing.T) {
	_, _, err := OpenRegular(t.TempDir())
	if !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("OpenRegular() error = %v, want ErrNotRegularFile", err)
	}
}

func TestReadAll(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		hint    int64
		wantErr error
	}{
		{name: "unlimited", input: strings.Repeat("x", 5000), limit: 0},
		{name: "under_limit", input: "hello", limit: 10},
		{name: "exact_limit", input: "hello", limit: 5},
		{name: "over_limit", input: "hello!", limit: 5, wantErr: ErrTooLarge},
		{name: "empty", input: "", limit: 0},
		{name: "hint_too_small", input: strings.Repeat("y", 2048), hint: 1},
		{name: "hint_too_large", input: "abc", hint: 1 << 20, limit: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadAll(strings.NewReader(tt.input), tt.limit, tt.hint)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadAll() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != tt.input {
				t.Errorf("ReadAll() = %d bytes, want %d", len(got), len(tt.input))
			}
		})
	}
}

type upperCloser struct {
	r      io.Reader
	closed *bool
}

func (u upperCloser) Read(p []byte) (int, error) {
	n, err := u.r.Read(p)
	copy(p[:n], bytes.ToUpper(p[:n]))
	return n, err
}

func (u upperCloser) Close() error {
	*u.closed = true
	return nil
}

func TestReadFile_Wrap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2024-01-02-1.log.gz")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}

	closed := false
	got, err := ReadFile(path, 0, func(r io.Reader) (io.ReadCloser, error) {
		return upperCloser{r: r, closed: &closed}, nil
	})
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "ABC" {
		t.Errorf("ReadFile() = %q, want %q", got, "ABC")
	}
	if !closed {
		t.Error("ReadFile() did not close the wrapping reader")
	}
}

func TestReadFile_WrapError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.log.gz")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}

	wantErr := errors.New("bad header")
	_, err := ReadFile(path, 0, func(io.Reader) (io.ReadCloser, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("ReadFile() error = %v, want %v", err, wantErr)
	}
}
