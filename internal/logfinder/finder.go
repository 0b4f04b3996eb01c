// Package logfinder provides Minecraft log directory detection.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// EnvLogDir is the environment variable name for specifying log directory.
const EnvLogDir = "MINELOG_LOGDIR"

// LogsSubdir is the directory inside the game directory that holds logs.
const LogsSubdir = "logs"

// ErrLogDirNotFound is returned when no usable log directory can be found.
var ErrLogDirNotFound = errors.New("log directory not found")

// OSFamily identifies the host operating system family for default paths.
type OSFamily string

// Known OS families. Anything else falls back to the Linux-style layout.
const (
	FamilyDarwin  OSFamily = "darwin"
	FamilyWindows OSFamily = "windows"
	FamilyOther   OSFamily = "other"
)

// HostFamily returns the OS family of the running process.
func HostFamily() OSFamily {
	return FamilyOf(runtime.GOOS)
}

// FamilyOf maps a GOOS value to an OSFamily.
func FamilyOf(goos string) OSFamily {
	switch goos {
	case "darwin":
		return FamilyDarwin
	case "windows":
		return FamilyWindows
	default:
		return FamilyOther
	}
}

// DefaultGameDir returns the game directory for the given OS family,
// relative to home. It never touches the filesystem.
func DefaultGameDir(family OSFamily, home string) string {
	switch family {
	case FamilyDarwin:
		return filepath.Join(home, "Library", "Application Support", "minecraft")
	case FamilyWindows:
		return filepath.Join(home, "AppData", "Roaming", ".minecraft")
	default:
		return filepath.Join(home, ".minecraft")
	}
}

// DefaultLogDir returns the default log directory for the given OS family.
func DefaultLogDir(family OSFamily, home string) string {
	return filepath.Join(DefaultGameDir(family, home), LogsSubdir)
}

// HostLogDir returns the default log directory of the running host.
// An error is returned only when the home directory cannot be determined.
func HostLogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return DefaultLogDir(HostFamily(), home), nil
}

// FindLogDir returns the Minecraft log directory.
//
// Priority:
//  1. explicit (if non-empty)
//  2. MINELOG_LOGDIR environment variable
//  3. HostLogDir()
//
// Returns ErrLogDirNotFound if the selected candidate is not a directory.
// Unlike the library, this reports the failure in terms a CLI user can act on.
func FindLogDir(explicit string) (string, error) {
	if explicit != "" {
		if isDir(explicit) {
			return explicit, nil
		}
		return "", fmt.Errorf("%w: %s is not a directory", ErrLogDirNotFound, explicit)
	}

	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if isDir(envDir) {
			return envDir, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	dir, err := HostLogDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLogDirNotFound, err)
	}
	if !isDir(dir) {
		return "", fmt.Errorf("%w: default path %s is wrong, specify one with --directory", ErrLogDirNotFound, dir)
	}
	return dir, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
