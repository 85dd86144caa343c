package util

import (
	"os"
	"path/filepath"
	"strings"
)

// FullPath wraps filepath.Abs and panics on error
func FullPath(dir string) string {
	path, err := filepath.Abs(dir)
	if err != nil {
		panic(err)
	}
	return path
}

// Exists simply checks if a path exists and panics on error
func Exists(path string) bool {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		panic(err)
	}
	return true
}

// IsFile checks if a path exists and points to a regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Posix replaces backslashes with forward slashes so paths written to
// manifests and logs are identical across platforms.
func Posix(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// StripExt returns the base name of a path without its extension.
func StripExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TrimExt returns the full path without its extension, used for matching
// geometry files against their modifier files.
func TrimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
