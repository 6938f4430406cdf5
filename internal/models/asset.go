package models

import (
	"path/filepath"
	"strings"
)

// AudioAsset is a single audio clip with its probed container duration.
// Duration comes from ffprobe at run time and is never cached across runs.
type AudioAsset struct {
	// Path is the absolute or working-directory-relative file path
	Path string
	// Duration is the container duration in seconds
	Duration float64
	// Format is the container format inferred from the extension, e.g. "wav"
	Format string
}

// Name returns the base name of the asset, used in logs and reports.
func (a AudioAsset) Name() string {
	return filepath.Base(a.Path)
}

// FormatForPath infers the container format from a file extension,
// lowercased and without the leading dot.
func FormatForPath(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
