// Package discovery finds audio files for the pipeline to process.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kartoza/loudsync/internal/ffmpeg"
)

// DefaultExtensions are the audio file types picked up when no explicit
// extension list is given.
var DefaultExtensions = []string{".wav", ".mp3", ".m4a"}

// FindAudioFiles walks root recursively and returns all files whose
// extension matches one of extensions, case-insensitively, sorted by path.
// A nil or empty extension list means DefaultExtensions.
func FindAudioFiles(root string, extensions []string) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, &ffmpeg.InputNotFoundError{Path: root}
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		wanted[ext] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if wanted[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ResolveInputs expands a mixed list of files and directories into a flat,
// sorted file list. Directories are searched recursively; files are taken
// as-is after an existence check.
func ResolveInputs(inputs []string, extensions []string) ([]string, error) {
	var files []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if os.IsNotExist(err) {
			return nil, &ffmpeg.InputNotFoundError{Path: input}
		}
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := FindAudioFiles(input, extensions)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		files = append(files, input)
	}
	return files, nil
}
