package audio

import (
	"path/filepath"
	"strings"
)

// codecArgs returns the encoder arguments implied by a container format for
// the normalize stage. Unknown formats get no explicit codec and ffmpeg
// picks the container default.
func codecArgs(format string) []string {
	switch strings.ToLower(format) {
	case "wav":
		return []string{"-c:a", "pcm_s16le"}
	case "mp3":
		return []string{"-c:a", "libmp3lame", "-q:a", "2"}
	case "m4a":
		return []string{"-c:a", "aac", "-b:a", "128k"}
	}
	return nil
}

// CodecForExtension maps an output file extension to its container-implied
// codec. Unknown extensions keep the caller-supplied codec verbatim.
func CodecForExtension(path, codec string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "pcm_s16le"
	case ".mp3":
		return "libmp3lame"
	case ".m4a", ".aac":
		return "aac"
	}
	return codec
}
