package ffmpeg

import "strings"

// ExtractJSONBlock scans mixed diagnostic text for the embedded JSON block
// the loudnorm filter prints among its prose. Capture starts at the first
// line containing an opening brace and ends with the first captured line
// containing a closing brace. Returns false when no complete block exists.
func ExtractJSONBlock(text string) (string, bool) {
	var block []string
	capturing := false

	for _, line := range strings.Split(text, "\n") {
		if !capturing && strings.Contains(line, "{") {
			capturing = true
		}
		if capturing {
			block = append(block, line)
			if strings.Contains(line, "}") {
				return strings.Join(block, "\n"), true
			}
		}
	}

	return "", false
}
