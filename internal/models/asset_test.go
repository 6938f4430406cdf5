package models

import "testing"

func TestAudioAsset_Name(t *testing.T) {
	asset := AudioAsset{Path: "/audio/session/intro.wav"}

	if got := asset.Name(); got != "intro.wav" {
		t.Errorf("Name() = %q, want %q", got, "intro.wav")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/audio/intro.wav", "wav"},
		{"/audio/LOUD.MP3", "mp3"},
		{"clip.m4a", "m4a"},
		{"noext", ""},
		{"trailing.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatForPath(tt.path); got != tt.expected {
				t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
