package posekit

import (
	"bytes"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-drag", "after-drag"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	s := NewStage()
	s.Screenshot("a")
	s.Screenshot("b")
	if s.PendingScreenshots() != 2 {
		t.Fatalf("queue len = %d, want 2", s.PendingScreenshots())
	}
	if s.screenshotQueue[0] != "a" || s.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", s.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	s := NewStage()
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, "screenshots")
	}
}

func TestUnpremultiply(t *testing.T) {
	src := []byte{
		255, 255, 255, 255, // opaque white
		64, 32, 0, 128, // half-alpha orange
		0, 0, 0, 0, // transparent
	}
	dst := make([]byte, len(src))
	unpremultiply(dst, src)

	want := []byte{
		255, 255, 255, 255,
		127, 63, 0, 128,
		0, 0, 0, 0,
	}
	if !bytes.Equal(dst, want) {
		t.Errorf("unpremultiply = %v, want %v", dst, want)
	}
}
