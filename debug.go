package posekit

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

var debugMode atomic.Bool

// SetDebugMode toggles debug checks. In debug mode contract violations such
// as a bone referencing a missing joint panic instead of being skipped, and
// per-frame draw timings are printed to stderr.
func SetDebugMode(on bool) {
	debugMode.Store(on)
}

// DebugMode reports whether debug checks are enabled.
func DebugMode() bool {
	return debugMode.Load()
}

// debugStats holds per-frame timing for one editor draw.
type debugStats struct {
	widget   string
	drawTime time.Duration
	bones    int
	skipped  int
	joints   int
	strokes  int
	livePts  int
}

// debugLog prints draw stats to stderr.
func debugLog(stats debugStats) {
	if !DebugMode() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[posekit] %s draw: %v | bones: %d (skipped %d) | joints: %d | strokes: %d | live points: %d\n",
		stats.widget, stats.drawTime, stats.bones, stats.skipped, stats.joints, stats.strokes, stats.livePts)
}

// debugCheckDisposed panics when a disposed widget is used.
func debugCheckDisposed(disposed bool, widget, op string) {
	if disposed && DebugMode() {
		panic(fmt.Sprintf("posekit debug: %s on disposed %s", op, widget))
	}
}

// debugCheckSegment panics on an unresolvable bone in debug mode. In
// release mode it only reports whether the bone must be skipped.
func debugCheckSegment(err error) bool {
	if err == nil {
		return false
	}
	if DebugMode() {
		panic(fmt.Sprintf("posekit debug: %v", err))
	}
	return true
}
