// Package monitor provides scan metrics and alert rules for log processing.
package monitor

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// ScanMetrics collects parsing metrics in a lock-free manner. A nil
// *ScanMetrics is valid and records nothing.
type ScanMetrics struct {
	lines        atomic.Uint64
	entries      atomic.Uint64
	matched      atomic.Uint64
	skipped      atomic.Uint64
	peakBuffered atomic.Int64
	startTime    time.Time
}

// NewScanMetrics creates a new metrics collector.
func NewScanMetrics() *ScanMetrics {
	return &ScanMetrics{
		startTime: time.Now(),
	}
}

// RecordLine increments the scanned line counter.
func (m *ScanMetrics) RecordLine() {
	if m == nil {
		return
	}
	m.lines.Add(1)
}

// RecordEntry increments the emitted entry counter.
func (m *ScanMetrics) RecordEntry() {
	if m == nil {
		return
	}
	m.entries.Add(1)
}

// RecordMatch increments the counter of entries that passed filtering.
func (m *ScanMetrics) RecordMatch() {
	if m == nil {
		return
	}
	m.matched.Add(1)
}

// RecordSkipped adds n matching entries that were evicted from a bounded
// window, e.g. by a tail.
func (m *ScanMetrics) RecordSkipped(n uint64) {
	if m == nil {
		return
	}
	m.skipped.Add(n)
}

// ObserveBuffered records how many entries a stream holds at once and keeps
// the peak.
func (m *ScanMetrics) ObserveBuffered(n int) {
	if m == nil {
		return
	}
	for {
		peak := m.peakBuffered.Load()
		if int64(n) <= peak || m.peakBuffered.CompareAndSwap(peak, int64(n)) {
			return
		}
	}
}

// Lines returns the number of scanned lines.
func (m *ScanMetrics) Lines() uint64 {
	if m == nil {
		return 0
	}
	return m.lines.Load()
}

// Entries returns the number of emitted entries.
func (m *ScanMetrics) Entries() uint64 {
	if m == nil {
		return 0
	}
	return m.entries.Load()
}

// Matched returns the number of entries that passed filtering.
func (m *ScanMetrics) Matched() uint64 {
	if m == nil {
		return 0
	}
	return m.matched.Load()
}

// Skipped returns the number of matching entries evicted from a window.
func (m *ScanMetrics) Skipped() uint64 {
	if m == nil {
		return 0
	}
	return m.skipped.Load()
}

// PeakBuffered returns the largest number of entries held at once.
func (m *ScanMetrics) PeakBuffered() int {
	if m == nil {
		return 0
	}
	return int(m.peakBuffered.Load())
}

// Elapsed returns the time since collection started.
func (m *ScanMetrics) Elapsed() time.Duration {
	if m == nil {
		return 0
	}
	return time.Since(m.startTime)
}

// Summary returns a formatted summary string.
func (m *ScanMetrics) Summary() string {
	entries := m.Entries()
	matched := m.Matched()

	matchRate := float64(0)
	if entries > 0 {
		matchRate = float64(matched) / float64(entries) * 100
	}

	var sb strings.Builder
	sb.WriteString("── Summary ──\n")
	fmt.Fprintf(&sb, "  Lines scanned:   %d\n", m.Lines())
	fmt.Fprintf(&sb, "  Entries parsed:  %d\n", entries)
	fmt.Fprintf(&sb, "  Entries matched: %d (%.1f%%)\n", matched, matchRate)
	if skipped := m.Skipped(); skipped > 0 {
		fmt.Fprintf(&sb, "  Outside tail:    %d\n", skipped)
	}
	fmt.Fprintf(&sb, "  Duration:        %s\n", m.Elapsed().Round(time.Millisecond))
	sb.WriteString("─────────────")
	return sb.String()
}
