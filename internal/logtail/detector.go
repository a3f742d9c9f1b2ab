package logtail

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Detector scans new log lines for known substrings and latches a one-shot
// flag per pattern. Flags stay set until explicitly reset, so a match is
// never lost between polls.
type Detector struct {
	tailer *Tailer
	log    *slog.Logger

	mu       sync.Mutex
	patterns map[string]string
	detected map[string]bool
}

// DefaultPatterns is the message set the farming loop relies on.
func DefaultPatterns() map[string]string {
	return map[string]string{
		KeyStationFull:   MsgStationFull,
		KeyStationEmpty:  MsgStationEmpty,
		KeySeedPlanted:   MsgSeedPlanted,
		KeyHarvestDone:   MsgHarvestDone,
		KeyConnection:    MsgConnection,
		KeyDisconnection: MsgDisconnection,
	}
}

// NewDetector builds a detector over its own tailer for the given patterns.
func NewDetector(path string, patterns map[string]string, log *slog.Logger) *Detector {
	if log == nil {
		log = slog.Default()
	}
	detected := make(map[string]bool, len(patterns))
	for key := range patterns {
		detected[key] = false
	}
	return &Detector{
		tailer:   NewTailer(path),
		log:      log,
		patterns: patterns,
		detected: detected,
	}
}

// AddPattern registers an extra substring to watch for.
func (d *Detector) AddPattern(key, substring string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.patterns[key] = substring
	d.detected[key] = false
}

// Poll reads any new lines and latches matching flags. A detected file
// rotation clears all flags, since pending matches belonged to the old file.
// Transient read errors are returned for the caller to swallow and retry.
func (d *Detector) Poll() error {
	lines, reset, err := d.tailer.ReadNewLines()
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if reset {
		d.log.Info("log file rotated, clearing detection state")
		for key := range d.detected {
			d.detected[key] = false
		}
		return nil
	}

	for _, line := range lines {
		for key, pattern := range d.patterns {
			if !d.detected[key] && strings.Contains(line, pattern) {
				d.detected[key] = true
				d.log.Debug("pattern detected", "key", key)
			}
		}
	}
	return nil
}

// Detected reports whether a pattern has fired since the last reset.
func (d *Detector) Detected(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detected[key]
}

// Reset clears the given flags (all flags when none are named) and re-seeks
// the cursor to the current end of file, so stale historical matches are
// never replayed.
func (d *Detector) Reset(keys ...string) error {
	d.mu.Lock()
	if len(keys) == 0 {
		for key := range d.detected {
			d.detected[key] = false
		}
	} else {
		for _, key := range keys {
			d.detected[key] = false
		}
	}
	d.mu.Unlock()

	return d.tailer.SeekEnd()
}

// WaitFor polls until the pattern fires, the timeout elapses or ctx is
// cancelled. The outcome is a boolean, never an error: detection timeouts
// are an expected part of the fill protocol.
func (d *Detector) WaitFor(ctx context.Context, key string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		if err := d.Poll(); err != nil {
			d.log.Debug("log poll failed, retrying", "error", err)
		}
		if d.Detected(key) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}
