// Package logtail incrementally reads the game client's log file and raises
// edge-triggered flags when known messages appear. The log is produced by a
// separate process, append-only, and encoded in a legacy single-byte Western
// codepage; decoding is tolerant and never fails on malformed bytes.
package logtail

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Tailer reads a growing text file from a remembered byte offset.
// It is not safe for concurrent use; each consumer owns its own Tailer.
type Tailer struct {
	path   string
	offset int64
}

// NewTailer creates a tailer positioned at the start of the file.
func NewTailer(path string) *Tailer {
	return &Tailer{path: path}
}

// Path returns the tailed file path.
func (t *Tailer) Path() string {
	return t.path
}

// Offset returns the current byte offset, for diagnostics.
func (t *Tailer) Offset() int64 {
	return t.offset
}

// ReadNewLines returns the complete lines appended since the last call and
// advances the offset past them. An unterminated trailing fragment is left
// in the file for the next call.
//
// A missing file returns no lines and does not advance. When the file has
// shrunk below the stored offset (rotation or truncation) the offset is
// reset to 0 and reset=true is returned with no lines; callers should clear
// any stale detection state before the next read.
func (t *Tailer) ReadNewLines() (lines []string, reset bool, err error) {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, false, err
	}

	if fi.Size() < t.offset {
		t.offset = 0
		return nil, true, nil
	}
	if fi.Size() == t.offset {
		return nil, false, nil
	}

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return nil, false, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, false, err
	}

	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		return nil, false, nil
	}
	t.offset += int64(end + 1)

	return splitLines(decodeWindows1252(data[:end+1])), false, nil
}

// SeekEnd jumps the cursor to the current end of file so historical content
// is never replayed. A missing file rewinds to the start.
func (t *Tailer) SeekEnd() error {
	fi, err := os.Stat(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			t.offset = 0
			return nil
		}
		return err
	}
	t.offset = fi.Size()
	return nil
}

// decodeWindows1252 decodes byte-per-byte; bytes with no mapping become the
// Unicode replacement rune instead of an error.
func decodeWindows1252(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(charmap.Windows1252.DecodeByte(b))
	}
	return sb.String()
}

func splitLines(s string) []string {
	raw := strings.Split(s, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
