// Package flint implements the lexer, parser, symbol table, type checker and
// code emitter for the Flint language front end.
package flint

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Source loads a file once and exposes it by line for scanning and for
// diagnostic snippets. A Source is read-only once built and safe to share
// between a Lexer and the diagnostics writer.
type Source struct {
	path  string
	lines []string
}

// NewSource reads the file at path and splits it into lines, keeping line
// terminators so the lexer can recover exact column offsets.
func NewSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return NewSourceFromReader(path, f)
}

// NewSourceFromReader builds a Source from an arbitrary reader, labelled with
// path for diagnostics. Used directly by tests that don't want to touch disk.
func NewSourceFromReader(path string, r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines := splitKeepingTerminators(string(data))

	return &Source{path: path, lines: lines}, nil
}

// Path returns the file path this source was loaded from.
func (s *Source) Path() string {
	return s.path
}

// LineCount returns the number of lines in the source, including a trailing
// partial line if the file does not end in a newline.
func (s *Source) LineCount() int {
	return len(s.lines)
}

// RawLine returns line n (1-based) with its terminator intact. Returns ""
// for an out-of-range line.
func (s *Source) RawLine(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}

	return s.lines[n-1]
}

// Line returns line n (1-based) stripped of leading and trailing whitespace,
// for use in diagnostic snippets (§7).
func (s *Source) Line(n int) string {
	return strings.TrimSpace(s.RawLine(n))
}

// Text reconstructs the full source text, used by the lexer as its scan
// buffer.
func (s *Source) Text() string {
	return strings.Join(s.lines, "")
}

// String renders a short identifying label for diagnostics, e.g. in panics.
func (s *Source) String() string {
	return fmt.Sprintf("%s (%d lines)", s.path, len(s.lines))
}

// splitKeepingTerminators splits text into lines, keeping the trailing '\n'
// on every line but the (possibly empty) last one.
func splitKeepingTerminators(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}

	if start < len(text) {
		lines = append(lines, text[start:])
	}

	return lines
}
