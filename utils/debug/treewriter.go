// Package debug has helpers producing human readable dumps of internal
// structures for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	w     *strings.Builder
	lines int
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

// Lines returns number of lines written so far.
func (tw *TreeWriter) Lines() int {
	return tw.lines
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.w.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(tw.w, format, args...)
	tw.newline()
}

// TextBlock writes label followed by quoted value so control characters and
// trailing spaces are visible.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.w.WriteString(strings.Repeat(indent, depth))
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.newline()
}

func (tw *TreeWriter) newline() {
	tw.w.WriteByte('\n')
	tw.lines++
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
