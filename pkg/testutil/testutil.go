// Package testutil contains helpers for writing tests.
package testutil

import "strings"

// Dedent removes the longest common leading whitespace from all non-blank
// lines of text, and turns whitespace-only lines into empty ones. A single
// leading newline is dropped, so that raw string fixtures can start on the
// line after the opening backquote.
func Dedent(text string) string {
	text = strings.TrimPrefix(text, "\n")
	lines := strings.Split(text, "\n")
	margin, first := "", true
	for _, line := range lines {
		body := strings.TrimLeft(line, " \t")
		if body == "" {
			continue
		}
		indent := line[:len(line)-len(body)]
		if first {
			margin, first = indent, false
		} else {
			margin = commonPrefix(margin, indent)
		}
	}
	for i, line := range lines {
		if strings.TrimLeft(line, " \t") == "" {
			lines[i] = ""
		} else {
			lines[i] = line[len(margin):]
		}
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// Cleanuper wraps the Cleanup method, implemented by *testing.T and
// *testing.B.
type Cleanuper interface {
	Cleanup(func())
}

// Set sets *p to v and restores the old value when the test finishes.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}
