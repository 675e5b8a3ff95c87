package diag

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tinyrange/cfront/internal/metrics"
)

const (
	colorError = "\x1b[31m"
	colorWarn  = "\x1b[33m"
	colorReset = "\x1b[0m"
)

// Collector accumulates the issues of one compilation. It is not safe for
// concurrent use; every compilation owns its own collector.
type Collector struct {
	// Color wraps the severity tag in ANSI escapes when printing.
	Color bool

	issues []*Issue
}

// Add records err. Errors that are not an *Issue are recorded without a
// range. Adding nil is a no-op.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	var is *Issue
	if !errors.As(err, &is) {
		is = &Issue{Msg: err.Error()}
	}
	c.issues = append(c.issues, is)
	sort.SliceStable(c.issues, func(i, j int) bool { return c.issues[i].before(c.issues[j]) })
	metrics.Issues.WithLabelValues(is.Severity()).Inc()
}

// Issues returns the collected issues in sorted order.
func (c *Collector) Issues() []*Issue { return c.issues }

// OK reports whether no error (as opposed to warning) has been collected.
func (c *Collector) OK() bool {
	for _, is := range c.issues {
		if !is.Warning {
			return false
		}
	}
	return true
}

// Warnings counts the collected warnings.
func (c *Collector) Warnings() int {
	n := 0
	for _, is := range c.issues {
		if is.Warning {
			n++
		}
	}
	return n
}

// Clear drops every collected issue.
func (c *Collector) Clear() { c.issues = nil }

// Show prints every issue in order, followed by the offending source line and
// a caret under the reported range.
func (c *Collector) Show(w io.Writer) error {
	for _, is := range c.issues {
		if err := c.show(w, is); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) show(w io.Writer, is *Issue) error {
	tag := is.Severity() + ":"
	if c.Color {
		col := colorError
		if is.Warning {
			col = colorWarn
		}
		tag = col + tag + colorReset
	}
	if is.Range == nil {
		_, err := fmt.Fprintf(w, "%s %s\n", tag, is.Msg)
		return err
	}
	start := is.Range.Start
	if _, err := fmt.Fprintf(w, "%s: %s %s\n", start, tag, is.Msg); err != nil {
		return err
	}
	if start.Text == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "  %s\n  %s\n", start.Text, caret(*is.Range))
	return err
}

// caret underlines r within its start line. Tabs in the prefix are kept so
// the marker lines up with the printed source.
func caret(r Range) string {
	var b strings.Builder
	n := 0
	for _, ch := range r.Start.Text {
		if n >= r.Start.Col-1 {
			break
		}
		n++
		if ch == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	if r.End.Line == r.Start.Line && r.End.Col > r.Start.Col {
		b.WriteString(strings.Repeat("~", r.End.Col-r.Start.Col))
	}
	return b.String()
}
