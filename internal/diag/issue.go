package diag

import "fmt"

// Issue is a single diagnostic. Range is nil for issues that have no source
// location, such as a parse failure on an empty file.
type Issue struct {
	Msg     string
	Range   *Range
	Warning bool
}

// Errorf builds an error issue at r.
func Errorf(r *Range, format string, args ...interface{}) *Issue {
	return &Issue{Msg: fmt.Sprintf(format, args...), Range: r}
}

// Warnf builds a warning issue at r.
func Warnf(r *Range, format string, args ...interface{}) *Issue {
	return &Issue{Msg: fmt.Sprintf(format, args...), Range: r, Warning: true}
}

func (is *Issue) Severity() string {
	if is.Warning {
		return "warning"
	}
	return "error"
}

func (is *Issue) Error() string {
	if is.Range == nil {
		return fmt.Sprintf("%s: %s", is.Severity(), is.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", is.Range.Start, is.Severity(), is.Msg)
}

// before orders issues by file, line and column. Issues without a range come
// first.
func (is *Issue) before(o *Issue) bool {
	switch {
	case is.Range == nil:
		return o.Range != nil
	case o.Range == nil:
		return false
	}
	a, b := is.Range.Start, o.Range.Start
	if a.File != b.File {
		return a.File < b.File
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Col < b.Col
}
