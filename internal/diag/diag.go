package diag

import (
	"fmt"
	"sort"
)

// Fix is an optional, machine-readable suggestion attached to a
// diagnostic, mirrored on the teacher's structured error reporting.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Diagnostic is a single compiler message. Its Message is an ordinary Go
// string, not allocated from the module's Arena; a Diagnostic is never
// mutated once appended (spec.md §3 Invariants).
type Diagnostic struct {
	Phase   Phase
	Code    string
	Span    Span
	SID     string
	Message string
	Fix     *Fix
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d  %s  %s%s", d.Span.Start.Line, d.Span.Start.Column, d.Span, d.Phase.Prefix(), d.Message)
}

// List is an append-only collection of diagnostics for one module.
// Diagnostics preserve append order (spec.md §5 Ordering guarantees).
type List struct {
	items []Diagnostic
}

// Add appends a diagnostic. It never rewrites or removes an existing entry.
// A diagnostic with no SID yet (the common case: callers build a bare
// Diagnostic{} literal or go through Addf) has one computed here from its
// phase, code and span, so every diagnostic that ever reaches a List is
// content-addressed regardless of which pass or helper constructed it.
func (l *List) Add(d Diagnostic) {
	if d.SID == "" {
		d.SID = string(NewSID(d.Span.Start.File, d.Span.Start.Offset, d.Span.End.Offset, string(d.Phase)+"/"+d.Code, nil))
	}
	l.items = append(l.items, d)
}

// Append copies every diagnostic from other onto l, preserving other's
// append order. Used to fold a sub-pass's diagnostic list (e.g. one
// semantic phase) into the caller's running list.
func (l *List) Append(other *List) {
	if other == nil {
		return
	}
	l.items = append(l.items, other.items...)
}

// Addf is a convenience wrapper building a Diagnostic from a phase/code/span/message.
func (l *List) Addf(phase Phase, code string, span Span, format string, args ...interface{}) {
	l.Add(Diagnostic{Phase: phase, Code: code, Span: span, Message: fmt.Sprintf(format, args...)})
}

// Items returns the diagnostics in append order. The returned slice must
// not be mutated by callers.
func (l *List) Items() []Diagnostic { return l.items }

// Len reports how many diagnostics have been appended.
func (l *List) Len() int { return len(l.items) }

// HasErrors reports whether any diagnostic has been recorded. EMP has no
// warning/error severity distinction: any diagnostic present means exit
// code 1 (spec.md §6.1).
func (l *List) HasErrors() bool { return len(l.items) > 0 }

// SortStableByPath returns the absolute file paths keying byPath in
// sorted order; the diagnostics themselves are not reordered, so a
// caller emitting each path's list in that order keeps every module's
// append order intact (spec.md §5: "across modules the driver serializes them prefixed by
// absolute path").
func SortStableByPath(byPath map[string][]Diagnostic) []string {
	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
