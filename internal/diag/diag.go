// Package diag collects the per-run diagnostic log surfaced to the caller
// after every extraction run. Entries are ordered and never dropped.
package diag

import (
	"fmt"
	"strings"
)

// Severity ranks a diagnostic entry.
type Severity string

const (
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Cause classifies why an external step failed. Empty for entries that do
// not describe an external failure.
type Cause string

const (
	CauseMissingTool Cause = "missing-tool"
	CauseExternal    Cause = "external"
)

// Entry is one event observed during an extraction run.
type Entry struct {
	Severity Severity
	File     string // source file display name; empty for run-level entries
	Page     int    // 1-based page or sheet index; 0 when the entry covers the whole file
	Message  string
	Cause    Cause
}

func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(string(e.Severity))
	if e.File != "" {
		b.WriteString(": ")
		b.WriteString(e.File)
		if e.Page > 0 {
			fmt.Fprintf(&b, " page %d", e.Page)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != "" {
		fmt.Fprintf(&b, " (%s)", e.Cause)
	}
	return b.String()
}

// Infof builds an info entry for file.
func Infof(file, format string, args ...any) Entry {
	return Entry{Severity: Info, File: file, Message: fmt.Sprintf(format, args...)}
}

// Warnf builds a warning entry for file.
func Warnf(file, format string, args ...any) Entry {
	return Entry{Severity: Warning, File: file, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds an error entry for file.
func Errorf(file, format string, args ...any) Entry {
	return Entry{Severity: Error, File: file, Message: fmt.Sprintf(format, args...)}
}

// Log is the ordered diagnostic sequence for a single run.
type Log struct {
	entries []Entry
}

// Add appends entries in the order given.
func (l *Log) Add(entries ...Entry) {
	l.entries = append(l.entries, entries...)
}

// Entries returns the recorded sequence. The slice is owned by the log;
// callers must not mutate it.
func (l *Log) Entries() []Entry { return l.entries }

// Len reports how many entries were recorded.
func (l *Log) Len() int { return len(l.entries) }

// Count returns the number of entries at the given severity.
func (l *Log) Count(s Severity) int {
	n := 0
	for _, e := range l.entries {
		if e.Severity == s {
			n++
		}
	}
	return n
}
