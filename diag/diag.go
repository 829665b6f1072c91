// seehuhn.de/go/fontmerge - a tool for building composite font families
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package diag accumulates mapping diagnostics for one build run.
// Diagnostics never mutate font data; fatal conditions are ordinary Go
// errors instead.
package diag

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

// Kind labels a diagnostic event.
type Kind string

// The diagnostic kinds emitted by the pipeline.
const (
	Missing      Kind = "missing"       // no source covers the code point
	Shadowed     Kind = "shadowed"      // a higher-priority source already claimed the slot
	EmptySkipped Kind = "empty-skipped" // resolved glyph has no contours
	BakeSkipped  Kind = "bake-skipped"  // substitution target missing or empty
)

// Event is one recorded diagnostic.
type Event struct {
	Kind   Kind
	Rune   rune
	Detail string
}

func (e Event) String() string {
	s := "[" + string(e.Kind) + "] " + FormatRune(e.Rune)
	if e.Detail != "" {
		s += " " + e.Detail
	}
	return s
}

// FormatRune renders a code point for log output, with the character
// and its Unicode name where printable.
func FormatRune(r rune) string {
	if r < 0 {
		return ""
	}
	if unicode.IsGraphic(r) && !unicode.IsSpace(r) {
		name := runenames.Name(r)
		return fmt.Sprintf("U+%04X %q %s", r, string(r), name)
	}
	return fmt.Sprintf("U+%04X", r)
}

// A Log collects diagnostic events and per-kind counters.  Counters are
// always kept; individual events are only retained in verbose mode, up
// to MaxEntries (zero or negative means unlimited).
type Log struct {
	Verbose    bool
	MaxEntries int

	counts map[Kind]int
	copied map[string]int
	events []Event
}

// New returns an empty log.
func New(verbose bool, maxEntries int) *Log {
	return &Log{
		Verbose:    verbose,
		MaxEntries: maxEntries,
		counts:     make(map[Kind]int),
		copied:     make(map[string]int),
	}
}

// Add records a diagnostic for a code point.
func (l *Log) Add(kind Kind, r rune, detail string) {
	if l == nil {
		return
	}
	l.counts[kind]++
	if !l.Verbose {
		return
	}
	if l.MaxEntries > 0 && len(l.events) >= l.MaxEntries {
		return
	}
	l.events = append(l.events, Event{Kind: kind, Rune: r, Detail: detail})
}

// Copied increments the copy counter for a source category.  Copy
// counters appear in the summary but do not make the log unclean.
func (l *Log) Copied(category string) {
	if l == nil {
		return
	}
	l.copied[category]++
}

// CopiedTotal returns the number of glyphs copied for a category.
func (l *Log) CopiedTotal(category string) int {
	if l == nil {
		return 0
	}
	return l.copied[category]
}

// Total returns the number of diagnostics counted for kind.
func (l *Log) Total(kind Kind) int {
	if l == nil {
		return 0
	}
	return l.counts[kind]
}

// Events returns the retained events in the order they were recorded.
func (l *Log) Events() []Event {
	if l == nil {
		return nil
	}
	return l.events
}

// IsClean reports whether no diagnostics at all were recorded.
func (l *Log) IsClean() bool {
	return l == nil || len(l.counts) == 0
}

// WriteTo writes the retained events followed by a sorted summary of
// all counters.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range l.events {
		n, err := fmt.Fprintln(w, e.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	n, err := fmt.Fprintln(w, "\n# summary")
	total += int64(n)
	if err != nil {
		return total, err
	}
	kinds := make([]string, 0, len(l.counts)+len(l.copied))
	lookup := make(map[string]int, len(l.counts)+len(l.copied))
	for k, c := range l.counts {
		kinds = append(kinds, string(k))
		lookup[string(k)] = c
	}
	for cat, c := range l.copied {
		kinds = append(kinds, "copied."+cat)
		lookup["copied."+cat] = c
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		n, err := fmt.Fprintln(w, k+"="+strconv.Itoa(lookup[k]))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
