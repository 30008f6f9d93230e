// Package strdefs extracts localizable string table from the enumeration
// declared in StringDefs.h.
package strdefs

import "iter"

// Entry is a single string of the table.
type Entry struct {
	// Name is lower camel case identifier derived from enumerator.
	Name string
	// Text is default (English) string exactly as it appears in the header
	// comment, C escape sequences are kept.
	Text string
}

// Table is ordered mapping from identifier to text. Order is the order of
// first appearance in the header, setting existing identifier replaces its
// text in place.
type Table struct {
	entries []Entry
	index   map[string]int
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Set adds entry or replaces text of existing one. It reports whether
// identifier was already present.
func (t *Table) Set(name, text string) bool {
	if i, ok := t.index[name]; ok {
		t.entries[i].Text = text
		return true
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Text: text})
	return false
}

func (t *Table) Get(name string) (string, bool) {
	if i, ok := t.index[name]; ok {
		return t.entries[i].Text, true
	}
	return "", false
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns copy of all entries in table order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// All iterates over identifiers and texts in table order.
func (t *Table) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, e := range t.entries {
			if !yield(e.Name, e.Text) {
				return
			}
		}
	}
}

// Names returns identifiers in table order. Position i matches position i of
// Strings.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.Name)
	}
	return out
}

// Strings returns texts in table order.
func (t *Table) Strings() []string {
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.Text)
	}
	return out
}
