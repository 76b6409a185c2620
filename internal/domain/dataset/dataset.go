// Package dataset holds the immutable, in-memory collection of events that
// every aggregate and view is computed from.
package dataset

import (
	"iter"
	"slices"

	"github.com/okian/rrdash/internal/domain/model"
)

// Dataset is an ordered, read-only sequence of events. It is safe for
// concurrent readers because nothing mutates it after New returns.
type Dataset struct {
	rows []model.Event
}

// New copies events into a new Dataset.
func New(events []model.Event) *Dataset {
	return &Dataset{rows: slices.Clone(events)}
}

// Len returns the number of rows. A nil Dataset is empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// At returns the i-th row.
func (d *Dataset) At(i int) model.Event {
	return d.rows[i]
}

// All yields rows in source order.
func (d *Dataset) All() iter.Seq2[int, model.Event] {
	return func(yield func(int, model.Event) bool) {
		if d == nil {
			return
		}
		for i, e := range d.rows {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Filter returns the rows matching pred, in source order.
func (d *Dataset) Filter(pred Predicate) *Dataset {
	if pred == nil {
		pred = Everything
	}
	out := make([]model.Event, 0)
	for _, e := range d.All() {
		if pred(e) {
			out = append(out, e)
		}
	}
	return &Dataset{rows: out}
}

// UniqueValues returns the distinct values of col in first-seen order.
func (d *Dataset) UniqueValues(col model.Column) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, e := range d.All() {
		v := e.Value(col)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
