package dataset

import (
	"time"

	"github.com/okian/rrdash/internal/domain/model"
)

// Predicate selects rows.
type Predicate func(model.Event) bool

// Everything matches every row.
func Everything(model.Event) bool { return true }

// Equals matches rows whose column value equals v exactly.
func Equals(col model.Column, v string) Predicate {
	return func(e model.Event) bool {
		return e.Value(col) == v
	}
}

// OnDay matches rows dated on the same calendar day as t.
func OnDay(t time.Time) Predicate {
	y, m, d := t.Date()
	return func(e model.Event) bool {
		ey, em, ed := e.Date.Date()
		return !e.Date.IsZero() && ey == y && em == m && ed == d
	}
}

// And matches rows that satisfy every predicate. Nil predicates are skipped.
func And(preds ...Predicate) Predicate {
	return func(e model.Event) bool {
		for _, p := range preds {
			if p != nil && !p(e) {
				return false
			}
		}
		return true
	}
}
