// Package aggregate computes counts, sums, rankings and time series over a
// dataset. Every function is pure: the dataset is never mutated and the same
// inputs always produce the same output.
//
// Rankings order by value descending and break ties by key ascending. Ranks
// are dense. Empty inputs give empty, non-nil results.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/rrdash/internal/domain/dataset"
	"github.com/okian/rrdash/internal/domain/model"
	"github.com/okian/rrdash/internal/domain/ranking"
	"github.com/okian/rrdash/internal/domain/types"
)

// TotalUnique counts the distinct values found in any of cols.
func TotalUnique(ds *dataset.Dataset, cols ...model.Column) int {
	seen := make(map[string]struct{})
	for _, e := range ds.All() {
		for _, c := range cols {
			seen[e.Value(c)] = struct{}{}
		}
	}
	return len(seen)
}

// TopNBySum groups rows by group, sums value per group and returns the n
// groups with the largest sums.
func TopNBySum(ds *dataset.Dataset, group, value model.Column, n int) ([]types.Entry, error) {
	if !value.Numeric() {
		return nil, fmt.Errorf("top by sum of %s: %w", value, ErrNotNumeric)
	}
	sums := make(map[string]decimal.Decimal)
	for _, e := range ds.All() {
		v, _ := e.Number(value)
		k := e.Value(group)
		sums[k] = sums[k].Add(decimal.NewFromFloat(v))
	}
	b := ranking.New()
	for k, s := range sums {
		b.Set(k, s.InexactFloat64())
	}
	return b.TopN(n), nil
}

// TopNByCount counts occurrences of key among rows matching pred and returns
// the n most frequent values.
func TopNByCount(ds *dataset.Dataset, pred dataset.Predicate, key model.Column, n int) []types.Entry {
	b := ranking.New()
	for _, e := range ds.Filter(pred).All() {
		b.Add(e.Value(key), 1)
	}
	return b.TopN(n)
}

// UniqueCountPerGroup returns, for each distinct group value, the number of
// unique values of every count key and their sum. Rows are ordered by group
// key ascending.
func UniqueCountPerGroup(ds *dataset.Dataset, group model.Column, countKeys ...model.Column) []types.GroupCount {
	sets := make(map[string][]map[string]struct{})
	for _, e := range ds.All() {
		g := e.Value(group)
		s, ok := sets[g]
		if !ok {
			s = make([]map[string]struct{}, len(countKeys))
			for i := range s {
				s[i] = make(map[string]struct{})
			}
			sets[g] = s
		}
		for i, c := range countKeys {
			s[i][e.Value(c)] = struct{}{}
		}
	}

	out := make([]types.GroupCount, 0, len(sets))
	for g, s := range sets {
		row := types.GroupCount{Key: g, Counts: make(map[string]int, len(countKeys))}
		for i, c := range countKeys {
			row.Counts[c.String()] = len(s[i])
			row.Total += len(s[i])
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// TopGroupCounts ranks group rows by their Total.
func TopGroupCounts(rows []types.GroupCount, n int) []types.Entry {
	b := ranking.New()
	for _, r := range rows {
		b.Set(r.Key, float64(r.Total))
	}
	return b.TopN(n)
}

// TimeSeriesSum sums value per calendar day over rows matching pred. Points
// are in ascending date order with one point per day. Undated rows are skipped.
func TimeSeriesSum(ds *dataset.Dataset, pred dataset.Predicate, dateKey, value model.Column) ([]types.Point, error) {
	if !dateKey.Temporal() {
		return nil, fmt.Errorf("time series on %s: %w", dateKey, ErrNotDate)
	}
	if !value.Numeric() {
		return nil, fmt.Errorf("time series of %s: %w", value, ErrNotNumeric)
	}

	sums := make(map[time.Time]decimal.Decimal)
	for _, e := range ds.Filter(pred).All() {
		if e.Date.IsZero() {
			continue
		}
		v, _ := e.Number(value)
		d := e.Day()
		sums[d] = sums[d].Add(decimal.NewFromFloat(v))
	}

	out := make([]types.Point, 0, len(sums))
	for d, s := range sums {
		out = append(out, types.Point{Date: d, Value: s.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// CountBy counts rows per distinct value of key, in first-seen order.
// Entries are not ranked.
func CountBy(ds *dataset.Dataset, key model.Column) []types.Entry {
	idx := make(map[string]int)
	out := make([]types.Entry, 0)
	for _, e := range ds.All() {
		k := e.Value(key)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, types.Entry{Key: k})
		}
		out[i].Value++
	}
	return out
}
