// Package types contains common types used across the application
package types

import "time"

// Entry is one ranked row of an aggregate: a key and its value.
type Entry struct {
	Rank  int     `json:"rank"`
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Point is one day of a time series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// GroupCount holds per-key unique counts for one group value.
type GroupCount struct {
	Key    string         `json:"key"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// Keys returns the entry keys in order.
func Keys(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key
	}
	return out
}

// Values returns the entry values in order.
func Values(entries []Entry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out
}
