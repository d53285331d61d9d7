// Package reports computes the derived financial views: per-method totals,
// time-window sums, top-N breakdowns and per-participant statistics. Every
// function is a pure reduction over the slices it's handed; nothing here
// caches or mutates.
package reports

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GroupBy buckets items by a key function.
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, it := range items {
		k := key(it)
		out[k] = append(out[k], it)
	}
	return out
}

// SumBy adds up an amount over a slice.
func SumBy[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(amount(it))
	}
	return total
}

// GroupTotal is one row of a grouped report.
type GroupTotal struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// Totals groups, sums and counts in one pass, sorted by descending total
// (ties broken by key so output order is stable).
func Totals[T any](items []T, key func(T) string, amount func(T) decimal.Decimal) []GroupTotal {
	groups := GroupBy(items, key)
	out := make([]GroupTotal, 0, len(groups))
	for k, members := range groups {
		out = append(out, GroupTotal{
			Key:   k,
			Total: SumBy(members, amount),
			Count: len(members),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// TopN keeps the first n rows of an already-sorted Totals result.
func TopN(totals []GroupTotal, n int) []GroupTotal {
	if len(totals) <= n {
		return totals
	}
	return totals[:n]
}
