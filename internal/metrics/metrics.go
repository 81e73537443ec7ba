// Package metrics computes the read-only aggregate figures behind the
// dashboard cards and analytics screens. Everything is a pure function
// over an in-memory collection.
package metrics

import "github.com/rohanvaze/brokerdesk/internal/domain"

// CountByStatus counts entities per status value. The counts always sum
// to the collection size.
func CountByStatus[T any](items []T, status func(T) string) map[string]int {
	out := make(map[string]int)
	for _, item := range items {
		out[status(item)]++
	}
	return out
}

// CountWhere counts the entities matching pred.
func CountWhere[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// SumMoney sums a formatted currency field across the collection.
// Malformed amounts count as zero rather than poisoning the sum.
func SumMoney[T any](items []T, amount func(T) string) domain.Money {
	var total domain.Money
	for _, item := range items {
		total += domain.ParseMoneyOrZero(amount(item))
	}
	return total
}

// PercentageOfTotal returns part/total as a percentage, defined as 0 when
// the total is 0.
func PercentageOfTotal(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// GrowthRate returns the relative change between the first and last
// entries of a time-ordered series: (last - first) / first. A series that
// starts at zero, or has fewer than two points, reports 0 rather than
// propagating a division by zero.
func GrowthRate(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	first, last := series[0], series[len(series)-1]
	if first == 0 {
		return 0
	}
	return (last - first) / first
}

// MaxBy returns the entity with the highest value. Ties are broken
// deterministically: the first occurrence wins. ok is false for an empty
// collection.
func MaxBy[T any](items []T, value func(T) float64) (best T, ok bool) {
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	bestVal := value(items[0])
	for _, item := range items[1:] {
		if v := value(item); v > bestVal {
			best, bestVal = item, v
		}
	}
	return best, true
}
