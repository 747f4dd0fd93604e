package analysis

import (
	"sort"
	"strconv"
	"strings"

	"github.com/checkernumber/avatar-checker/internal/domain"
)

// unparsableAgeRank sorts age values that carry no number after every
// numeric range.
const unparsableAgeRank = 999

// Summarize aggregates demographics across one result set. Every tracked
// dimension gets a frequency table even when the record set is empty, so
// the summary shape is stable.
func Summarize(records []domain.Record) domain.Summary {
	sum := domain.Summary{
		TotalRecords: len(records),
		Dimensions:   make(map[domain.Dimension]domain.Distribution, len(domain.SummaryDimensions())),
	}
	for _, dim := range domain.SummaryDimensions() {
		sum.Dimensions[dim] = domain.Distribution{Counts: map[string]int{}}
	}

	for _, rec := range records {
		if rec.HasWhatsApp() {
			sum.WhatsAppAccounts++
		}
		if rec.HasAvatar() {
			sum.AvailableAvatars++
		}

		for _, dim := range domain.SummaryDimensions() {
			value, ok := rec.Field(dim)
			if !ok {
				continue
			}
			dist := sum.Dimensions[dim]
			dist.KnownCount++
			dist.Counts[value]++
			sum.Dimensions[dim] = dist
		}
	}

	return sum
}

// AgeSortKey ranks an age value for display. Ranges such as "25-34" rank
// by their lower bound and bare numbers by themselves. Anything that
// parses as neither goes last.
func AgeSortKey(value string) float64 {
	if lo, _, found := strings.Cut(value, "-"); found {
		if n, err := strconv.ParseFloat(strings.TrimSpace(lo), 64); err == nil {
			return n
		}
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return n
	}
	return unparsableAgeRank
}

// AgeValues returns the known age values ordered youngest first.
func AgeValues(dist domain.Distribution) []string {
	values := make([]string, 0, len(dist.Counts))
	for v := range dist.Counts {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		a, b := AgeSortKey(values[i]), AgeSortKey(values[j])
		if a == b {
			return values[i] < values[j]
		}
		return a < b
	})
	return values
}

// RankedValues returns a dimension's values ordered by descending count.
// Ties break alphabetically; the order is deterministic.
func RankedValues(dist domain.Distribution) []string {
	values := make([]string, 0, len(dist.Counts))
	for v := range dist.Counts {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if dist.Counts[values[i]] != dist.Counts[values[j]] {
			return dist.Counts[values[i]] > dist.Counts[values[j]]
		}
		return values[i] < values[j]
	})
	return values
}
