package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RateProvider returns the GST rate fraction in force on a given date, so
// historical invoices stay reproducible across rate changes.
type RateProvider interface {
	RateFor(date time.Time) decimal.Decimal
}

// RateEntry is one effective-dated rate.
type RateEntry struct {
	EffectiveFrom time.Time
	Rate          decimal.Decimal // fraction, e.g. 0.18
}

// StaticRateTable is an in-memory RateProvider over a fixed schedule.
type StaticRateTable struct {
	entries []RateEntry // sorted by EffectiveFrom descending
}

func NewStaticRateTable(entries ...RateEntry) *StaticRateTable {
	sorted := make([]RateEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EffectiveFrom.After(sorted[j].EffectiveFrom)
	})
	return &StaticRateTable{entries: sorted}
}

// RateFor returns the latest rate effective on or before date, or zero when
// no entry applies yet.
func (t *StaticRateTable) RateFor(date time.Time) decimal.Decimal {
	for _, e := range t.entries {
		if !e.EffectiveFrom.After(date) {
			return e.Rate
		}
	}
	return decimal.Zero
}

// DefaultRateTable carries the standard 18% services rate, effective from the
// GST rollout date.
func DefaultRateTable() *StaticRateTable {
	return NewStaticRateTable(RateEntry{
		EffectiveFrom: time.Date(2017, time.July, 1, 0, 0, 0, 0, time.UTC),
		Rate:          decimal.NewFromFloat(0.18),
	})
}
