package internal

import (
	"fmt"
	"sort"
)

// FlushOrder controls the order of accumulated records when a day run is flushed.
type FlushOrder string

const (
	// OrderSorted emits accumulated records in ascending key order.
	OrderSorted FlushOrder = "sorted"
	// OrderFirstSeen emits accumulated records in the order their key first appeared in the run.
	OrderFirstSeen FlushOrder = "first-seen"
)

// ParseFlushOrder validates a flush order name. Empty means sorted.
func ParseFlushOrder(s string) (FlushOrder, error) {
	switch FlushOrder(s) {
	case "", OrderSorted:
		return OrderSorted, nil
	case OrderFirstSeen:
		return OrderFirstSeen, nil
	}
	return "", fmt.Errorf("unknown flush order %q (available: %s, %s)", s, OrderSorted, OrderFirstSeen)
}

// Stats summarizes one compaction
type Stats struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Runs   int `json:"runs"`
	Merged int `json:"merged"` // records folded into an earlier record with the same key
	Daily  int `json:"daily"`
}

// Compactor merges same-day records sharing an account and booking text.
type Compactor struct {
	DailyAccount string
	Order        FlushOrder
}

// NewCompactor returns a compactor with the default sentinel account and sorted flush order.
func NewCompactor() *Compactor {
	return &Compactor{DailyAccount: DefaultDailyAccount, Order: OrderSorted}
}

// Compress compacts records using the default compactor.
func Compress(records []Record) []Record {
	out, _ := NewCompactor().Compact(records)
	return out
}

// Compact scans records once, splitting them into runs of equal adjacent dates.
// A date that reappears after a different date starts a new run. Each run is
// flushed as its accumulated records followed by its daily records in input order.
// The input slice is not modified.
func (c *Compactor) Compact(records []Record) ([]Record, Stats) {
	stats := Stats{Input: len(records)}
	output := make([]Record, 0, len(records))

	run := newDayRun()
	for i, rec := range records {
		if i == 0 || rec.Date != records[i-1].Date {
			if i > 0 {
				output = c.flush(output, run)
				run = newDayRun()
			}
			stats.Runs++
		}

		if rec.IsDaily(c.DailyAccount) {
			run.daily = append(run.daily, rec)
			stats.Daily++
			continue
		}

		key := rec.Key()
		if acc, ok := run.accumulated[key]; ok {
			acc.Value = acc.Value.Add(rec.Value)
			stats.Merged++
			continue
		}
		stored := rec
		run.accumulated[key] = &stored
		run.keys = append(run.keys, key)
	}
	output = c.flush(output, run)

	stats.Output = len(output)
	return output, stats
}

// dayRun holds the accumulators for one contiguous run of equal dates.
type dayRun struct {
	accumulated map[string]*Record
	keys        []string // first-seen order
	daily       []Record
}

func newDayRun() *dayRun {
	return &dayRun{accumulated: make(map[string]*Record)}
}

func (c *Compactor) flush(output []Record, run *dayRun) []Record {
	keys := run.keys
	if c.Order != OrderFirstSeen {
		keys = append([]string(nil), run.keys...)
		sort.Strings(keys)
	}
	for _, key := range keys {
		output = append(output, *run.accumulated[key])
	}
	return append(output, run.daily...)
}
