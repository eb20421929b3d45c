package core

import (
	"fmt"
	"strings"
)

// OutputMode selects the shape of a scan result.
type OutputMode string

const (
	// ModeFlat appends every unit's records to one slice, in unit order.
	ModeFlat OutputMode = "flat"
	// ModeGrouped keys records by uppercase letter, appending across cities.
	ModeGrouped OutputMode = "grouped"
)

// ParseOutputMode converts a config value to an OutputMode.
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeFlat:
		return ModeFlat, nil
	case ModeGrouped:
		return ModeGrouped, nil
	default:
		return "", fmt.Errorf("unknown output mode %q (want flat or grouped)", s)
	}
}

// Aggregator accumulates joined records across units.
// Add must be called in unit order; the output order follows the calls.
type Aggregator struct {
	mode    OutputMode
	flat    []Record
	grouped map[string][]Record
	keys    []string
}

// NewAggregator creates an aggregator for mode.
func NewAggregator(mode OutputMode) *Aggregator {
	if mode != ModeGrouped {
		mode = ModeFlat
	}
	a := &Aggregator{mode: mode}
	if mode == ModeGrouped {
		a.grouped = make(map[string][]Record)
	}
	return a
}

// Add appends one unit's records. In grouped mode the key is created even
// when records is empty.
func (a *Aggregator) Add(letter string, records []Record) {
	if a.mode != ModeGrouped {
		a.flat = append(a.flat, records...)
		return
	}

	key := upperLetter(letter)
	existing, ok := a.grouped[key]
	if !ok {
		a.keys = append(a.keys, key)
		existing = []Record{}
	}
	a.grouped[key] = append(existing, records...)
}

// Flat returns the flat sequence. Nil in grouped mode.
func (a *Aggregator) Flat() []Record {
	return a.flat
}

// Grouped returns the letter-keyed mapping. Nil in flat mode.
func (a *Aggregator) Grouped() map[string][]Record {
	return a.grouped
}

// Keys returns the grouped keys in the order they were first added.
func (a *Aggregator) Keys() []string {
	return a.keys
}

// Result builds a scan result from the accumulated records.
func (a *Aggregator) Result() *Result {
	res := &Result{Mode: a.mode}
	if a.mode == ModeGrouped {
		res.Grouped = a.grouped
		res.Keys = a.keys
	} else {
		res.Flat = a.flat
		if res.Flat == nil {
			res.Flat = []Record{}
		}
	}
	return res
}
