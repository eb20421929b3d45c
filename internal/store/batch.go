// Package store writes scanned LVR records to a relational database.
//
// Records are flattened into fixed 12-column tuples and written in batches.
// Every batch is written on its own: a failed batch stops the run but batches
// already written stay written. There are no retries and no schema management;
// the destination table must exist.
package store

import (
	"github.com/JonMunkholm/lvr/internal/core"
)

// DefaultBatchSize is the number of tuples per batch when none is given.
const DefaultBatchSize = 1000

// Columns is the destination column order of every tuple.
var Columns = []string{
	"city_code",
	"city_name",
	"town_code",
	"town_name",
	"trade_sign",
	"address",
	"trade_date",
	"price_total",
	"price_nuit",
	"total_area",
	"code",
	"age",
}

// Row flattens a record into a tuple in Columns order. A nil TownCode stays
// nil so drivers write NULL.
func Row(r core.Record) []any {
	var town any
	if r.TownCode != nil {
		town = *r.TownCode
	}
	return []any{
		r.CityCode,
		r.CityName,
		town,
		r.TownName,
		r.TradeSign,
		r.Address,
		r.TradeDate,
		r.PriceTotal,
		r.PriceUnit,
		r.TotalArea,
		r.Code,
		r.Age,
	}
}

// Batches splits records into tuples of at most size rows, preserving order.
// A size below 1 means DefaultBatchSize. An empty input yields no batches.
func Batches(records []core.Record, size int) [][][]any {
	if size < 1 {
		size = DefaultBatchSize
	}

	out := make([][][]any, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		batch := make([][]any, 0, end-start)
		for _, r := range records[start:end] {
			batch = append(batch, Row(r))
		}
		out = append(out, batch)
	}
	return out
}
