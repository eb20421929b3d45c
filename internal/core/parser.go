package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/lvr/internal/logging"
)

// Parser turns one LVR CSV file into Records.
type Parser struct {
	// Index resolves city names and town codes for main records.
	Index CityTownIndex

	// SkipLeadingRow drops the first row after the header. The open-data
	// exports repeat the header in English on that row.
	SkipLeadingRow bool
}

// NewParser returns a parser with the default leading-row handling.
func NewParser(index CityTownIndex) *Parser {
	return &Parser{Index: index, SkipLeadingRow: true}
}

// ParseFile opens path and parses it. The caller decides whether a missing
// file means "no records"; ParseFile reports it as an open error.
func (p *Parser) ParseFile(ctx context.Context, path string, kind Kind, cityCode string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	counter := NewCountingReader(f)
	records, err := p.Parse(counter, path, kind, cityCode)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("file parsed",
		"file", path,
		"kind", kind,
		"records", len(records),
		"bytes", counter.BytesRead,
	)
	return records, nil
}

// Parse reads CSV data from r. name identifies the source in errors.
func (p *Parser) Parse(r io.Reader, name string, kind Kind, cityCode string) ([]Record, error) {
	cityCode = strings.ToUpper(cityCode)

	reader := csv.NewReader(NewDecodingReader(r))
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, readError(name, err)
	}
	cols := MakeColumnMap(header)

	var cityName string
	records := []Record{}
	skip := p.SkipLeadingRow
	checked := false

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readError(name, err)
		}
		if skip {
			skip = false
			continue
		}

		line, _ := reader.FieldPos(0)

		if !checked {
			if missing := cols.missing(kind); len(missing) > 0 {
				return nil, &ParseError{
					Path:  name,
					Line:  line,
					Cause: CauseStructure,
					Err:   fmt.Errorf("missing required column(s) %v", missing),
				}
			}
			if kind == KindMain {
				n, ok := p.Index.NameOf(cityCode)
				if !ok {
					return nil, &ParseError{
						Path:  name,
						Cause: CauseLookup,
						Err:   fmt.Errorf("%w: %q", ErrUnknownCity, cityCode),
					}
				}
				cityName = n
			}
			checked = true
		}

		var rec Record
		for i, f := range cols {
			// A main row's own age is never used; the joiner sets it.
			if f == "" || (kind == KindMain && f == FieldAge) {
				continue
			}
			if err := rec.set(f, row[i]); err != nil {
				return nil, &ParseError{Path: name, Line: line, Cause: CauseCoerce, Err: err}
			}
		}

		if kind == KindMain {
			rec.CityCode = cityCode
			rec.CityName = cityName
			if code, ok := p.Index.LookupTownCode(cityCode, rec.TownName); ok {
				rec.TownCode = &code
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// readError classifies an error returned by the csv reader.
func readError(name string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Path: name, Line: csvErr.Line, Cause: CauseStructure, Err: csvErr.Err}
	}
	return &ParseError{Path: name, Cause: CauseDecode, Err: err}
}
