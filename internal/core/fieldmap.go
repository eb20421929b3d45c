package core

// fieldmap.go maps the LVR column labels onto Record fields.
//
// Only the columns listed in columnFields are read. Everything else in the
// source files is dropped silently, so new columns added by later exports do
// not break ingestion.

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Field is the canonical name of a Record field.
type Field string

const (
	FieldTownName   Field = "town_name"
	FieldTradeSign  Field = "trade_sign"
	FieldAddress    Field = "address"
	FieldTradeDate  Field = "trade_date"
	FieldPriceTotal Field = "price_total"
	FieldPriceUnit  Field = "price_nuit"
	FieldTotalArea  Field = "total_area"
	FieldCode       Field = "code"
	FieldAge        Field = "age"
)

var columnFields = map[string]Field{
	"鄉鎮市區":        FieldTownName,
	"交易標的":        FieldTradeSign,
	"土地位置建物門牌":    FieldAddress,
	"交易年月日":       FieldTradeDate,
	"總價元":         FieldPriceTotal,
	"單價元平方公尺":     FieldPriceUnit,
	"建物移轉總面積平方公尺": FieldTotalArea,
	"編號":          FieldCode,
	"屋齡":          FieldAge,
}

// TradeSigns maps the 交易標的 labels to their integer codes.
var TradeSigns = map[string]int{
	"":             0,
	"房地(土地+建物)":    1,
	"建物":           2,
	"土地":           3,
	"車位":           4,
	"房地(土地+建物)+車位": 5,
}

// requiredFields lists the columns a file of each kind must provide once it
// has data rows: the town title for the reference lookup and the join key.
var requiredFields = map[Kind][]Field{
	KindMain:  {FieldTownName, FieldCode},
	KindBuild: {FieldCode, FieldAge},
}

// FieldFor returns the canonical field for a raw column label.
// The second result is false for columns that are not ingested.
func FieldFor(label string) (Field, bool) {
	f, ok := columnFields[strings.TrimSpace(label)]
	return f, ok
}

// TradeSignOf converts a 交易標的 label to its code. Unknown labels map to 0.
func TradeSignOf(label string) int {
	return TradeSigns[label]
}

// DigitsToInt parses s when it consists solely of decimal digits and returns 0
// otherwise ("", "--", "12.5", "-3" all yield 0). Full-width digits are folded
// to ASCII first; digits of other scripts still yield 0. An all-digit value
// that does not fit in an int is an error.
func DigitsToInt(s string) (int, error) {
	s = width.Narrow.String(s)
	if !isDigits(s) {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ColumnMap is the per-file header resolution: position i holds the field
// read from column i, or "" when the column is ignored.
type ColumnMap []Field

// MakeColumnMap resolves a header row. It is called once per file.
func MakeColumnMap(header []string) ColumnMap {
	cols := make(ColumnMap, len(header))
	for i, h := range header {
		if f, ok := FieldFor(h); ok {
			cols[i] = f
		}
	}
	return cols
}

// Has reports whether any column maps to f.
func (c ColumnMap) Has(f Field) bool {
	for _, got := range c {
		if got == f {
			return true
		}
	}
	return false
}

// missing returns the required fields for kind that the header lacks.
func (c ColumnMap) missing(kind Kind) []Field {
	var out []Field
	for _, f := range requiredFields[kind] {
		if !c.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// set assigns one raw cell to the record, applying the field's coercion.
func (r *Record) set(f Field, raw string) error {
	switch f {
	case FieldTownName:
		r.TownName = raw
	case FieldTradeSign:
		r.TradeSign = TradeSignOf(raw)
	case FieldAddress:
		r.Address = raw
	case FieldTradeDate:
		r.TradeDate = raw
	case FieldPriceTotal:
		r.PriceTotal = raw
	case FieldPriceUnit:
		n, err := DigitsToInt(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		r.PriceUnit = n
	case FieldTotalArea:
		r.TotalArea = raw
	case FieldCode:
		r.Code = raw
	case FieldAge:
		n, err := DigitsToInt(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		r.Age = n
	}
	return nil
}
