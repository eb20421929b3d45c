package core

// Kind identifies which file family a CSV belongs to.
type Kind string

const (
	KindMain  Kind = "main"  // {letter}_lvr_land_a.csv
	KindBuild Kind = "build" // {letter}_lvr_land_a_build.csv
	KindLand  Kind = "land"  // {letter}_lvr_land_a_land.csv (never opened)
	KindPark  Kind = "park"  // {letter}_lvr_land_a_park.csv (never opened)
)

// Record is one canonical transaction row.
//
// Build records only carry the fields their file provides. Main records also
// carry the city fields and TownCode, which is nil when the town title has no
// entry in the reference index.
type Record struct {
	CityCode   string
	CityName   string
	TownCode   *int
	TownName   string
	TradeSign  int
	Address    string
	TradeDate  string // ROC calendar, e.g. "1120315"
	PriceTotal string
	PriceUnit  int // price per square metre
	TotalArea  string
	Code       string
	Age        int
}

// Unit is one city directory and letter pair discovered by the scanner.
type Unit struct {
	City      string // city directory name
	CityIndex int    // position of City in the sorted directory listing
	Letter    string // lowercase, "a".."z"
	MainPath  string
	BuildPath string
	LandPath  string
	ParkPath  string
}

// Key returns the uppercased letter used by grouped output.
func (u Unit) Key() string {
	return upperLetter(u.Letter)
}

// UnitResult is the outcome of processing a single unit: either the joined
// main records or the reason the unit was skipped.
type UnitResult struct {
	Unit    Unit
	Records []Record
	Err     error
}

// Skipped reports whether the unit's contribution was dropped.
func (r UnitResult) Skipped() bool {
	return r.Err != nil
}

// SkippedUnit records a unit that was dropped and why.
type SkippedUnit struct {
	City   string
	Letter string
	Path   string
	Reason error
}

// Result is the aggregate output of a scan.
//
// Exactly one of Flat or Grouped is populated, depending on Mode.
type Result struct {
	Mode    OutputMode
	Flat    []Record
	Grouped map[string][]Record
	Keys    []string // grouped keys in first-seen order

	Units   int // units that contributed records (possibly zero rows)
	Skipped []SkippedUnit
}

// SkippedCount returns how many units were dropped during the scan.
func (r *Result) SkippedCount() int {
	return len(r.Skipped)
}

// Len returns the number of records across the whole result.
func (r *Result) Len() int {
	if r.Mode == ModeGrouped {
		n := 0
		for _, recs := range r.Grouped {
			n += len(recs)
		}
		return n
	}
	return len(r.Flat)
}

func upperLetter(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// Records returns every record of the result. Grouped results are flattened
// in key order.
func (r *Result) Records() []Record {
	if r.Mode != ModeGrouped {
		return r.Flat
	}
	out := make([]Record, 0, r.Len())
	for _, k := range r.Keys {
		out = append(out, r.Grouped[k]...)
	}
	return out
}
