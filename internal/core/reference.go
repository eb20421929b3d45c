package core

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed refdata/cities.yaml
var defaultReference []byte

// CityTownIndex is the read-only city and district reference data the parser
// consults for main records.
type CityTownIndex interface {
	// NameOf returns the display name for a city code.
	NameOf(cityCode string) (string, bool)
	// LookupTownCode returns the code of the first town whose title matches.
	LookupTownCode(cityCode, title string) (int, bool)
}

// Town is one district entry of a city.
type Town struct {
	Code  int    `yaml:"code"`
	Title string `yaml:"title"`
}

// City is the reference entry for one city code.
type City struct {
	Name  string `yaml:"name"`
	Towns []Town `yaml:"towns"`
}

// ReferenceIndex is the default CityTownIndex, keyed by uppercase city code.
// It is never mutated after construction.
type ReferenceIndex struct {
	cities map[string]City
}

// NewReferenceIndex builds an index from city entries. Keys are uppercased
// and town lists are copied so later changes to the input do not leak in.
func NewReferenceIndex(cities map[string]City) *ReferenceIndex {
	idx := &ReferenceIndex{cities: make(map[string]City, len(cities))}
	for code, c := range cities {
		towns := make([]Town, len(c.Towns))
		copy(towns, c.Towns)
		idx.cities[strings.ToUpper(code)] = City{Name: c.Name, Towns: towns}
	}
	return idx
}

// LoadReference decodes a YAML document mapping city codes to City entries.
func LoadReference(r io.Reader) (*ReferenceIndex, error) {
	var cities map[string]City
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cities); err != nil {
		return nil, fmt.Errorf("decode reference data: %w", err)
	}
	for code, c := range cities {
		if c.Name == "" {
			return nil, fmt.Errorf("reference data: city %q has no name", code)
		}
	}
	return NewReferenceIndex(cities), nil
}

// LoadReferenceFile reads reference data from path.
func LoadReferenceFile(path string) (*ReferenceIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference data: %w", err)
	}
	defer f.Close()
	return LoadReference(f)
}

// DefaultReference returns the reference data compiled into the binary.
func DefaultReference() (*ReferenceIndex, error) {
	return LoadReference(bytes.NewReader(defaultReference))
}

// NameOf implements CityTownIndex.
func (x *ReferenceIndex) NameOf(cityCode string) (string, bool) {
	c, ok := x.cities[strings.ToUpper(cityCode)]
	return c.Name, ok
}

// LookupTownCode implements CityTownIndex.
func (x *ReferenceIndex) LookupTownCode(cityCode, title string) (int, bool) {
	c, ok := x.cities[strings.ToUpper(cityCode)]
	if !ok {
		return 0, false
	}
	for _, t := range c.Towns {
		if t.Title == title {
			return t.Code, true
		}
	}
	return 0, false
}

// Codes returns the known city codes in sorted order.
func (x *ReferenceIndex) Codes() []string {
	codes := make([]string, 0, len(x.cities))
	for code := range x.cities {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
