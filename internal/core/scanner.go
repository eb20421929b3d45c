package core

// scanner.go walks an LVR ingestion root and drives the per-unit pipeline.
//
// Layout:
//
//	<root>/<city-directory>/{a..z}_lvr_land_a.csv        main
//	<root>/<city-directory>/{a..z}_lvr_land_a_build.csv  building
//	<root>/<city-directory>/{a..z}_lvr_land_a_land.csv   never opened
//	<root>/<city-directory>/{a..z}_lvr_land_a_park.csv   never opened
//
// The _b and _c file families (land plus parking transactions) are not
// discovered at all. A unit is one city directory and one letter; each unit is
// parsed, joined and handed to the Aggregator on its own, and a failure in one
// unit only drops that unit.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/lvr/internal/logging"
)

// FilePrefix is the only file family the scanner discovers.
const FilePrefix = "a"

// Letters is the fixed letter iteration order.
var Letters = func() []string {
	out := make([]string, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		out = append(out, string(c))
	}
	return out
}()

// ScanOptions controls a scan. The zero value scans everything sequentially
// into a flat result.
type ScanOptions struct {
	Mode OutputMode

	// MaxCities and MaxLetters stop iteration after that many city
	// directories or letter positions. Zero or negative means no cap.
	MaxCities  int
	MaxLetters int

	// Workers is the number of units processed concurrently. Values below 1
	// mean one.
	Workers int
}

// Scanner discovers units under a root directory and processes them.
type Scanner struct {
	Parser  *Parser
	Options ScanOptions
}

// NewScanner creates a scanner that parses files with parser.
func NewScanner(parser *Parser, opts ScanOptions) *Scanner {
	return &Scanner{Parser: parser, Options: opts}
}

// UnitPaths returns the candidate file paths for one letter in a city dir.
func UnitPaths(cityDir, letter string) (mainPath, buildPath, landPath, parkPath string) {
	prefix := filepath.Join(cityDir, fmt.Sprintf("%s_lvr_land_%s", letter, FilePrefix))
	return prefix + ".csv", prefix + "_build.csv", prefix + "_land.csv", prefix + "_park.csv"
}

// CityDirs lists the immediate subdirectories of root in name order.
func CityDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRootUnavailable, root, err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
			continue
		}
		// Follow symlinks to directories.
		if entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(root, entry.Name())); err == nil && info.IsDir() {
				dirs = append(dirs, entry.Name())
			}
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Discover lists every unit under root whose main file exists, in processing
// order (sorted city directory, then letter).
func (s *Scanner) Discover(root string) ([]Unit, error) {
	dirs, err := CityDirs(root)
	if err != nil {
		return nil, err
	}
	if limit := s.Options.MaxCities; limit > 0 && len(dirs) > limit {
		dirs = dirs[:limit]
	}

	letters := Letters
	if limit := s.Options.MaxLetters; limit > 0 && len(letters) > limit {
		letters = letters[:limit]
	}

	var units []Unit
	for ci, city := range dirs {
		cityDir := filepath.Join(root, city)
		for _, letter := range letters {
			mainPath, buildPath, landPath, parkPath := UnitPaths(cityDir, letter)
			if !fileExists(mainPath) {
				continue
			}
			units = append(units, Unit{
				City:      city,
				CityIndex: ci,
				Letter:    letter,
				MainPath:  mainPath,
				BuildPath: buildPath,
				LandPath:  landPath,
				ParkPath:  parkPath,
			})
		}
	}
	return units, nil
}

// ProcessUnit parses, joins and returns one unit. Errors never escape: a
// failed unit comes back with Err set and no records. A unit interrupted by
// cancellation comes back with ctx.Err().
func (s *Scanner) ProcessUnit(ctx context.Context, u Unit) (res UnitResult) {
	res.Unit = u

	defer func() {
		if r := recover(); r != nil {
			res.Records = nil
			res.Err = fmt.Errorf("panic processing %s: %v", u.MainPath, r)
		}
	}()

	mainRecs, err := s.Parser.ParseFile(ctx, u.MainPath, KindMain, u.Letter)
	if err != nil {
		res.Err = err
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	var build []Record
	if fileExists(u.BuildPath) {
		build, err = s.Parser.ParseFile(ctx, u.BuildPath, KindBuild, u.Letter)
		if err != nil {
			res.Err = err
			return res
		}
	}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	res.Records = JoinAge(mainRecs, build)
	return res
}

// Scan processes every unit under root and aggregates the results.
//
// A missing or unreadable root returns ErrRootUnavailable. Per-unit failures
// are logged and listed in Result.Skipped. If ctx is cancelled, Scan stops
// starting new units and returns the units that completed in order before
// the first unprocessed one, together with ctx.Err().
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	units, err := s.Discover(root)
	if err != nil {
		return nil, err
	}

	results := s.run(ctx, units)

	agg := NewAggregator(s.Options.Mode)
	var skipped []SkippedUnit
	processed := 0
	for _, r := range results {
		if r == nil {
			break
		}
		u := r.Unit
		if r.Skipped() {
			logger.Warn("unit skipped",
				"file", u.MainPath,
				"cause", CauseOf(r.Err),
				"error", r.Err,
			)
			skipped = append(skipped, SkippedUnit{
				City:   u.City,
				Letter: u.Letter,
				Path:   u.MainPath,
				Reason: r.Err,
			})
			continue
		}
		agg.Add(u.Letter, r.Records)
		processed++
	}

	res := agg.Result()
	res.Units = processed
	res.Skipped = skipped

	logger.Info("scan complete",
		"root", root,
		"units", processed,
		"skipped", len(skipped),
		"records", res.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("scan cancelled: %w", err)
	}
	return res, nil
}

// run processes units with at most Options.Workers in flight. Slot i holds
// the result of units[i], or nil if the unit was never processed or was cut
// short by cancellation.
func (s *Scanner) run(ctx context.Context, units []Unit) []*UnitResult {
	results := make([]*UnitResult, len(units))

	workers := s.Options.Workers
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, u := range units {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			r := s.ProcessUnit(ctx, u)
			if interrupted(ctx, r.Err) {
				// Leave the slot empty: the unit did not finish.
				return nil
			}
			logging.WithFields(ctx, "city", u.City, "letter", u.Letter).Debug("unit processed",
				"records", len(r.Records),
				"skipped", r.Skipped(),
			)
			results[i] = &r
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// interrupted reports whether err is ctx's own cancellation error.
func interrupted(ctx context.Context, err error) bool {
	cerr := ctx.Err()
	return err != nil && cerr != nil && errors.Is(err, cerr)
}

// fileExists reports whether path names an existing entry. Any stat error
// counts as absent.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
