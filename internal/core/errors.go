package core

import (
	"errors"
	"fmt"
)

var (
	// ErrRootUnavailable is returned by Scan when the ingestion root cannot be
	// listed. It is the only condition that aborts a scan.
	ErrRootUnavailable = errors.New("ingestion root unavailable")

	// ErrParse matches every *ParseError via errors.Is.
	ErrParse = errors.New("parse failure")

	// ErrUnknownCity is reported when the reference index has no entry for a
	// main file's city code.
	ErrUnknownCity = errors.New("unknown city code")
)

// ParseFailure categories, used as the "cause" attribute when a unit is skipped.
const (
	CauseDecode    = "decode"
	CauseStructure = "structure"
	CauseCoerce    = "coerce"
	CauseLookup    = "lookup"
)

// ParseError describes why one file could not be turned into records.
type ParseError struct {
	Path  string
	Line  int // 0 when the failure is not tied to a line
	Cause string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.Path, e.Line, e.Cause, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Cause, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// CauseOf returns the ParseError cause carried by err, or "" if err is not a
// parse failure.
func CauseOf(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Cause
	}
	return ""
}
