// Package core turns the real-price registration (LVR) open-data corpus into
// normalized transaction records.
//
// The package holds all domain logic and knows nothing about storage or the
// command line. It can be driven by cmd/lvrimport, by tests, or by any other
// caller that has a directory of exports.
//
// # Architecture
//
// A scan is a pipeline of small, independently testable steps:
//
//   - Field mapping: [FieldFor] resolves Chinese column labels to canonical
//     fields, and [Record] coercion turns trade signs and digit strings into ints.
//   - Parsing: [Parser] reads one CSV file into records, decoding strict UTF-8
//     with an optional byte-order mark.
//   - Joining: [JoinAge] overwrites each main record's age from the companion
//     building file.
//   - Aggregation: [Aggregator] collects unit results into a flat list or into
//     lists keyed by uppercase letter.
//   - Scanning: [Scanner] walks the city directories and drives the steps above.
//
// # Corpus Layout
//
// Each city directory (one per release period, e.g. 112S1) contains files
// named by letter. The letter is also the city code used for reference
// lookups:
//
//	112S1/a_lvr_land_a.csv        main transactions for city A
//	112S1/a_lvr_land_a_build.csv  building details, joined by 編號
//
// # Fault Isolation
//
// A unit is one city directory and one letter. A unit whose files cannot be
// decoded or parsed is dropped and listed in [Result.Skipped]; every other
// unit still contributes. Only an unreadable root aborts a scan
// ([ErrRootUnavailable]).
//
// # Reference Data
//
// City names and district codes come from a [CityTownIndex]. The default
// [ReferenceIndex] is compiled in from refdata/cities.yaml and can be replaced
// with [LoadReferenceFile].
package core
