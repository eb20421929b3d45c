package core

// BuildAgeIndex maps each build record's code to its age. Later rows win on
// duplicate codes.
func BuildAgeIndex(build []Record) map[string]int {
	ages := make(map[string]int, len(build))
	for _, b := range build {
		ages[b.Code] = b.Age
	}
	return ages
}

// JoinAge overwrites Age on every main record with the building-file value
// for its code, or 0 when the code is absent. The age a main row was parsed
// with is never kept. The same slice is returned.
func JoinAge(main, build []Record) []Record {
	ages := BuildAgeIndex(build)
	for i := range main {
		main[i].Age = ages[main[i].Code]
	}
	return main
}
