package scoring

import (
	"math"
	"strings"
)

// SkillSet is a case-insensitive set of skill names.
type SkillSet map[string]struct{}

// NewSkillSet lower-cases names into a set. Display casing is never stored
// here; callers filter their input lists against the set instead.
func NewSkillSet(names []string) SkillSet {
	set := make(SkillSet, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}

// Has reports whether name is in the set, ignoring case.
func (s SkillSet) Has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

func (s SkillSet) Len() int { return len(s) }

// Intersect returns the members present in both sets.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := make(SkillSet)
	for k := range s {
		if _, ok := other[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// Minus returns the members of s absent from other.
func (s SkillSet) Minus(other SkillSet) SkillSet {
	out := make(SkillSet)
	for k := range s {
		if _, ok := other[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// filterBySet keeps the entries of names that are in set, in input order and casing.
func filterBySet(names []string, set SkillSet) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if set.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

// round2 rounds to two decimals. Exact ties go to the even neighbour, so
// 3.125 becomes 3.12.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
