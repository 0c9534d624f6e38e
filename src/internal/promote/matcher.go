// Package promote swaps the package a policy installs for a newer version
// of the same product.
package promote

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/pkginfo"
)

// MaxNameDistance is the largest edit distance at which two normalized
// product names are still considered the same product.
const MaxNameDistance = 2

// MinFuzzyLength is the shortest normalized name compared by edit
// distance. Shorter names only relate by containment, so Java and Jamf
// stay apart.
const MinFuzzyLength = 6

// CandidateSet is the result of matching packages against the one a
// policy installs.
type CandidateSet struct {
	// Reference is the package the candidates were matched against.
	Reference pkginfo.Record
	// Candidates are related packages with a strictly newer version,
	// ordered by product then version then id.
	Candidates []pkginfo.Record
	// Unparsed are the records whose filename did not parse.
	Unparsed []pkginfo.Record
}

// Empty reports whether no replacement was found.
func (s CandidateSet) Empty() bool {
	return len(s.Candidates) == 0
}

// Newest returns the highest version among the candidates naming exactly
// the reference product. Merely related products are never offered as the
// default.
func (s CandidateSet) Newest() (pkginfo.Record, bool) {
	product := normalize(s.Reference.Product())
	var newest pkginfo.Record
	found := false
	for _, r := range s.Candidates {
		if normalize(r.Product()) != product {
			continue
		}
		if !found || r.Version().Compare(newest.Version()) > 0 {
			newest, found = r, true
		}
	}
	return newest, found
}

// Match returns the packages related to reference by product name whose
// version is strictly greater.
func Match(reference pkginfo.Record, all []pkginfo.Record) CandidateSet {
	set := CandidateSet{Reference: reference}
	for _, r := range all {
		if !r.Valid() {
			set.Unparsed = append(set.Unparsed, r)
			continue
		}
		if !reference.Valid() || !Related(reference.Product(), r.Product()) {
			continue
		}
		if r.NewerThan(reference) {
			set.Candidates = append(set.Candidates, r)
		}
	}
	SortRecords(set.Candidates)
	return set
}

// SortRecords orders records by case-insensitive product, then version,
// then id. Unparsed records sort last by filename.
func SortRecords(records []pkginfo.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Valid() != b.Valid() {
			return a.Valid()
		}
		if !a.Valid() {
			return a.Filename < b.Filename
		}
		pa, pb := strings.ToLower(a.Product()), strings.ToLower(b.Product())
		if pa != pb {
			return pa < pb
		}
		if c := a.Version().Compare(b.Version()); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}

// Related reports whether candidate names the same product as reference.
// Names are compared case-insensitively with space, hyphen and underscore
// treated alike; they relate when the candidate contains the reference or,
// for names of at least MinFuzzyLength runes, when the edit distance is
// within a fifth of the shorter name and at most MaxNameDistance.
func Related(reference, candidate string) bool {
	ref, cand := normalize(reference), normalize(candidate)
	if ref == "" || cand == "" {
		return false
	}
	if strings.Contains(cand, ref) {
		return true
	}
	shorter := min(utf8.RuneCountInString(ref), utf8.RuneCountInString(cand))
	if shorter < MinFuzzyLength {
		return false
	}
	return levenshtein(ref, cand) <= min(shorter/5, MaxNameDistance)
}

func normalize(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	})
	return strings.Join(fields, " ")
}

// levenshtein computes the edit distance between a and b using two rows.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	previous := make([]int, len(rb)+1)
	current := make([]int, len(rb)+1)
	for j := range previous {
		previous[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		current[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			current[j] = min(previous[j]+1, current[j-1]+1, previous[j-1]+cost)
		}
		previous, current = current, previous
	}
	return previous[len(rb)]
}
