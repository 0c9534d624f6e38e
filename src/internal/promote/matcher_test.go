package promote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/pkginfo"
)

func records(names map[int]string) []pkginfo.Record {
	var result []pkginfo.Record
	for id, name := range names {
		result = append(result, pkginfo.NewRecord(id, name))
	}
	return result
}

func TestRelated(t *testing.T) {
	tests := []struct {
		reference string
		candidate string
		want      bool
	}{
		{"Goat Simulator", "Goat Simulator", true},
		{"Goat Simulator", "goat-simulator", true},
		{"Goat Simulator", "Goat_Simulator", true},
		{"Goat Simulator", "Goat Simulator Pro", true},
		{"Firefox", "Firefix", true},
		{"Firefox", "FireFox ESR", true},
		{"Chrome", "Chromium", false},
		{"Nethack", "Goat Simulator", false},
		{"Java", "Jamf", false},
		{"Zoom", "Room", false},
		{"Git", "Go", false},
		{"Go", "Google Chrome", true},
		{"Office", "Offica", true},
		{"Firefox", "Firebox Pro", false},
		{"", "Nethack", false},
	}

	for _, tt := range tests {
		t.Run(tt.reference+"~"+tt.candidate, func(t *testing.T) {
			assert.Equal(t, tt.want, Related(tt.reference, tt.candidate))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("goat", "goat"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
	assert.Equal(t, 4, levenshtein("", "goat"))
	assert.Equal(t, 1, levenshtein("goat", "goa"))
}

func TestMatch(t *testing.T) {
	reference := pkginfo.NewRecord(11, "Goat Simulator-1.2.0.pkg")
	all := records(map[int]string{
		11: "Goat Simulator-1.2.0.pkg",
		12: "Goat Simulator-1.3.1.pkg",
		13: "Goat Simulator-1.0.0.pkg",
		14: "Goat Simulator-1.3.1a323423TESTING.pkg",
		15: "goat_simulator-2.0.dmg",
		20: "Nethack-3.4.3.dmg",
		30: "Readme.txt",
	})

	set := Match(reference, all)

	var ids []int
	for _, r := range set.Candidates {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{12, 14, 15}, ids)
	require.Len(t, set.Unparsed, 1)
	assert.Equal(t, 30, set.Unparsed[0].ID)

	newest, ok := set.Newest()
	require.True(t, ok)
	assert.Equal(t, 15, newest.ID)
}

func TestMatch_ShortNamesNeedExactProduct(t *testing.T) {
	all := records(map[int]string{
		2: "Java-8.1.pkg",
		3: "Jamf-10.0.pkg",
		4: "Vim-9.0.pkg",
	})

	set := Match(pkginfo.NewRecord(1, "Java-8.0.pkg"), all)

	require.Len(t, set.Candidates, 1)
	assert.Equal(t, 2, set.Candidates[0].ID)
	newest, ok := set.Newest()
	require.True(t, ok)
	assert.Equal(t, 2, newest.ID)
}

func TestCandidateSet_NewestIgnoresRelatedProducts(t *testing.T) {
	all := records(map[int]string{
		2: "Firefox-1.3.pkg",
		3: "Firefox ESR-9.0.pkg",
	})

	set := Match(pkginfo.NewRecord(1, "Firefox-1.2.pkg"), all)
	require.Len(t, set.Candidates, 2)

	newest, ok := set.Newest()
	require.True(t, ok)
	assert.Equal(t, 2, newest.ID)

	onlyRelated := Match(pkginfo.NewRecord(1, "Firefox-1.2.pkg"), records(map[int]string{3: "Firefox ESR-9.0.pkg"}))
	assert.False(t, onlyRelated.Empty())
	_, ok = onlyRelated.Newest()
	assert.False(t, ok, "a related product must not become the default")
}

func TestMatch_OnlyNewerVersions(t *testing.T) {
	all := records(map[int]string{
		1: "Tool-1.0.pkg",
		2: "Tool-1.0.0.pkg",
		3: "Tool-0.9.pkg",
		4: "Tool-1.0a.pkg",
		5: "Tool-1.01.pkg",
		6: "Tool-10.pkg",
		7: "Tool Extras-1.0.pkg",
	})

	for _, reference := range all {
		for _, candidate := range Match(reference, all).Candidates {
			assert.True(t, candidate.Version().Compare(reference.Version()) > 0,
				"%s is not newer than %s", candidate, reference)
		}
	}
}

func TestMatch_Empty(t *testing.T) {
	set := Match(pkginfo.NewRecord(20, "Nethack-3.4.3.dmg"), records(map[int]string{
		20: "Nethack-3.4.3.dmg",
		21: "Nethack-3.4.2.dmg",
	}))
	assert.True(t, set.Empty())

	_, ok := set.Newest()
	assert.False(t, ok)

	assert.True(t, Match(pkginfo.NewRecord(1, "Readme.txt"), records(map[int]string{2: "Tool-1.0.pkg"})).Empty())
}

func TestSortRecords(t *testing.T) {
	rs := []pkginfo.Record{
		pkginfo.NewRecord(4, "zz.txt"),
		pkginfo.NewRecord(3, "nethack-3.4.3.dmg"),
		pkginfo.NewRecord(2, "Goat Simulator-1.10.pkg"),
		pkginfo.NewRecord(1, "Goat Simulator-1.9.pkg"),
		pkginfo.NewRecord(5, "Goat Simulator-1.9.dmg"),
		pkginfo.NewRecord(6, "aa.txt"),
	}

	SortRecords(rs)

	var names []string
	for _, r := range rs {
		names = append(names, r.Filename)
	}
	assert.Equal(t, []string{
		"Goat Simulator-1.9.pkg",
		"Goat Simulator-1.9.dmg",
		"Goat Simulator-1.10.pkg",
		"nethack-3.4.3.dmg",
		"aa.txt",
		"zz.txt",
	}, names)
}
