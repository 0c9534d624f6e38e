package selector

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initAlgo sync.Once

// fuzzyFilter keeps the options whose label fuzzy-matches pattern, best
// score first. Ties keep their original order.
func fuzzyFilter(options []Option, pattern string) []Option {
	initAlgo.Do(func() { algo.Init("default") })

	runes := []rune(strings.ToLower(pattern))
	slab := util.MakeSlab(100*1024, 2048)

	type scored struct {
		option Option
		score  int
	}
	var matches []scored
	for _, option := range options {
		chars := util.ToChars([]byte(option.Label))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, runes, false, slab)
		if result.Start < 0 {
			continue
		}
		matches = append(matches, scored{option: option, score: result.Score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]Option, len(matches))
	for i, m := range matches {
		result[i] = m.option
	}
	return result
}
