// Package report formats object listings and diffs as plain text.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
)

// NoResults is printed under a heading with nothing to list.
const NoResults = "No results found."

// Results renders an optional heading followed by one aligned
// "ID: n<TAB>NAME: x" line per item.
func Results(heading string, items []jss.Summary) string {
	var b strings.Builder
	if heading != "" {
		b.WriteString(heading)
		if !strings.HasSuffix(heading, "\n") {
			b.WriteString("\n")
		}
	}

	if len(items) == 0 {
		b.WriteString(NoResults)
		b.WriteString("\n")
		return b.String()
	}

	width := 0
	for _, item := range items {
		if w := len(strconv.Itoa(item.ID)); w > width {
			width = w
		}
	}
	for _, item := range items {
		fmt.Fprintf(&b, "ID: %*d\tNAME: %s\n", width, item.ID, item.Name)
	}
	return b.String()
}

// Diff returns a unified diff between two texts, or "" if they are equal.
func Diff(fromName, from, toName, to string) (string, error) {
	if from == to {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	})
}
