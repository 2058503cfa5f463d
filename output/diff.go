// Package output renders the human-facing parts of a check failure: the
// string differ, type names, file-name case conversion, character-safe
// display, and the block separators printed between failing checks.
package output

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// windowRadius is how many characters either side of the first difference
// the windowed snippet keeps, before adjusting to line boundaries.
const windowRadius = 30

// StringDiff renders a failure message comparing obtained and predicted
// string values: a windowed snippet around the first differing position,
// bracketed in ellipses when the strings extend beyond the window,
// anchored to line boundaries.
func StringDiff(obtained, predicted string) string {
	if obtained == predicted {
		return ""
	}

	idx := firstDifference(obtained, predicted)

	var b strings.Builder
	fmt.Fprintf(&b, "strings differ at character %d\n", idx)
	fmt.Fprintf(&b, "  obtained:  %s\n", window(obtained, idx))
	fmt.Fprintf(&b, "  predicted: %s\n", window(predicted, idx))
	return b.String()
}

// firstDifference returns the index of the first character at which
// obtained and predicted diverge, using diffmatchpatch to locate the
// boundary of the leading common (Equal) segment rather than a naive
// byte-by-byte scan, so multi-byte runes are not split.
func firstDifference(obtained, predicted string) int {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(obtained, predicted, false)
	idx := 0
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			break
		}
		idx += len(d.Text)
	}
	return idx
}

// window returns a snippet of s around idx: it starts windowRadius
// characters before idx, or just after the last newline before idx if
// that is later, and ends windowRadius characters after idx, extended to
// the next newline if there is one. It is ellipsis-bracketed when the
// snippet doesn't reach an edge of s.
func window(s string, idx int) string {
	if idx > len(s) {
		idx = len(s)
	}
	lo := idx - windowRadius
	if lo < 0 {
		lo = 0
	} else if nl := strings.LastIndexByte(s[:idx], '\n'); nl >= 0 && nl > lo {
		lo = nl + 1
	}

	hi := idx + windowRadius
	if hi > len(s) {
		hi = len(s)
	} else if nl := strings.IndexByte(s[hi:], '\n'); nl >= 0 {
		hi += nl
	}

	snippet := s[lo:hi]
	if lo > 0 {
		snippet = "..." + snippet
	}
	if hi < len(s) {
		snippet = snippet + "..."
	}
	return snippet
}

// FileDiff renders a unified, line-based diff between two file contents,
// used by the filesystem-path ValueTester to compare regular-file
// contents once any .seqpat masks have already been applied.
func FileDiff(name, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name+" (predicted)", name+" (obtained)", before, edits))
}
