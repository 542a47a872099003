package presentation

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff compares two renderings line by line. Removed lines are prefixed with
// "- " and added lines with "+ "; unchanged lines are omitted. Identical
// renderings yield the empty string.
func Diff(prev, next string) string {
	if prev == next {
		return ""
	}

	dmp := diffmatchpatch.New()
	prevChars, nextChars, lines := dmp.DiffLinesToChars(withTrailingNewline(prev), withTrailingNewline(next))
	diffs := dmp.DiffMain(prevChars, nextChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// withTrailingNewline keeps the last line comparable when only one side ends
// in a newline.
func withTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
