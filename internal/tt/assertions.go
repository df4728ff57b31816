// Package tt holds shared test helpers.
package tt

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// AssertTextEqual compares two multi-line strings and reports a unified diff
// on mismatch. Rendered prompts run to dozens of lines; a one-line mismatch
// message is unreadable for them.
func AssertTextEqual(t *testing.T, expected, actual string) {
	t.Helper()
	if expected == actual {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("failed to diff: %v", err)
	}
	t.Errorf("rendered text mismatch:\n%s", diff)
}
