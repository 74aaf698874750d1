// Package taskid contains the pure logic for guild-scoped task identifiers.
// Display form is T-<n> with the decimal value zero-padded to three digits.
// Padding never truncates: T-007, T-042, T-1000, T-15234.
package taskid

import (
	"fmt"
	"regexp"
	"strconv"
)

// Prefix is the display prefix for all task identifiers.
const Prefix = "T-"

var idPattern = regexp.MustCompile(`^T-(\d+)$`)

// Format renders a sequence value as a display identifier.
func Format(sequence int) string {
	return fmt.Sprintf("T-%03d", sequence)
}

// ParseSuffix extracts the numeric suffix from a display identifier.
// Returns false if the identifier does not match the T-<n> form.
func ParseSuffix(taskID string) (int, bool) {
	match := idPattern.FindStringSubmatch(taskID)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// MaxSuffix returns the highest numeric suffix among the given identifiers,
// or 0 if none parse. Counter repair resynchronizes the per-guild sequence
// to this value.
func MaxSuffix(taskIDs []string) int {
	max := 0
	for _, id := range taskIDs {
		if n, ok := ParseSuffix(id); ok && n > max {
			max = n
		}
	}
	return max
}
