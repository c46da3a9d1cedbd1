// Package text holds small string helpers shared by the history log and the
// terminal renderers.
package text

import "strings"

// PreviewLimit is the maximum number of visible characters kept when a
// snippet is condensed for display.
const PreviewLimit = 80

// truncationMarker is appended whenever a preview had to be cut short.
const truncationMarker = "…"

// Preview condenses a code snippet into a single display line: whitespace
// runs collapse to single spaces, the result is capped at PreviewLimit runes,
// and a truncation marker is appended when anything was cut off.
func Preview(code string) string {
	collapsed := strings.Join(strings.Fields(code), " ")
	runes := []rune(collapsed)
	if len(runes) <= PreviewLimit {
		return collapsed
	}
	return string(runes[:PreviewLimit]) + truncationMarker
}
