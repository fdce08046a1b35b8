// Package extract pulls the tagged reply out of a raw model response.
package extract

import "strings"

// Tag returns the text between the first <tag>...</tag> pair in raw,
// trimmed of surrounding whitespace. The match is a case-sensitive literal.
// When the tag pair is absent or the closing tag is missing, the raw text is
// returned trimmed instead: models do not always follow the wrapping
// instruction, and a visible reply beats an error.
func Tag(raw, tag string) string {
	opening := "<" + tag + ">"
	closing := "</" + tag + ">"

	start := strings.Index(raw, opening)
	if start < 0 {
		return strings.TrimSpace(raw)
	}
	inner := raw[start+len(opening):]

	end := strings.Index(inner, closing)
	if end < 0 {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(inner[:end])
}
