package rendering

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Replacement stands in for characters the core PDF fonts cannot show.
const Replacement = '?'

// EncodeText converts UTF-8 text to the Windows-1252 bytes the core fonts are drawn with.
// Characters outside that code page become Replacement.
func EncodeText(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			result.WriteByte(b)
			continue
		}
		result.WriteRune(Replacement)
	}

	return result.String()
}
