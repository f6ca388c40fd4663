package svg

import (
	"encoding/xml"
	"strings"
)

// EscapeText makes text safe for element content and attribute values.
func EscapeText(text string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(text))
	return sb.String()
}
