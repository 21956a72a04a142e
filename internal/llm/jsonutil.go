// internal/llm/jsonutil.go
package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// ```json { ... } ```
	fencedObject  = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(\\{.*\\})\\s*```")
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON pulls the first JSON object out of a model reply. Markdown
// fences and surrounding prose are dropped, trailing commas removed when the
// object does not parse as is.
// Returns "" when the reply holds no object.
func ExtractJSON(content string) string {
	var raw string
	if m := fencedObject.FindStringSubmatch(content); len(m) > 1 {
		raw = m[1]
	} else {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end <= start {
			return ""
		}
		raw = content[start : end+1]
	}
	// valid objects pass untouched, so string values with ", }" survive
	if json.Valid([]byte(raw)) {
		return raw
	}
	return trailingComma.ReplaceAllString(raw, "$1")
}
