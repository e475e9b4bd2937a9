package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"apiglass/internal/model"
)

var htmlMarkers = []string{"<html", "<body", "<!doctype", "<div", "<p", "<h1", "<title"}

// Classify picks how a result body should be shown. HTML is checked first,
// so a JSON string holding markup renders as HTML.
func Classify(r model.Result) model.DisplayMode {
	if looksLikeHTML(RenderBody(r)) {
		return model.DisplayHTML
	}

	switch data := r.Data.(type) {
	case map[string]any, []any:
		return model.DisplayJSON
	case string:
		if json.Valid([]byte(data)) {
			return model.DisplayJSON
		}
	}
	return model.DisplayText
}

// looksLikeHTML over-approximates on purpose: any body that opens with a
// tag and mentions a common element counts.
func looksLikeHTML(body string) bool {
	lower := strings.ToLower(strings.TrimSpace(body))

	if strings.HasPrefix(lower, "<") {
		for _, marker := range htmlMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	if strings.Contains(lower, "</html>") {
		return true
	}
	return strings.Contains(lower, "<head>") && strings.Contains(lower, "<body>")
}

// RenderBody returns text data as is and pretty-prints everything else
// with a two-space indent.
func RenderBody(r model.Result) string {
	if s, ok := r.Data.(string); ok {
		return s
	}
	return PrettyJSON(r.Data)
}

func PrettyJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
