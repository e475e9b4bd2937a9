package ui

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	"apiglass/internal/model"
)

// ansi colors
const (
	colorDim     = "\033[90m" // gray for placeholder examples
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

const methodWidth = 7

func padRight(s string, n int) string {
	return runewidth.FillRight(s, n)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return runewidth.Truncate(s, n, "…")
}

func colorizeMethod(method string) string {
	var color string
	switch strings.ToUpper(method) {
	case "GET":
		color = colorBlue
	case "POST":
		color = colorGreen
	case "PUT":
		color = colorYellow
	case "DELETE":
		color = colorRed
	case "PATCH":
		color = colorCyan
	case "HEAD", "OPTIONS":
		color = colorMagenta
	default:
		color = colorReset
	}
	return color + padRight(method, methodWidth) + colorReset
}

func colorizeStatus(r model.Result) string {
	line := fmt.Sprintf("%d %s", r.Status, r.StatusText)
	var color string
	switch {
	case r.Failed() || r.Status >= 500:
		color = colorRed
	case r.Status >= 400:
		color = colorYellow
	case r.Success():
		color = colorGreen
	default:
		color = colorReset
	}
	return color + line + colorReset
}

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

func highlightPlaceholders(url string) string {
	return placeholderRe.ReplaceAllString(url, colorCyan+"{$1}"+colorReset)
}

func groupLine(r row) string {
	marker := "▸"
	if r.expanded {
		marker = "▾"
	}
	noun := "endpoints"
	if r.count == 1 {
		noun = "endpoint"
	}
	return fmt.Sprintf("%s %s %s(%d %s)%s", marker, r.group, colorDim, r.count, noun, colorReset)
}

// endpointLine renders one endpoint row; n > 0 adds a quick-select number.
func endpointLine(n int, ep model.Endpoint, width int) string {
	prefix := "    "
	if n > 0 && n <= 9 {
		prefix = fmt.Sprintf("  %d ", n)
	}

	line := prefix + colorizeMethod(ep.Method) + " " + highlightPlaceholders(ep.URL)
	if ep.Description == "" {
		return line
	}

	used := runewidth.StringWidth(prefix) + methodWidth + 1 + runewidth.StringWidth(ep.URL)
	if room := width - used - 4; room > 8 {
		line += "  " + colorDim + truncate(ep.Description, room) + colorReset
	}
	return line
}

// exampleText renders an example value for display as a placeholder.
func exampleText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// paramLine renders "*name (type) = value"; an unset value shows the
// example or description dimmed.
func paramLine(p model.Param, val model.Value, nameWidth int) string {
	req := " "
	if p.Required {
		req = "*"
	}
	label := padRight(p.Name, nameWidth)
	typ := colorDim + padRight(string(p.Type), 8) + colorReset

	if val.Defined() {
		color := colorGreen
		if val.Kind == model.ValueNaN {
			color = colorRed
		}
		return fmt.Sprintf("%s%s %s = %s%s%s", req, label, typ, color, val.String(), colorReset)
	}

	hint := exampleText(p.Example)
	if hint == "" {
		hint = p.Description
	}
	if hint == "" {
		return fmt.Sprintf("%s%s %s =", req, label, typ)
	}
	return fmt.Sprintf("%s%s %s = %s%s%s", req, label, typ, colorDim, hint, colorReset)
}

func nameWidth(params []model.Param) int {
	w := 4
	for _, p := range params {
		if n := runewidth.StringWidth(p.Name); n > w {
			w = n
		}
	}
	return w
}
