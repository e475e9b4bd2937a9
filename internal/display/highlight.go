package display

import (
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/muesli/termenv"

	"apiglass/internal/model"
)

const (
	StyleDark  = "monokai"
	StyleLight = "github"
)

// Highlight colors a rendered body for the terminal. Text bodies, plain
// ASCII terminals and highlighting failures return the body unchanged.
func Highlight(body string, mode model.DisplayMode, profile termenv.Profile, style string) string {
	lexer := lexerFor(mode)
	formatter := formatterFor(profile)
	if lexer == "" || formatter == "" || body == "" {
		return body
	}
	if style == "" {
		style = StyleDark
	}

	var sb strings.Builder
	if err := quick.Highlight(&sb, body, lexer, formatter, style); err != nil {
		return body
	}
	return sb.String()
}

func lexerFor(mode model.DisplayMode) string {
	switch mode {
	case model.DisplayJSON:
		return "json"
	case model.DisplayHTML:
		return "html"
	}
	return ""
}

func formatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal"
	}
	return ""
}

// StyleForTheme maps the UI theme name onto a chroma style.
func StyleForTheme(theme string) string {
	if strings.EqualFold(theme, "light") {
		return StyleLight
	}
	return StyleDark
}
