package model

import (
	"fmt"
	"regexp"
	"strings"
)

type ParamLocation string

type ParamType string

const (
	ParamInPath  ParamLocation = "path"
	ParamInQuery ParamLocation = "query"
	ParamInBody  ParamLocation = "body"

	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeObject  ParamType = "object"
)

// Param is one named input of an Endpoint. In is kept verbatim from the
// source document, so locations other than path/query/body may show up;
// the request builder ignores those.
type Param struct {
	Name        string
	In          ParamLocation
	Required    bool
	Type        ParamType
	Description string
	Example     any
}

type Endpoint struct {
	Method      string
	URL         string
	Description string
	Group       string

	// Parameters is nil when the endpoint takes no input.
	Parameters []Param
}

// BodyParam returns the body parameter, if any.
func (ep Endpoint) BodyParam() (Param, bool) {
	for _, p := range ep.Parameters {
		if p.In == ParamInBody {
			return p, true
		}
	}
	return Param{}, false
}

// Param looks a parameter up by name.
func (ep Endpoint) Param(name string) (Param, bool) {
	for _, p := range ep.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

func (ep Endpoint) String() string {
	return ep.Method + " " + ep.URL
}

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

// Placeholders lists the {name} placeholders of the URL template in order.
func (ep Endpoint) Placeholders() []string {
	var out []string
	for _, m := range placeholderRe.FindAllStringSubmatch(ep.URL, -1) {
		out = append(out, m[1])
	}
	return out
}

// CheckPlaceholders reports every mismatch between URL placeholders and
// path parameters. An empty result means they correspond 1:1.
func (ep Endpoint) CheckPlaceholders() []string {
	var problems []string

	declared := map[string]bool{}
	for _, p := range ep.Parameters {
		if p.In == ParamInPath {
			declared[p.Name] = true
		}
	}

	seen := map[string]bool{}
	for _, name := range ep.Placeholders() {
		if seen[name] {
			problems = append(problems, fmt.Sprintf("%s: placeholder {%s} appears more than once", ep, name))
			continue
		}
		seen[name] = true
		if !declared[name] {
			problems = append(problems, fmt.Sprintf("%s: placeholder {%s} has no path parameter", ep, name))
		}
	}
	for _, p := range ep.Parameters {
		if p.In == ParamInPath && !seen[p.Name] {
			problems = append(problems, fmt.Sprintf("%s: path parameter %q has no placeholder", ep, p.Name))
		}
	}
	return problems
}

// NormalizeMethod uppercases and trims an HTTP method name.
func NormalizeMethod(method string) string {
	return strings.ToUpper(strings.TrimSpace(method))
}
