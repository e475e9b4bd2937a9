package openapi

import (
	"fmt"
	"strings"

	"apiglass/internal/model"
)

const (
	DefaultBaseURL         = "https://api.example.com"
	DefaultGroup           = "Imported"
	DefaultBodyDescription = "Request body"

	bodyParamName = "body"
	jsonMediaType = "application/json"
)

// BodyPolicy decides which body parameter survives when an operation
// declares more than one.
type BodyPolicy int

const (
	BodyLastWins BodyPolicy = iota
	BodyFirstWins
)

func ParseBodyPolicy(s string) BodyPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "first") {
		return BodyFirstWins
	}
	return BodyLastWins
}

func (p BodyPolicy) String() string {
	if p == BodyFirstWins {
		return "first"
	}
	return "last"
}

var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// Normalize flattens the document's paths into endpoints, in path
// declaration order and then method declaration order.
func Normalize(doc *Document, opts Options) ([]model.Endpoint, error) {
	eps, _, err := normalize(doc, opts)
	return eps, err
}

// normalize also returns one warning per parameter dropped for a name clash.
func normalize(doc *Document, opts Options) ([]model.Endpoint, []string, error) {
	if doc == nil {
		return nil, nil, ErrNoEndpoints
	}

	base := serverURL(doc.root, opts)
	paths, _ := getObject(doc.root, "paths")

	var (
		out      []model.Endpoint
		warnings []string
	)
	if paths != nil {
		for pp := paths.Oldest(); pp != nil; pp = pp.Next() {
			item, ok := pp.Value.(Object)
			if !ok {
				continue
			}

			common := getArray(item, "parameters")
			for mp := item.Oldest(); mp != nil; mp = mp.Next() {
				if !httpMethods[strings.ToLower(mp.Key)] {
					continue
				}
				op, ok := mp.Value.(Object)
				if !ok {
					continue
				}
				ep, clashes := buildEndpoint(base, pp.Key, mp.Key, common, op, opts.BodyPolicy)
				out = append(out, ep)
				for _, c := range clashes {
					warnings = append(warnings, fmt.Sprintf("%s: %s", ep, c))
				}
			}
		}
	}

	if len(out) == 0 {
		return nil, nil, ErrNoEndpoints
	}
	return out, warnings, nil
}

func buildEndpoint(base, path, method string, common []any, op Object, policy BodyPolicy) (model.Endpoint, []string) {
	method = model.NormalizeMethod(method)

	params := paramSet{policy: policy}
	for _, raw := range common {
		if p, ok := paramFromEntry(raw); ok {
			params.add(p)
		}
	}
	for _, raw := range getArray(op, "parameters") {
		if p, ok := paramFromEntry(raw); ok {
			params.add(p)
		}
	}
	if p, ok := bodyFromRequestBody(op); ok {
		params.add(p)
	}

	group := DefaultGroup
	if tags := getArray(op, "tags"); len(tags) > 0 {
		if tag := scalarString(tags[0]); tag != "" {
			group = tag
		}
	}

	return model.Endpoint{
		Method:      method,
		URL:         joinURL(base, path),
		Description: firstNonEmpty(getString(op, "summary"), getString(op, "description"), method+" "+path),
		Group:       group,
		Parameters:  params.list,
	}, params.clashes
}

type paramSet struct {
	list    []model.Param
	policy  BodyPolicy
	clashes []string
}

// add keeps names unique, since input values are keyed by name. A later
// parameter replaces an earlier one with the same name and location in
// place. When the locations differ the path parameter is kept, otherwise
// the later one wins; either way the clash is recorded. Body parameters
// compete under the policy first.
func (s *paramSet) add(p model.Param) {
	if p.In == model.ParamInBody {
		if i := s.bodyIndex(); i >= 0 {
			if s.policy == BodyFirstWins {
				return
			}
			s.list = append(s.list[:i], s.list[i+1:]...)
		}
	}
	for i := range s.list {
		old := s.list[i]
		if old.Name != p.Name {
			continue
		}
		if old.In != p.In {
			kept := p
			if old.In == model.ParamInPath {
				kept = old
			}
			s.clashes = append(s.clashes, fmt.Sprintf("parameter %q declared in %s and %s, keeping %s",
				p.Name, old.In, p.In, kept.In))
			p = kept
		}
		s.list[i] = p
		return
	}
	s.list = append(s.list, p)
}

func (s *paramSet) bodyIndex() int {
	for i, p := range s.list {
		if p.In == model.ParamInBody {
			return i
		}
	}
	return -1
}

func paramFromEntry(raw any) (model.Param, bool) {
	entry, ok := raw.(Object)
	if !ok {
		return model.Param{}, false
	}
	name := getString(entry, "name")
	if strings.TrimSpace(name) == "" {
		return model.Param{}, false
	}

	p := model.Param{
		Name:        name,
		In:          model.ParamLocation(getString(entry, "in")),
		Required:    getBool(entry, "required"),
		Type:        paramType(entry),
		Description: getString(entry, "description"),
	}

	if v, ok := lookup(entry, "example"); ok {
		p.Example = plain(v)
	} else if schema, ok := getObject(entry, "schema"); ok {
		if v, ok := lookup(schema, "example"); ok {
			p.Example = plain(v)
		}
	}
	return p, true
}

func paramType(entry Object) model.ParamType {
	if schema, ok := getObject(entry, "schema"); ok {
		if t := typeName(schema); t != "" {
			return model.ParamType(t)
		}
	}
	if t := typeName(entry); t != "" {
		return model.ParamType(t)
	}
	return model.TypeString
}

// typeName reads "type", which OpenAPI 3.1 also allows as a list.
func typeName(o Object) string {
	v, ok := lookup(o, "type")
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" && s != "null" {
				return s
			}
		}
	}
	return ""
}

func bodyFromRequestBody(op Object) (model.Param, bool) {
	rb, ok := getObject(op, "requestBody")
	if !ok {
		return model.Param{}, false
	}
	content, ok := getObject(rb, "content")
	if !ok {
		return model.Param{}, false
	}
	raw, ok := lookup(content, jsonMediaType)
	if !ok {
		return model.Param{}, false
	}
	media, _ := raw.(Object)

	p := model.Param{
		Name:        bodyParamName,
		In:          model.ParamInBody,
		Required:    getBool(rb, "required"),
		Type:        model.TypeObject,
		Description: firstNonEmpty(getString(rb, "description"), DefaultBodyDescription),
		Example:     map[string]any{},
	}

	if schema, ok := getObject(media, "schema"); ok {
		if v, ok := lookup(schema, "example"); ok {
			p.Example = plain(v)
			return p, true
		}
	}
	if v, ok := lookup(media, "example"); ok {
		p.Example = plain(v)
	}
	return p, true
}

func serverURL(root Object, opts Options) string {
	for _, raw := range getArray(root, "servers") {
		srv, ok := raw.(Object)
		if !ok {
			continue
		}
		u := strings.TrimSpace(getString(srv, "url"))
		if u == "" {
			continue
		}
		return expandServerVariables(u, srv)
	}
	if opts.FallbackBaseURL != "" {
		return opts.FallbackBaseURL
	}
	return DefaultBaseURL
}

func expandServerVariables(u string, srv Object) string {
	vars, ok := getObject(srv, "variables")
	if !ok {
		return u
	}
	for pair := vars.Oldest(); pair != nil; pair = pair.Next() {
		v, ok := pair.Value.(Object)
		if !ok {
			continue
		}
		def, ok := lookup(v, "default")
		if !ok {
			continue
		}
		if s := scalarString(def); s != "" {
			u = strings.ReplaceAll(u, "{"+pair.Key+"}", s)
		}
	}
	return u
}

func joinURL(base, path string) string {
	if strings.HasSuffix(base, "/") && strings.HasPrefix(path, "/") {
		return strings.TrimSuffix(base, "/") + path
	}
	return base + path
}
