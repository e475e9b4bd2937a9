package httpclient

import (
	"encoding/json"
	"net/url"
	"strings"

	"apiglass/internal/errdef"
	"apiglass/internal/model"
)

// Request is a fully resolved request. Body is nil when there is none.
type Request struct {
	Method string
	URL    string
	Body   []byte
}

// BuildRequest resolves the endpoint's URL template and body from vals.
// Unset and empty values are skipped; placeholders without a value stay in
// the URL as they are.
func BuildRequest(ep model.Endpoint, vals *Values) (Request, error) {
	if vals == nil {
		vals = NewValues()
	}

	u := ep.URL
	var query []string
	var body []byte

	for _, p := range ep.Parameters {
		val := vals.Get(p.Name)
		if !val.Defined() {
			continue
		}

		switch p.In {
		case model.ParamInPath:
			if val.Blank() {
				continue
			}
			u = strings.Replace(u, "{"+p.Name+"}", encodeComponent(val.String()), 1)
		case model.ParamInQuery:
			if val.Blank() {
				continue
			}
			query = append(query, p.Name+"="+encodeComponent(val.String()))
		case model.ParamInBody:
			b, err := json.Marshal(val)
			if err != nil {
				return Request{}, errdef.Wrap(errdef.CodeHTTP, err, "encode body %s", p.Name)
			}
			body = b
		}
	}

	if len(query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + strings.Join(query, "&")
	}

	return Request{Method: model.NormalizeMethod(ep.Method), URL: u, Body: body}, nil
}

var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ),
// the component escaping browsers use.
func encodeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}
