package httpclient

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"apiglass/internal/model"
)

// Values is the input state of one endpoint, keyed by parameter name.
// It is not safe for concurrent use; callers hand BuildRequest a Clone.
type Values struct {
	values map[string]model.Value

	// raw body text as typed, and whether it currently parses
	bodyText  map[string]string
	bodyValid map[string]bool
}

func NewValues() *Values {
	return &Values{
		values:    map[string]model.Value{},
		bodyText:  map[string]string{},
		bodyValid: map[string]bool{},
	}
}

func (v *Values) Set(name string, val model.Value) {
	if !val.Defined() {
		delete(v.values, name)
		return
	}
	v.values[name] = val
}

func (v *Values) Get(name string) model.Value {
	return v.values[name]
}

func (v *Values) Clear(name string) {
	delete(v.values, name)
	delete(v.bodyText, name)
	delete(v.bodyValid, name)
}

// SetInput stores typed text for a parameter, coercing it by the
// parameter's type. Empty input clears the value. A failed numeric parse
// stores NaN, which is still sent.
func (v *Values) SetInput(p model.Param, raw string) {
	if p.In == model.ParamInBody {
		v.SetBodyText(p.Name, raw)
		return
	}
	if raw == "" {
		delete(v.values, p.Name)
		return
	}

	switch p.Type {
	case model.TypeInteger:
		v.values[p.Name] = parseInteger(raw)
	case model.TypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(n) {
			v.values[p.Name] = model.NaNValue()
			return
		}
		v.values[p.Name] = model.NumberValue(n)
	default:
		v.values[p.Name] = model.TextValue(raw)
	}
}

// parseInteger reads the leading base-10 integer of the trimmed text, so
// "12abc" is 12 and "3.7" is 3. Text without leading digits is NaN.
func parseInteger(raw string) model.Value {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return model.NaNValue()
	}
	// ParseFloat keeps digit runs too long for int64
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return model.NaNValue()
	}
	return model.NumberValue(n)
}

// SetBodyText records the raw body text and, when it parses, the parsed
// value. Unparseable text leaves the last good value in place and reports
// false. Blank text clears the value.
func (v *Values) SetBodyText(name, raw string) bool {
	v.bodyText[name] = raw

	if strings.TrimSpace(raw) == "" {
		delete(v.values, name)
		v.bodyValid[name] = true
		return true
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		v.bodyValid[name] = false
		return false
	}
	v.values[name] = model.JSONValue(parsed)
	v.bodyValid[name] = true
	return true
}

func (v *Values) BodyText(name string) string {
	return v.bodyText[name]
}

func (v *Values) BodyValid(name string) bool {
	valid, ok := v.bodyValid[name]
	return !ok || valid
}

// Prefill seeds the body with the endpoint's example, both as editable
// text and as the value that will be sent.
func (v *Values) Prefill(ep model.Endpoint) {
	p, ok := ep.BodyParam()
	if !ok || p.Example == nil {
		return
	}
	text, err := json.MarshalIndent(p.Example, "", "  ")
	if err != nil {
		return
	}
	v.bodyText[p.Name] = string(text)
	v.bodyValid[p.Name] = true
	v.values[p.Name] = model.JSONValue(p.Example)
}

func (v *Values) Clone() *Values {
	out := NewValues()
	for k, val := range v.values {
		out.values[k] = val
	}
	for k, s := range v.bodyText {
		out.bodyText[k] = s
	}
	for k, ok := range v.bodyValid {
		out.bodyValid[k] = ok
	}
	return out
}
