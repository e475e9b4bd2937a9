package model

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestPlaceholders(t *testing.T) {
	ep := Endpoint{Method: "GET", URL: "https://x.test/posts/{id}/comments/{commentId}"}
	got := ep.Placeholders()
	if len(got) != 2 || got[0] != "id" || got[1] != "commentId" {
		t.Fatalf("unexpected placeholders: %v", got)
	}
}

func TestCheckPlaceholders(t *testing.T) {
	ok := Endpoint{
		Method:     "GET",
		URL:        "https://x.test/users/{id}",
		Parameters: []Param{{Name: "id", In: ParamInPath}, {Name: "q", In: ParamInQuery}},
	}
	if problems := ok.CheckPlaceholders(); len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}

	bad := Endpoint{
		Method:     "GET",
		URL:        "https://x.test/users/{id}",
		Parameters: []Param{{Name: "userId", In: ParamInPath}},
	}
	problems := bad.CheckPlaceholders()
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", problems)
	}
	if !strings.Contains(problems[0], "{id}") || !strings.Contains(problems[1], "userId") {
		t.Fatalf("unexpected problems: %v", problems)
	}
}

func TestBodyParam(t *testing.T) {
	ep := Endpoint{Parameters: []Param{{Name: "id", In: ParamInPath}, {Name: "body", In: ParamInBody}}}
	p, ok := ep.BodyParam()
	if !ok || p.Name != "body" {
		t.Fatalf("expected body param, got %+v %v", p, ok)
	}
	if _, ok := (Endpoint{}).BodyParam(); ok {
		t.Fatalf("expected no body param on empty endpoint")
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{name: "text", v: TextValue("a b"), want: "a b"},
		{name: "integer", v: NumberValue(5), want: "5"},
		{name: "zero", v: NumberValue(0), want: "0"},
		{name: "fraction", v: NumberValue(1.25), want: "1.25"},
		{name: "negative zero", v: NumberValue(math.Copysign(0, -1)), want: "0"},
		{name: "below exponent threshold", v: NumberValue(1e20), want: "100000000000000000000"},
		{name: "large", v: NumberValue(1e21), want: "1e+21"},
		{name: "large fraction", v: NumberValue(-1.5e22), want: "-1.5e+22"},
		{name: "small", v: NumberValue(0.000001), want: "0.000001"},
		{name: "tiny", v: NumberValue(1.5e-7), want: "1.5e-7"},
		{name: "huge", v: NumberValue(1e300), want: "1e+300"},
		{name: "nan", v: NaNValue(), want: "NaN"},
		{name: "json string", v: JSONValue("x"), want: "x"},
		{name: "json object", v: JSONValue(map[string]any{"a": 1.0}), want: `{"a":1}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.String(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValueBlankAndDefined(t *testing.T) {
	if (Value{}).Defined() {
		t.Fatalf("zero value must be unset")
	}
	if !TextValue("").Blank() {
		t.Fatalf("empty text must be blank")
	}
	if NumberValue(0).Blank() {
		t.Fatalf("zero number must not be blank")
	}
	if NaNValue().Blank() || !NaNValue().Defined() {
		t.Fatalf("NaN must be defined and non-blank")
	}
}

func TestValueMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Value{Kind: ValueNumber, Number: math.NaN()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("expected null for NaN, got %s", b)
	}

	b, err = json.Marshal(JSONValue(map[string]any{"name": "x"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"name":"x"}` {
		t.Fatalf("unexpected body: %s", b)
	}
}

func TestResultHelpers(t *testing.T) {
	r := Result{Status: 0, StatusText: NetworkErrorText}
	if !r.Failed() || r.Success() {
		t.Fatalf("expected failed result")
	}
	r = Result{Status: 204}
	if r.Failed() || !r.Success() {
		t.Fatalf("expected success result")
	}
}
