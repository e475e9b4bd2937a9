package httpclient

import (
	"reflect"
	"testing"

	"apiglass/internal/model"
)

func TestSetInputCoercion(t *testing.T) {
	tests := []struct {
		name string
		typ  model.ParamType
		raw  string
		want model.Value
	}{
		{name: "integer", typ: model.TypeInteger, raw: "42", want: model.NumberValue(42)},
		{name: "integer trimmed", typ: model.TypeInteger, raw: " 7 ", want: model.NumberValue(7)},
		{name: "integer garbage", typ: model.TypeInteger, raw: "abc", want: model.NaNValue()},
		{name: "integer fraction", typ: model.TypeInteger, raw: "1.5", want: model.NumberValue(1)},
		{name: "integer trailing text", typ: model.TypeInteger, raw: "12abc", want: model.NumberValue(12)},
		{name: "integer exponent", typ: model.TypeInteger, raw: "1e3", want: model.NumberValue(1)},
		{name: "integer signed", typ: model.TypeInteger, raw: "+5", want: model.NumberValue(5)},
		{name: "integer negative", typ: model.TypeInteger, raw: " -8px", want: model.NumberValue(-8)},
		{name: "integer sign only", typ: model.TypeInteger, raw: "-", want: model.NaNValue()},
		{name: "integer leading text", typ: model.TypeInteger, raw: "x12", want: model.NaNValue()},
		{name: "number", typ: model.TypeNumber, raw: "2.5", want: model.NumberValue(2.5)},
		{name: "number garbage", typ: model.TypeNumber, raw: "x", want: model.NaNValue()},
		{name: "string kept verbatim", typ: model.TypeString, raw: " a ", want: model.TextValue(" a ")},
		{name: "boolean as text", typ: model.TypeBoolean, raw: "true", want: model.TextValue("true")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vals := NewValues()
			vals.SetInput(model.Param{Name: "p", In: model.ParamInQuery, Type: tc.typ}, tc.raw)
			if got := vals.Get("p"); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestSetInputEmptyClears(t *testing.T) {
	p := model.Param{Name: "userId", In: model.ParamInQuery, Type: model.TypeInteger}
	vals := NewValues()
	vals.SetInput(p, "3")
	vals.SetInput(p, "")
	if vals.Get("userId").Defined() {
		t.Fatalf("expected value to be cleared")
	}
}

func TestSetBodyTextKeepsLastValid(t *testing.T) {
	vals := NewValues()

	if !vals.SetBodyText("body", `{"title":"foo"}`) {
		t.Fatalf("expected valid body")
	}
	if vals.SetBodyText("body", `{"title":`) {
		t.Fatalf("expected invalid body")
	}
	if vals.BodyValid("body") {
		t.Fatalf("expected invalid marker")
	}
	if vals.BodyText("body") != `{"title":` {
		t.Fatalf("raw text must follow typing, got %q", vals.BodyText("body"))
	}
	want := model.JSONValue(map[string]any{"title": "foo"})
	if got := vals.Get("body"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected last valid value, got %+v", got)
	}

	if !vals.SetBodyText("body", "  ") || vals.Get("body").Defined() {
		t.Fatalf("blank body must clear the value")
	}
}

func TestPrefillAndClone(t *testing.T) {
	ep := model.Endpoint{
		Method:     "POST",
		URL:        "https://x.test/users",
		Parameters: []model.Param{{Name: "body", In: model.ParamInBody, Example: map[string]any{"name": "Jane"}}},
	}

	vals := NewValues()
	vals.Prefill(ep)
	if vals.BodyText("body") != "{\n  \"name\": \"Jane\"\n}" || !vals.BodyValid("body") {
		t.Fatalf("unexpected prefill text %q", vals.BodyText("body"))
	}

	clone := vals.Clone()
	vals.SetBodyText("body", `{"name":"John"}`)
	if got := clone.Get("body").JSON; !reflect.DeepEqual(got, map[string]any{"name": "Jane"}) {
		t.Fatalf("clone changed with original: %#v", got)
	}
}
