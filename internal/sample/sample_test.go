package sample

import (
	"context"
	"testing"

	"apiglass/internal/openapi"
)

func TestEndpointsPlaceholdersMatchPathParams(t *testing.T) {
	eps := Endpoints()
	if len(eps) != 17 {
		t.Fatalf("expected 17 sample endpoints, got %d", len(eps))
	}
	for _, ep := range eps {
		if problems := ep.CheckPlaceholders(); len(problems) > 0 {
			t.Fatalf("%s: %v", ep, problems)
		}
		bodies := 0
		for _, p := range ep.Parameters {
			if p.In == "body" {
				bodies++
			}
		}
		if bodies > 1 {
			t.Fatalf("%s has %d body parameters", ep, bodies)
		}
	}
}

func TestEndpointsReturnsFreshCopy(t *testing.T) {
	a := Endpoints()
	a[0].URL = "changed"
	a[1].Parameters[0].Name = "changed"

	b := Endpoints()
	if b[0].URL == "changed" || b[1].Parameters[0].Name == "changed" {
		t.Fatalf("sample list shares state between calls")
	}
}

func TestSpecImports(t *testing.T) {
	imp, err := openapi.Import(context.Background(), Spec, openapi.Options{SkipValidation: true})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(imp.Endpoints) != 15 {
		t.Fatalf("expected 15 endpoints, got %d", len(imp.Endpoints))
	}
	first := imp.Endpoints[0]
	if first.String() != "GET https://api.example.com/users" || first.Group != GroupUsers {
		t.Fatalf("unexpected first endpoint %s (%s)", first, first.Group)
	}
	if imp.Title != "Sample API" || len(imp.Warnings) != 0 {
		t.Fatalf("unexpected import %+v", imp)
	}

	put := imp.Endpoints[6]
	if put.Method != "PUT" || len(put.Parameters) != 1 || put.Parameters[0].Name != "id" {
		t.Fatalf("path-level parameter not inherited: %+v", put)
	}
}
