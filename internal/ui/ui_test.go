package ui

import (
	"math"
	"strings"
	"testing"

	"apiglass/internal/model"
	"apiglass/internal/openapi"
	"apiglass/internal/sample"
	"apiglass/internal/session"
)

var testOptions = openapi.Options{SkipValidation: true}

func sampleSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(testOptions)
	s.LoadSample()
	return s
}

func TestBuildRowsCollapsedByDefault(t *testing.T) {
	s := sampleSession(t)
	rows := buildRows(s.Groups(), s.Endpoints(), "", map[string]bool{})

	if len(rows) != 3 {
		t.Fatalf("expected one row per group, got %d", len(rows))
	}
	want := []string{sample.GroupUsers, sample.GroupPosts, sample.GroupHTTPBin}
	for i, r := range rows {
		if r.kind != rowGroup || r.group != want[i] || r.expanded {
			t.Fatalf("row %d: unexpected %+v", i, r)
		}
	}
	if nthEndpointRow(rows, 1) != -1 {
		t.Fatalf("collapsed list must not expose endpoints")
	}
}

func TestBuildRowsExpandedGroup(t *testing.T) {
	s := sampleSession(t)
	rows := buildRows(s.Groups(), s.Endpoints(), "", map[string]bool{sample.GroupPosts: true})

	var posts int
	for _, r := range rows {
		if r.kind == rowEndpoint {
			if r.group != sample.GroupPosts {
				t.Fatalf("endpoint from closed group %q shown", r.group)
			}
			posts++
		}
	}
	if posts == 0 || rows[1].kind != rowGroup || !rows[1].expanded {
		t.Fatalf("expected posts group open, got %+v", rows)
	}

	first := nthEndpointRow(rows, 1)
	if first != 2 {
		t.Fatalf("expected first endpoint right after the posts header, got %d", first)
	}
	if got := s.Endpoints()[rows[first].index]; got.Group != sample.GroupPosts {
		t.Fatalf("unexpected endpoint %s", got)
	}
}

func TestBuildRowsFilterOpensMatchingGroups(t *testing.T) {
	s := sampleSession(t)
	rows := buildRows(s.Groups(), s.Endpoints(), "httpbin", map[string]bool{})

	if len(rows) == 0 || rows[0].group != sample.GroupHTTPBin || !rows[0].expanded {
		t.Fatalf("expected only the httpbin group, got %+v", rows)
	}
	for _, r := range rows {
		if r.group != sample.GroupHTTPBin {
			t.Fatalf("unexpected group %q in filtered rows", r.group)
		}
	}
	if rows[0].count != len(rows)-1 {
		t.Fatalf("group count %d does not match %d rows", rows[0].count, len(rows)-1)
	}

	if rows := buildRows(s.Groups(), s.Endpoints(), "zzzzqqq", nil); len(rows) != 0 {
		t.Fatalf("expected no rows, got %+v", rows)
	}
}

func TestFilterEndpoints(t *testing.T) {
	eps := []model.Endpoint{
		{Method: "GET", URL: "https://x.test/users", Description: "List users"},
		{Method: "DELETE", URL: "https://x.test/posts/{id}", Description: "Delete post"},
		{Method: "GET", URL: "https://x.test/status"},
	}

	if got := filterEndpoints(eps, "  "); len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Fatalf("blank filter should keep order, got %v", got)
	}

	got := filterEndpoints(eps, "DELETE")
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected the delete endpoint, got %v", got)
	}

	got = filterEndpoints(eps, "usr")
	if len(got) == 0 || got[0] != 0 {
		t.Fatalf("expected users endpoint first, got %v", got)
	}
}

func TestAvailablePanes(t *testing.T) {
	tests := []struct {
		name   string
		params []model.Param
		want   []focusPane
	}{
		{name: "none"},
		{
			name:   "path only",
			params: []model.Param{{Name: "id", In: model.ParamInPath}},
			want:   []focusPane{panePath},
		},
		{
			name: "query and body",
			params: []model.Param{
				{Name: "body", In: model.ParamInBody},
				{Name: "q", In: model.ParamInQuery},
				{Name: "X-Token", In: "header"},
			},
			want: []focusPane{paneQuery, paneBody},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := availablePanes(model.Endpoint{Parameters: tc.params})
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestIgnoredParams(t *testing.T) {
	ep := model.Endpoint{Parameters: []model.Param{
		{Name: "id", In: model.ParamInPath},
		{Name: "X-Token", In: "header"},
		{Name: "session", In: "cookie"},
	}}
	if got := ignoredParams(ep); got != "X-Token (header), session (cookie)" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestParamLine(t *testing.T) {
	p := model.Param{Name: "id", In: model.ParamInPath, Type: model.TypeInteger, Required: true, Example: 1.0}

	line := paramLine(p, model.Value{}, 4)
	if !strings.HasPrefix(line, "*id  ") || !strings.Contains(line, colorDim+"1"+colorReset) {
		t.Fatalf("expected dimmed example, got %q", line)
	}

	line = paramLine(p, model.NumberValue(5), 4)
	if !strings.Contains(line, colorGreen+"5"+colorReset) {
		t.Fatalf("expected set value, got %q", line)
	}

	line = paramLine(p, model.Value{Kind: model.ValueNaN, Number: math.NaN()}, 4)
	if !strings.Contains(line, colorRed+"NaN"+colorReset) {
		t.Fatalf("expected NaN marked, got %q", line)
	}

	opt := model.Param{Name: "q", Type: model.TypeString, Description: "search"}
	if line := paramLine(opt, model.Value{}, 1); !strings.HasPrefix(line, " q ") || !strings.Contains(line, "search") {
		t.Fatalf("expected description hint, got %q", line)
	}
}

func TestExampleText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{2.5, "2.5"},
		{true, "true"},
		{map[string]any{"a": 1.0}, `{"a":1}`},
	}
	for _, tc := range tests {
		if got := exampleText(tc.in); got != tc.want {
			t.Fatalf("exampleText(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestEndpointLine(t *testing.T) {
	ep := model.Endpoint{Method: "GET", URL: "https://x.test/users/{id}", Description: "Get a user by id"}

	line := endpointLine(3, ep, 120)
	if !strings.HasPrefix(line, "  3 "+colorBlue+"GET    "+colorReset) {
		t.Fatalf("unexpected prefix %q", line)
	}
	if !strings.Contains(line, colorCyan+"{id}"+colorReset) || !strings.Contains(line, "Get a user by id") {
		t.Fatalf("expected placeholder highlight and description, got %q", line)
	}

	if line := endpointLine(12, ep, 30); strings.Contains(line, "Get a user") || !strings.HasPrefix(line, "    ") {
		t.Fatalf("narrow line without number expected, got %q", line)
	}
}

func TestColorizeStatus(t *testing.T) {
	tests := []struct {
		res   model.Result
		color string
	}{
		{model.Result{Status: 200, StatusText: "OK"}, colorGreen},
		{model.Result{Status: 404, StatusText: "Not Found"}, colorYellow},
		{model.Result{Status: 503, StatusText: "Service Unavailable"}, colorRed},
		{model.Result{Status: 0, StatusText: model.NetworkErrorText}, colorRed},
	}
	for _, tc := range tests {
		got := colorizeStatus(tc.res)
		if !strings.HasPrefix(got, tc.color) || !strings.Contains(got, tc.res.StatusText) {
			t.Fatalf("status %d: unexpected %q", tc.res.Status, got)
		}
	}
}

func TestTruncateAndPad(t *testing.T) {
	if got := padRight("GET", methodWidth); got != "GET    " {
		t.Fatalf("unexpected pad %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Fatalf("unexpected truncate %q", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestSplitCommand(t *testing.T) {
	if got := splitCommand("   "); len(got) != 1 || got[0] != "vi" {
		t.Fatalf("expected vi fallback, got %v", got)
	}
	got := splitCommand("code --wait")
	if len(got) != 2 || got[0] != "code" || got[1] != "--wait" {
		t.Fatalf("unexpected split %v", got)
	}
}

func TestImportStatus(t *testing.T) {
	s := session.New(testOptions)
	imp, err := s.Import(t.Context(), sample.Spec)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	msg := importStatus(imp)
	if !strings.HasPrefix(msg, "imported 15 endpoints (openapi 3.0.0, json)") {
		t.Fatalf("unexpected status %q", msg)
	}
}
