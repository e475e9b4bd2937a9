package httpclient

import (
	"math"
	"testing"

	"apiglass/internal/model"
)

var postByID = model.Endpoint{
	Method: "get",
	URL:    "https://jsonplaceholder.typicode.com/posts/{id}",
	Parameters: []model.Param{
		{Name: "id", In: model.ParamInPath, Required: true, Type: model.TypeInteger},
	},
}

var listPosts = model.Endpoint{
	Method: "GET",
	URL:    "https://jsonplaceholder.typicode.com/posts",
	Parameters: []model.Param{
		{Name: "userId", In: model.ParamInQuery, Type: model.TypeInteger},
		{Name: "q", In: model.ParamInQuery, Type: model.TypeString},
		{Name: "page", In: model.ParamInQuery, Type: model.TypeInteger},
	},
}

func TestBuildRequestPath(t *testing.T) {
	vals := NewValues()
	vals.SetInput(postByID.Parameters[0], "5")

	req, err := BuildRequest(postByID, vals)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if req.Method != "GET" || req.URL != "https://jsonplaceholder.typicode.com/posts/5" || req.Body != nil {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestBuildRequestUnresolvedPlaceholderStays(t *testing.T) {
	req, err := BuildRequest(postByID, NewValues())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if req.URL != postByID.URL {
		t.Fatalf("expected template URL, got %s", req.URL)
	}
}

func TestBuildRequestQuery(t *testing.T) {
	tests := []struct {
		name string
		vals map[string]model.Value
		want string
	}{
		{name: "none", want: listPosts.URL},
		{name: "zero is sent", vals: map[string]model.Value{"userId": model.NumberValue(0)}, want: listPosts.URL + "?userId=0"},
		{name: "empty string skipped", vals: map[string]model.Value{"q": model.TextValue("")}, want: listPosts.URL},
		{
			name: "declaration order and escaping",
			vals: map[string]model.Value{"page": model.NumberValue(2), "q": model.TextValue("a b&c/d!")},
			want: listPosts.URL + "?q=a%20b%26c%2Fd!&page=2",
		},
		{name: "nan is sent", vals: map[string]model.Value{"userId": model.NaNValue()}, want: listPosts.URL + "?userId=NaN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vals := NewValues()
			for k, v := range tc.vals {
				vals.Set(k, v)
			}
			req, err := BuildRequest(listPosts, vals)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if req.URL != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, req.URL)
			}
		})
	}
}

func TestBuildRequestQuerySeparator(t *testing.T) {
	ep := model.Endpoint{
		Method:     "GET",
		URL:        "https://httpbin.org/get?fixed=1",
		Parameters: []model.Param{{Name: "param", In: model.ParamInQuery}},
	}
	vals := NewValues()
	vals.Set("param", model.TextValue("test"))

	req, err := BuildRequest(ep, vals)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if req.URL != "https://httpbin.org/get?fixed=1&param=test" {
		t.Fatalf("unexpected url %s", req.URL)
	}
}

func TestBuildRequestBody(t *testing.T) {
	ep := model.Endpoint{
		Method: "POST",
		URL:    "https://jsonplaceholder.typicode.com/posts",
		Parameters: []model.Param{
			{Name: "body", In: model.ParamInBody, Type: model.TypeObject, Example: map[string]any{"title": "foo", "userId": 1.0}},
		},
	}

	t.Run("absent", func(t *testing.T) {
		req, err := BuildRequest(ep, NewValues())
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if req.Body != nil {
			t.Fatalf("expected nil body, got %s", req.Body)
		}
	})

	t.Run("prefilled example", func(t *testing.T) {
		vals := NewValues()
		vals.Prefill(ep)
		req, err := BuildRequest(ep, vals)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if string(req.Body) != `{"title":"foo","userId":1}` {
			t.Fatalf("unexpected body %s", req.Body)
		}
	})

	t.Run("nan becomes null", func(t *testing.T) {
		vals := NewValues()
		vals.Set("body", model.Value{Kind: model.ValueNumber, Number: math.NaN()})
		req, err := BuildRequest(ep, vals)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if string(req.Body) != "null" {
			t.Fatalf("unexpected body %s", req.Body)
		}
	})
}

func TestBuildRequestIgnoresOtherLocations(t *testing.T) {
	ep := model.Endpoint{
		Method:     "GET",
		URL:        "https://x.test/a",
		Parameters: []model.Param{{Name: "X-Trace", In: "header"}},
	}
	vals := NewValues()
	vals.Set("X-Trace", model.TextValue("1"))

	req, err := BuildRequest(ep, vals)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if req.URL != "https://x.test/a" || req.Body != nil {
		t.Fatalf("unexpected request %+v", req)
	}
}
