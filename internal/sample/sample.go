package sample

import "apiglass/internal/model"

const (
	GroupUsers   = "Users"
	GroupPosts   = "Posts"
	GroupHTTPBin = "HTTPBin"

	jsonPlaceholder = "https://jsonplaceholder.typicode.com"
	httpBin         = "https://httpbin.org"
)

func idParam(description string) model.Param {
	return model.Param{
		Name:        "id",
		In:          model.ParamInPath,
		Required:    true,
		Type:        model.TypeInteger,
		Description: description,
		Example:     1.0,
	}
}

func bodyParam(required bool, description string, example map[string]any) model.Param {
	return model.Param{
		Name:        "body",
		In:          model.ParamInBody,
		Required:    required,
		Type:        model.TypeObject,
		Description: description,
		Example:     example,
	}
}

// Endpoints returns a fresh copy of the built-in endpoint list.
func Endpoints() []model.Endpoint {
	return []model.Endpoint{
		{Method: "GET", URL: jsonPlaceholder + "/users", Description: "Get all users", Group: GroupUsers},
		{
			Method: "GET", URL: jsonPlaceholder + "/users/{id}", Description: "Get a user by ID", Group: GroupUsers,
			Parameters: []model.Param{idParam("User ID")},
		},
		{
			Method: "POST", URL: jsonPlaceholder + "/users", Description: "Create a new user", Group: GroupUsers,
			Parameters: []model.Param{bodyParam(true, "User data", map[string]any{
				"name":     "John Doe",
				"email":    "john@example.com",
				"username": "johndoe",
			})},
		},

		{Method: "GET", URL: jsonPlaceholder + "/posts", Description: "Get all posts", Group: GroupPosts},
		{
			Method: "GET", URL: jsonPlaceholder + "/posts/{id}", Description: "Get a post by ID", Group: GroupPosts,
			Parameters: []model.Param{idParam("Post ID")},
		},
		{
			Method: "GET", URL: jsonPlaceholder + "/posts/{id}/comments", Description: "Get comments for a post", Group: GroupPosts,
			Parameters: []model.Param{idParam("Post ID")},
		},
		{
			Method: "POST", URL: jsonPlaceholder + "/posts", Description: "Create a new post", Group: GroupPosts,
			Parameters: []model.Param{bodyParam(true, "Post data", map[string]any{
				"title":  "New Post",
				"body":   "Post content",
				"userId": 1.0,
			})},
		},
		{
			Method: "PUT", URL: jsonPlaceholder + "/posts/{id}", Description: "Update a post", Group: GroupPosts,
			Parameters: []model.Param{
				idParam("Post ID"),
				bodyParam(true, "Updated post data", map[string]any{
					"title":  "Updated Post",
					"body":   "Updated content",
					"userId": 1.0,
				}),
			},
		},
		{
			Method: "DELETE", URL: jsonPlaceholder + "/posts/{id}", Description: "Delete a post", Group: GroupPosts,
			Parameters: []model.Param{idParam("Post ID")},
		},

		{Method: "GET", URL: httpBin + "/get", Description: "Test GET request", Group: GroupHTTPBin},
		{
			Method: "GET", URL: httpBin + "/get", Description: "Test GET with query parameter", Group: GroupHTTPBin,
			Parameters: []model.Param{{
				Name:        "param",
				In:          model.ParamInQuery,
				Type:        model.TypeString,
				Description: "Query parameter value",
				Example:     "test",
			}},
		},
		{
			Method: "POST", URL: httpBin + "/post", Description: "Test POST request", Group: GroupHTTPBin,
			Parameters: []model.Param{bodyParam(false, "Request body", map[string]any{"key": "value"})},
		},
		{
			Method: "PUT", URL: httpBin + "/put", Description: "Test PUT request", Group: GroupHTTPBin,
			Parameters: []model.Param{bodyParam(false, "Request body", map[string]any{"key": "updated value"})},
		},
		{Method: "DELETE", URL: httpBin + "/delete", Description: "Test DELETE request", Group: GroupHTTPBin},
		{Method: "GET", URL: httpBin + "/html", Description: "Test HTML response", Group: GroupHTTPBin},
		{Method: "GET", URL: httpBin + "/status/404", Description: "Test 404 error (HTML response)", Group: GroupHTTPBin},
	}
}

// Spec is a small OpenAPI document covering the same API surface, used to
// try out importing.
const Spec = `{
  "openapi": "3.0.0",
  "info": {"title": "Sample API", "version": "1.0.0"},
  "paths": {
    "/users": {
      "get": {"summary": "Get all users", "tags": ["Users"]},
      "post": {"summary": "Create a new user", "tags": ["Users"]}
    },
    "/users/{id}": {
      "get": {
        "summary": "Get a user by ID",
        "tags": ["Users"],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}]
      }
    },
    "/posts": {
      "get": {"summary": "Get all posts", "tags": ["Posts"]},
      "post": {
        "summary": "Create a new post",
        "tags": ["Posts"],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {"type": "object", "example": {"title": "New Post", "body": "Post content", "userId": 1}}
            }
          }
        }
      }
    },
    "/posts/{id}": {
      "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}],
      "get": {"summary": "Get a post by ID", "tags": ["Posts"]},
      "put": {"summary": "Update a post", "tags": ["Posts"]},
      "delete": {"summary": "Delete a post", "tags": ["Posts"]}
    },
    "/posts/{id}/comments": {
      "get": {
        "summary": "Get comments for a post",
        "tags": ["Posts"],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}]
      }
    },
    "/get": {"get": {"summary": "Test GET request", "tags": ["HTTPBin"]}},
    "/post": {"post": {"summary": "Test POST request", "tags": ["HTTPBin"]}},
    "/put": {"put": {"summary": "Test PUT request", "tags": ["HTTPBin"]}},
    "/delete": {"delete": {"summary": "Test DELETE request", "tags": ["HTTPBin"]}},
    "/html": {"get": {"summary": "Test HTML response", "tags": ["HTTPBin"]}},
    "/status/404": {"get": {"summary": "Test 404 error (HTML response)", "tags": ["HTTPBin"]}}
  }
}
`
