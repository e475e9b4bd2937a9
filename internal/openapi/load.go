package openapi

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"apiglass/internal/errdef"
)

const defaultTimeout = 10 * time.Second

// maxSpecSize bounds remote documents.
const maxSpecSize = 32 << 20

// Load reads raw spec text from an http(s) URL or a local file. A leading
// "@" marks a file path explicitly.
func Load(ctx context.Context, source string) (string, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "":
		return "", errdef.New(errdef.CodeConfig, "no spec source given")
	case isRemote(source):
		return fetch(ctx, source)
	default:
		path := strings.TrimPrefix(source, "@")
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errdef.Wrap(errdef.CodeFilesystem, err, "read spec %s", path)
		}
		return string(data), nil
	}
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func fetch(ctx context.Context, url string) (string, error) {
	client := &http.Client{Timeout: defaultTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errdef.Wrap(errdef.CodeHTTP, err, "GET %s", url)
	}
	req.Header.Set("Accept", "application/json, application/x-yaml, text/yaml")

	resp, err := client.Do(req)
	if err != nil {
		return "", errdef.Wrap(errdef.CodeHTTP, err, "GET %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errdef.New(errdef.CodeHTTP, "GET %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSpecSize))
	if err != nil {
		return "", errdef.Wrap(errdef.CodeHTTP, err, "read %s", url)
	}
	return string(data), nil
}
