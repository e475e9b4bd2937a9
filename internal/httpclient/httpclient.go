package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html/charset"

	"apiglass/internal/logging"
	"apiglass/internal/model"
)

const tracerName = "apiglass/httpclient"

// Client executes resolved requests. It has no timeout of its own; the
// context and the transport defaults decide how long a request may take.
type Client struct {
	http   *http.Client
	tracer trace.Tracer
}

func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{http: hc, tracer: otel.Tracer(tracerName)}
}

// Execute sends the request and folds every outcome into a Result.
// Transport failures become Status 0 with a "Network Error" status text.
func (c *Client) Execute(ctx context.Context, method, rawURL string, body []byte) model.Result {
	if ctx == nil {
		ctx = context.Background()
	}
	id := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, "HTTP "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", rawURL),
			attribute.String("apiglass.request_id", id),
			attribute.Int("http.request.body.size", len(body)),
		),
	)
	defer span.End()

	res := c.do(ctx, method, rawURL, body)
	res.ID = id

	if res.Failed() {
		span.RecordError(errors.New(res.Error))
		span.SetStatus(codes.Error, res.Error)
		logging.Errorf("%s %s %s: %s (%dms)", id, method, rawURL, res.Error, res.Millis())
		return res
	}

	span.SetAttributes(attribute.Int("http.response.status_code", res.Status))
	if res.Status >= 500 {
		span.SetStatus(codes.Error, res.StatusText)
	}
	logging.Logf("%s %s %s -> %d (%dms)", id, method, rawURL, res.Status, res.Millis())
	return res
}

func (c *Client) do(ctx context.Context, method, rawURL string, body []byte) model.Result {
	res := model.Result{URL: rawURL}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return networkFailure(res, err, time.Since(start))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return networkFailure(res, err, time.Since(start))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	res.Elapsed = time.Since(start)
	if err != nil {
		return networkFailure(res, err, res.Elapsed)
	}

	res.Status = resp.StatusCode
	res.StatusText = reasonPhrase(resp)
	res.ContentType = resp.Header.Get("Content-Type")
	res.Data = parseBody(decodeText(raw, res.ContentType))
	return res
}

func networkFailure(res model.Result, err error, elapsed time.Duration) model.Result {
	res.Status = 0
	res.StatusText = model.NetworkErrorText
	res.Data = nil
	res.Error = err.Error()
	res.Elapsed = elapsed
	return res
}

func reasonPhrase(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// decodeText converts the body to UTF-8 when the response names another
// charset. Invalid sequences are replaced.
func decodeText(raw []byte, contentType string) string {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		label := strings.ToLower(strings.TrimSpace(params["charset"]))
		if label != "" && label != "utf-8" && label != "utf8" {
			if enc, _ := charset.Lookup(label); enc != nil {
				if out, err := enc.NewDecoder().Bytes(raw); err == nil {
					raw = out
				}
			}
		}
	}
	return strings.ToValidUTF8(string(raw), "\uFFFD")
}

// parseBody returns the decoded JSON value, or the text itself when it is
// not a single JSON document.
func parseBody(text string) any {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return text
	}
	return v
}
