package session

import (
	"context"
	"sync"

	"apiglass/internal/httpclient"
	"apiglass/internal/model"
)

// Card is the live state of one endpoint: its inputs and latest result.
type Card struct {
	Endpoint model.Endpoint

	mu       sync.Mutex
	values   *httpclient.Values
	result   *model.Result
	inflight int

	// seq numbers executions; applied is the seq of the shown result
	seq     uint64
	applied uint64
}

func newCard(ep model.Endpoint) *Card {
	vals := httpclient.NewValues()
	vals.Prefill(ep)
	return &Card{Endpoint: ep, values: vals}
}

// SetInput stores typed text for the named parameter. It reports false
// only for body text that does not parse; the last good body is kept.
func (c *Card) SetInput(name, raw string) bool {
	p, ok := c.Endpoint.Param(name)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p.In == model.ParamInBody {
		return c.values.SetBodyText(name, raw)
	}
	c.values.SetInput(p, raw)
	return true
}

func (c *Card) Value(name string) model.Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.Get(name)
}

func (c *Card) BodyText(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.BodyText(name)
}

func (c *Card) BodyValid(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.BodyValid(name)
}

// Request resolves the request the card would send right now.
func (c *Card) Request() (httpclient.Request, error) {
	c.mu.Lock()
	vals := c.values.Clone()
	c.mu.Unlock()
	return httpclient.BuildRequest(c.Endpoint, vals)
}

func (c *Card) Result() (model.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return model.Result{}, false
	}
	return *c.result, true
}

func (c *Card) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// Execute builds and sends the request. Several executions may overlap;
// a completion older than the result already shown is dropped, and the
// second return value reports whether this one was applied.
func (c *Card) Execute(ctx context.Context, exec Executor) (model.Result, bool) {
	c.mu.Lock()
	c.seq++
	id := c.seq
	vals := c.values.Clone()
	c.inflight++
	c.mu.Unlock()

	var res model.Result
	req, err := httpclient.BuildRequest(c.Endpoint, vals)
	if err != nil {
		res = model.Result{
			StatusText: model.NetworkErrorText,
			Error:      err.Error(),
			URL:        c.Endpoint.URL,
		}
	} else {
		res = exec.Execute(ctx, req.Method, req.URL, req.Body)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if id <= c.applied {
		return res, false
	}
	c.applied = id
	c.result = &res
	return res, true
}
