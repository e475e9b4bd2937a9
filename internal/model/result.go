package model

import "time"

const NetworkErrorText = "Network Error"

// Result is the outcome of one execution. Status 0 means no response was
// received at all; Error then carries the transport message.
type Result struct {
	ID          string
	Status      int
	StatusText  string
	Data        any
	Elapsed     time.Duration
	Error       string
	URL         string
	ContentType string
}

func (r Result) Failed() bool {
	return r.Status == 0
}

func (r Result) Success() bool {
	return r.Status >= 200 && r.Status < 300
}

func (r Result) Millis() int64 {
	return r.Elapsed.Milliseconds()
}

type DisplayMode string

const (
	DisplayHTML DisplayMode = "html"
	DisplayJSON DisplayMode = "json"
	DisplayText DisplayMode = "text"
)
