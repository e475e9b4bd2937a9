package session

import (
	"context"
	"sync"

	"apiglass/internal/errdef"
	"apiglass/internal/logging"
	"apiglass/internal/model"
	"apiglass/internal/openapi"
	"apiglass/internal/sample"
)

const SourceSample = "sample"

// Executor runs one resolved request. *httpclient.Client satisfies it.
type Executor interface {
	Execute(ctx context.Context, method, url string, body []byte) model.Result
}

type ExecutorFunc func(ctx context.Context, method, url string, body []byte) model.Result

func (f ExecutorFunc) Execute(ctx context.Context, method, url string, body []byte) model.Result {
	return f(ctx, method, url, body)
}

// Group is a display group: a tag and the indexes of its endpoints.
type Group struct {
	Name    string
	Indexes []int
}

// Session owns the loaded endpoint list. Loading replaces it wholesale.
type Session struct {
	mu     sync.RWMutex
	cards  []*Card
	source string
	opts   openapi.Options
}

func New(opts openapi.Options) *Session {
	return &Session{opts: opts}
}

func (s *Session) LoadSample() {
	s.replace(sample.Endpoints(), SourceSample)
	logging.Logf("loaded %d sample endpoints", s.Len())
}

// Import parses and normalizes text and swaps in the result. On error the
// current list is left as it was.
func (s *Session) Import(ctx context.Context, text string) (*openapi.Imported, error) {
	imp, err := openapi.Import(ctx, text, s.opts)
	if err != nil {
		logging.Errorf("import: %v", err)
		return nil, err
	}

	source := imp.Title
	if source == "" {
		source = imp.Dialect + " " + imp.Version
	}
	s.replace(imp.Endpoints, source)

	logging.Logf("imported %d endpoints from %q (%s)", len(imp.Endpoints), source, imp.Format)
	for _, w := range imp.Warnings {
		logging.Logf("import warning: %s", w)
	}
	return imp, nil
}

// ImportFrom loads spec text from a URL or file and imports it.
func (s *Session) ImportFrom(ctx context.Context, source string) (*openapi.Imported, error) {
	text, err := openapi.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	imp, err := s.Import(ctx, text)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeOf(err), err, "import %s", source)
	}
	return imp, nil
}

func (s *Session) replace(endpoints []model.Endpoint, source string) {
	cards := make([]*Card, len(endpoints))
	for i, ep := range endpoints {
		cards[i] = newCard(ep)
	}

	s.mu.Lock()
	s.cards = cards
	s.source = source
	s.mu.Unlock()
}

// Source names what the current list came from.
func (s *Session) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

func (s *Session) Endpoints() []model.Endpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Endpoint, len(s.cards))
	for i, c := range s.cards {
		out[i] = c.Endpoint
	}
	return out
}

// Card returns the card at i, or nil when out of range.
func (s *Session) Card(i int) *Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.cards) {
		return nil
	}
	return s.cards[i]
}

// Groups lists groups in the order their first endpoint appears.
func (s *Session) Groups() []Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Group
	pos := map[string]int{}
	for i, c := range s.cards {
		name := c.Endpoint.Group
		j, ok := pos[name]
		if !ok {
			j = len(out)
			pos[name] = j
			out = append(out, Group{Name: name})
		}
		out[j].Indexes = append(out[j].Indexes, i)
	}
	return out
}
