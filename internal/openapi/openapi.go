package openapi

import (
	"context"

	"apiglass/internal/model"
)

type Options struct {
	BodyPolicy BodyPolicy

	// FallbackBaseURL replaces DefaultBaseURL for documents without servers.
	FallbackBaseURL string

	// SkipValidation turns off the structural check; it only produces
	// warnings anyway.
	SkipValidation bool
}

// Imported is the outcome of a successful import.
type Imported struct {
	Endpoints []model.Endpoint
	Title     string
	Version   string
	Dialect   string
	Format    string
	Warnings  []string
}

// Import turns raw spec text into endpoints. Parse and Normalize errors are
// returned as is; everything else is reported through Warnings.
func Import(ctx context.Context, text string, opts Options) (*Imported, error) {
	doc, err := Parse(text)
	if err != nil {
		return nil, err
	}

	endpoints, clashes, err := normalize(doc, opts)
	if err != nil {
		return nil, err
	}

	out := &Imported{
		Endpoints: endpoints,
		Title:     doc.Title(),
		Version:   doc.Version(),
		Dialect:   doc.Dialect(),
		Format:    doc.Format,
		Warnings:  clashes,
	}
	for _, ep := range endpoints {
		out.Warnings = append(out.Warnings, ep.CheckPlaceholders()...)
	}
	if !opts.SkipValidation {
		out.Warnings = append(out.Warnings, Validate(ctx, doc)...)
	}
	return out, nil
}
