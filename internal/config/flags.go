package config

import (
	"flag"
	"strings"
)

// Flags holds command line overrides. Only flags that were actually set
// are applied.
type Flags struct {
	SpecURL    string
	SpecFile   string
	Sample     bool
	Theme      string
	BodyPolicy string
	Editor     string
	DebugLog   string
}

func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.SpecURL, "spec-url", "", "OpenAPI spec URL (http/https)")
	fs.StringVar(&f.SpecFile, "spec-file", "", "Path to local OpenAPI spec file")
	fs.BoolVar(&f.Sample, "sample", false, "Start with the built-in sample endpoints")
	fs.StringVar(&f.Theme, "theme", "", "Color theme: dark or light")
	fs.StringVar(&f.BodyPolicy, "body-policy", "", "Which body parameter wins when an operation declares several: last or first")
	fs.StringVar(&f.Editor, "editor", "", "Editor used for request bodies (defaults to $EDITOR)")
	fs.StringVar(&f.DebugLog, "debug-log", "", "Write a debug log to this file")
}

func (f *Flags) Apply(fs *flag.FlagSet, cfg *Config) error {
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	// spec-url beats spec-file when both are given
	switch {
	case set["spec-url"] && strings.TrimSpace(f.SpecURL) != "":
		cfg.Spec = strings.TrimSpace(f.SpecURL)
	case set["spec-file"] && strings.TrimSpace(f.SpecFile) != "":
		cfg.Spec = FileSource(f.SpecFile)
	}
	if set["sample"] {
		cfg.Sample = f.Sample
	}
	if set["theme"] {
		cfg.Theme = strings.ToLower(strings.TrimSpace(f.Theme))
	}
	if set["body-policy"] {
		cfg.BodyPolicy = strings.ToLower(strings.TrimSpace(f.BodyPolicy))
	}
	if set["editor"] {
		cfg.Editor = f.Editor
	}
	if set["debug-log"] {
		cfg.DebugLog = f.DebugLog
	}
	return cfg.Validate()
}
