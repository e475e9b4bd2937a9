package telemetry

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		envEndpoint:    "localhost:4317",
		envInsecure:    "yes",
		envService:     "api-test",
		envDialTimeout: "2s",
		envHeaders:     "x-token=abc, =skipped ,x-team = core",
	}

	cfg := Default()
	cfg.Headers = map[string]string{"x-token": "old"}
	ApplyEnv(&cfg, func(k string) string { return env[k] })

	if !cfg.Enabled() || !cfg.Insecure || cfg.ServiceName != "api-test" || cfg.DialTimeout != 2*time.Second {
		t.Fatalf("unexpected config %+v", cfg)
	}
	want := map[string]string{"x-token": "abc", "x-team": "core"}
	if !reflect.DeepEqual(cfg.Headers, want) {
		t.Fatalf("unexpected headers %v", cfg.Headers)
	}
}

func TestApplyEnvIgnoresInvalid(t *testing.T) {
	env := map[string]string{
		envInsecure:    "maybe",
		envDialTimeout: "-1s",
	}
	cfg := Default()
	ApplyEnv(&cfg, func(k string) string { return env[k] })

	if cfg.Enabled() || cfg.Insecure || cfg.DialTimeout != 5*time.Second {
		t.Fatalf("invalid values must be ignored: %+v", cfg)
	}
}

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Default())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestParseHeadersEmpty(t *testing.T) {
	if ParseHeaders(" , ") != nil {
		t.Fatalf("expected nil headers")
	}
	if MergeHeaders(nil, nil) != nil {
		t.Fatalf("expected nil merge")
	}
}
