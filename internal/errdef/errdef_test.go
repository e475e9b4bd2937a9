package errdef

import (
	"errors"
	"io"
	"testing"
)

func TestWrapKeepsChain(t *testing.T) {
	err := Wrap(CodeHTTP, io.EOF, "read %s", "body")
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected wrapped io.EOF")
	}
	if got := err.Error(); got != "read body: EOF" {
		t.Fatalf("unexpected message %q", got)
	}
	if CodeOf(err) != CodeHTTP || !Is(err, CodeHTTP) {
		t.Fatalf("expected http code, got %s", CodeOf(err))
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(CodeParse, nil, "x") != nil {
		t.Fatalf("expected nil")
	}
}

func TestNewWithoutArgsKeepsPercent(t *testing.T) {
	err := New("", "100% broken")
	if err.Error() != "100% broken" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if CodeOf(err) != CodeUnknown {
		t.Fatalf("expected unknown code, got %s", CodeOf(err))
	}
}

func TestSentinelIdentity(t *testing.T) {
	sentinel := New(CodeSpec, "no endpoints")
	wrapped := Wrap(CodeUI, sentinel, "import")
	if !errors.Is(wrapped, sentinel) {
		t.Fatalf("expected errors.Is to find sentinel")
	}
	if CodeOf(wrapped) != CodeUI {
		t.Fatalf("expected outermost code, got %s", CodeOf(wrapped))
	}
	if Is(nil, CodeSpec) || Message(nil) != "" {
		t.Fatalf("nil handling broken")
	}
}
