package logging

import (
	"io"
	"log"
	"os"
	"sync"
)

// The TUI owns the terminal, so the debug log goes to a file or nowhere.
var (
	mu     sync.RWMutex
	logger = log.New(io.Discard, "", 0)
)

// Setup points the debug log at path (truncated). An empty path discards.
// The returned func closes the file.
func Setup(path string) (func() error, error) {
	if path == "" {
		SetOutput(io.Discard)
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	SetOutput(f)
	return func() error {
		SetOutput(io.Discard)
		return f.Close()
	}, nil
}

func SetOutput(w io.Writer) {
	flags := log.LstdFlags | log.Lmicroseconds
	if w == io.Discard {
		flags = 0
	}

	mu.Lock()
	logger = log.New(w, "", flags)
	mu.Unlock()
}

func Logf(format string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Printf(format, args...)
}

func Errorf(format string, args ...any) {
	Logf("error: "+format, args...)
}
