package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger is a trace-level JSON logger whose output a test can inspect.
// It is safe for loggers shared with worker goroutines.
type TestLogger struct {
	*zerolog.Logger
	out *lockedBuffer
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewTestLogger creates a TestLogger. The global level is lowered to trace
// for the duration of the test.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	out := &lockedBuffer{}
	logger := zerolog.New(out).Level(zerolog.TraceLevel)
	return &TestLogger{Logger: &logger, out: out}
}

// Output returns everything logged so far.
func (tl *TestLogger) Output() string {
	return tl.out.String()
}

// Entries decodes the logged JSON lines, oldest first.
func (tl *TestLogger) Entries(t testing.TB) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(tl.Output()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		entries = append(entries, entry)
	}
	return entries
}

// Find returns the first entry with the given message, or nil.
func (tl *TestLogger) Find(t testing.TB, message string) map[string]any {
	t.Helper()
	for _, entry := range tl.Entries(t) {
		if entry[zerolog.MessageFieldName] == message {
			return entry
		}
	}
	return nil
}

// AssertContains fails the test when substr was never logged.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !strings.Contains(tl.Output(), substr) {
		t.Errorf("log output does not contain %q\n%s", substr, tl.Output())
	}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
