package logger

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"autoap/pkg/globals"
)

// Action-script processes are short-lived, so the only place recent history
// can accumulate is a file shared between invocations.
const maxEntries = 200

type ring struct {
	mu    sync.Mutex
	path  string
	lines []string
}

func newRing(path string) *ring {
	return &ring{path: path, lines: loadLines(path)}
}

func (r *ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines = append(r.lines, strings.TrimRight(string(p), "\n"))
	if len(r.lines) > maxEntries {
		r.lines = r.lines[len(r.lines)-maxEntries:]
	}

	if data, err := json.Marshal(r.lines); err == nil {
		os.WriteFile(r.path, data, 0644)
	}
	return len(p), nil
}

// Recent returns up to n of the most recent log lines recorded by any
// invocation, oldest first.
func Recent(n int) []string {
	lines := loadLines(globals.LogsPath)
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

func loadLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var lines []string
	json.Unmarshal(data, &lines)
	return lines
}
