package ipware

import (
	"context"
	"sync"
)

// resolveState flattens a Result for go-cmp diffs.
type resolveState struct {
	Found   bool
	Addr    string
	Trusted bool
	Header  string
}

func stateOf(result Result) resolveState {
	state := resolveState{
		Found:   result.Found(),
		Trusted: result.Trusted,
		Header:  result.Header,
	}

	if result.Found() {
		state.Addr = result.Addr.String()
	}

	return state
}

type logEntry struct {
	Msg  string
	Args []any
}

// captureLogger records warning events for assertions.
type captureLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *captureLogger) WarnContext(_ context.Context, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{Msg: msg, Args: args})
}

func (l *captureLogger) snapshot() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}

func (l *captureLogger) eventCount(event string) int {
	count := 0
	for _, entry := range l.snapshot() {
		for i := 0; i+1 < len(entry.Args); i += 2 {
			if entry.Args[i] == "event" && entry.Args[i+1] == event {
				count++
			}
		}
	}
	return count
}

// recordingMetrics counts metric calls for assertions.
type recordingMetrics struct {
	mu        sync.Mutex
	successes map[string]int
	failures  map[string]int
	events    map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		successes: make(map[string]int),
		failures:  make(map[string]int),
		events:    make(map[string]int),
	}
}

func (m *recordingMetrics) RecordResolutionSuccess(header string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes[header]++
}

func (m *recordingMetrics) RecordResolutionFailure(header string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[header]++
}

func (m *recordingMetrics) RecordSecurityEvent(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event]++
}

func (m *recordingMetrics) successCount(header string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.successes[header]
}

func (m *recordingMetrics) failureCount(header string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures[header]
}

func (m *recordingMetrics) eventCount(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[event]
}
