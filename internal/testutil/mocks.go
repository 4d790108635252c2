package testutil

import (
	"sync"
)

// LoggedError is one call captured by RecordingSink.
type LoggedError struct {
	Msg string
	Err error
}

// RecordingSink captures LogError calls. It satisfies scheduler.ErrorSink.
type RecordingSink struct {
	mu      sync.Mutex
	entries []LoggedError
}

// NewRecordingSink creates an empty RecordingSink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// LogError records msg and err.
func (s *RecordingSink) LogError(msg string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, LoggedError{Msg: msg, Err: err})
}

// Len returns the number of recorded calls.
func (s *RecordingSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entries returns a copy of the recorded calls.
func (s *RecordingSink) Entries() []LoggedError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]LoggedError(nil), s.entries...)
}

// Recorder keeps the order in which named events happened, e.g. which task
// body ran on each tick.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends name.
func (r *Recorder) Record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

// Events returns a copy of the recorded names in order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Count returns how many times name was recorded.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == name {
			n++
		}
	}
	return n
}
