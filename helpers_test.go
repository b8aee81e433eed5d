package main

import (
	"context"
	"sync"
)

// stubInvoker is a canned worker for tests. It records the input it was
// handed so pipeline tests can assert on what the analysis stage received.
type stubInvoker struct {
	output string
	err    error

	mu        sync.Mutex
	calls     int
	lastInput string
}

func (s *stubInvoker) Invoke(_ context.Context, input string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastInput = input
	return s.output, s.err
}

func (s *stubInvoker) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubInvoker) input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastInput
}

// panicInvoker simulates a worker that blows up instead of returning.
type panicInvoker struct{}

func (panicInvoker) Invoke(context.Context, string) (string, error) {
	panic("worker exploded")
}

func mustTopics(topics ...string) TopicSet {
	ts, err := NewTopicSet(topics)
	if err != nil {
		panic(err)
	}
	return ts
}
