package jira

import (
	"context"
	"sync"

	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/logger"
)

// Sender pushes one test status to the tracker. *Reporter implements it.
type Sender interface {
	ReportWithConfig(ctx context.Context, testID string, status core.TestStatus)
}

// Store collects the outcome of every test case run in a session until it
// is flushed. A failure is sticky: later passes of the same test case do
// not overwrite it. Store is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	status map[string]core.TestStatus
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{status: make(map[string]core.TestStatus)}
}

// Record runs body and stores its outcome under testID. An error returned by
// body, a panic or a runtime.Goexit (t.FailNow, require) marks the test as
// failed; errors and panics are handed back to the caller unchanged.
func (s *Store) Record(testID string, body func() error) (err error) {
	completed := false
	defer func() {
		if completed {
			return
		}
		s.fail(testID)
		if r := recover(); r != nil {
			panic(r)
		}
	}()

	err = body()
	completed = true
	if err != nil {
		s.fail(testID)
		return err
	}
	s.pass(testID)
	return nil
}

func (s *Store) fail(testID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status[testID] = core.StatusFail
}

func (s *Store) pass(testID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.status[testID]; !ok {
		s.status[testID] = core.StatusPass
	}
}

// Status returns the recorded status of testID, StatusUnrecorded if none.
func (s *Store) Status(testID string) core.TestStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status[testID]
}

// Len returns the number of recorded test cases.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.status)
}

// Snapshot returns a copy of the recorded statuses.
func (s *Store) Snapshot() map[string]core.TestStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]core.TestStatus, len(s.status))
	for id, st := range s.status {
		out[id] = st
	}
	return out
}

// FlushAll sends every recorded status through r and empties the store.
// Each test case is reported independently; the store is cleared even when
// it was empty or the context is cancelled.
func (s *Store) FlushAll(ctx context.Context, r Sender) {
	s.mu.Lock()
	pending := s.status
	s.status = make(map[string]core.TestStatus)
	s.mu.Unlock()

	if len(pending) > 0 {
		logger.Info("Reporting %d test cases to Jira", len(pending))
	}
	for id, st := range pending {
		r.ReportWithConfig(ctx, id, st)
	}
}
