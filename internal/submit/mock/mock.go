// Package mock provides an in-memory test double for activity submission.
//
// [Submitter] records every activity it receives and returns the configured
// result. It is safe for concurrent use.
//
// Typical usage:
//
//	s := &mock.Submitter{}
//	s.Result = &submit.Result{Outcome: submit.OutcomeSuccess, Text: "ok"}
//
//	// inject s into the system under test …
//
//	if got := len(s.Activities()); got != 1 {
//	    t.Errorf("expected 1 submission, got %d", got)
//	}
package mock

import (
	"context"
	"sync"

	"github.com/MrWong99/activitymcp/internal/activity"
	"github.com/MrWong99/activitymcp/internal/submit"
)

// Submitter is a configurable test double for the submission client.
type Submitter struct {
	mu         sync.Mutex
	activities []activity.Activity

	// Result is returned by [Submitter.Submit] when Err is nil. When nil, a
	// success result naming the activity's backend and kind is returned.
	Result *submit.Result

	// Err is returned by [Submitter.Submit] when non-nil.
	Err error
}

// Submit records a and returns the configured outcome.
func (s *Submitter) Submit(_ context.Context, a activity.Activity) (*submit.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, a)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &submit.Result{
		Backend: a.Kind().Backend(),
		Kind:    a.Kind(),
		Outcome: submit.OutcomeSuccess,
		Status:  200,
		Text:    string(a.Kind().Backend()) + " Activity submitted!",
	}, nil
}

// Activities returns a copy of every submitted activity in order.
func (s *Submitter) Activities() []activity.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]activity.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Reset clears recorded activities.
func (s *Submitter) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = nil
}
