// Package submissions holds listener submissions in memory. It is the one
// write path the service carries and is an explicit prototype: contents do
// not survive a restart.
package submissions

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalid reports a submission missing required fields.
var ErrInvalid = errors.New("invalid submission")

// Submission is one listener-submitted entry.
type Submission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Topic       string    `json:"topic,omitempty"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Store is a mutex-guarded in-memory submission list.
type Store struct {
	mu    sync.RWMutex
	items []Submission
	now   func() time.Time
}

// NewStore creates an empty store. A nil clock uses time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

// Create validates and stores a submission, assigning its id and timestamp.
func (s *Store) Create(sub Submission) (Submission, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Message = strings.TrimSpace(sub.Message)

	switch {
	case sub.Name == "":
		return Submission{}, fmt.Errorf("%w: name is required", ErrInvalid)
	case sub.Email == "" || !strings.Contains(sub.Email, "@"):
		return Submission{}, fmt.Errorf("%w: a valid email is required", ErrInvalid)
	case sub.Message == "":
		return Submission{}, fmt.Errorf("%w: message is required", ErrInvalid)
	}

	sub.ID = uuid.NewString()
	sub.SubmittedAt = s.now()

	s.mu.Lock()
	s.items = append(s.items, sub)
	s.mu.Unlock()

	return sub, nil
}

// List returns all submissions, newest first.
func (s *Store) List() []Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Submission, len(s.items))
	for i, sub := range s.items {
		out[len(s.items)-1-i] = sub
	}
	return out
}
