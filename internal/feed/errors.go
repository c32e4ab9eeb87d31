package feed

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an id absent from the current snapshot. It means the
// snapshot is fine but the identifier does not exist; callers map it to 404,
// never to an upstream failure.
var ErrNotFound = errors.New("item not found")

// SourceError records the failure of a single feed source attempt.
type SourceError struct {
	URL string
	Err error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// FetchError means no configured source was reachable or returned a usable
// response. It carries every per-source failure; Unwrap exposes the first
// real cause rather than a generic aggregate.
type FetchError struct {
	Attempts []SourceError
}

func (e *FetchError) Error() string {
	if len(e.Attempts) == 0 {
		return "feed fetch failed: no sources configured"
	}
	return fmt.Sprintf("feed fetch failed (%d sources tried): %v", len(e.Attempts), e.Attempts[0])
}

func (e *FetchError) Unwrap() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[0].Err
}

// ParseError means a source responded but its body was not well-formed feed
// markup. Callers treat it like a fetch failure, but it is logged distinctly.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("feed parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
