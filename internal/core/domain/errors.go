package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("option not found for this poll")
	ErrVoteNotFound   = errors.New("user did not vote on this poll")
	ErrInvalidPollID  = errors.New("invalid poll id")

	// ErrStoreUnavailable marks a transient store failure (timeout,
	// connection loss). Safe to retry: a cast that actually landed will be
	// answered with AlreadyVoted, never double-counted.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports a malformed poll definition. Not retryable; fixed
// at creation time.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid poll: %s %s", e.Field, e.Reason)
}

// CloseReason says why a cast was refused.
type CloseReason string

const (
	ReasonNotStarted   CloseReason = "not_started"
	ReasonEnded        CloseReason = "ended"
	ReasonPaused       CloseReason = "paused"
	ReasonAlreadyVoted CloseReason = "already_voted"
)

// VotingClosedError is returned when a user may not vote on a poll right
// now. The reason distinguishes window, pause and duplicate-vote refusals.
type VotingClosedError struct {
	Reason CloseReason
}

func (e *VotingClosedError) Error() string {
	switch e.Reason {
	case ReasonNotStarted:
		return "voting has not started yet"
	case ReasonEnded:
		return "voting has ended"
	case ReasonPaused:
		return "voting is paused"
	case ReasonAlreadyVoted:
		return "user has already voted"
	}
	return "voting closed"
}

// ClosedForStatus maps a non-active poll status to its refusal.
func ClosedForStatus(status PollStatus) *VotingClosedError {
	switch status {
	case StatusUpcoming:
		return &VotingClosedError{Reason: ReasonNotStarted}
	case StatusEnded:
		return &VotingClosedError{Reason: ReasonEnded}
	default:
		return &VotingClosedError{Reason: ReasonPaused}
	}
}
