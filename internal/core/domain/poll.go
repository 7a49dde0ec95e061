package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryStudentElection Category = "student-election"
	CategoryCampusDecision  Category = "campus-decision"
	CategoryFeedback        Category = "feedback"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryStudentElection, CategoryCampusDecision, CategoryFeedback:
		return true
	}
	return false
}

// PollStatus is derived from the poll's time window and activation flag.
// It is never persisted; compute it from the current time on every read.
type PollStatus string

const (
	StatusUpcoming PollStatus = "upcoming"
	StatusActive   PollStatus = "active"
	StatusEnded    PollStatus = "ended"
	StatusPaused   PollStatus = "paused"
)

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
	MinOptions        = 2
	MaxOptions        = 10
)

type Poll struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    Category     `json:"category"`
	Options     []PollOption `json:"options"`
	StartTime   time.Time    `json:"startTime"`
	EndTime     time.Time    `json:"endTime"`
	IsActive    bool         `json:"isActive"`
	IsAnonymous bool         `json:"isAnonymous"`
	CreatedBy   uuid.UUID    `json:"createdBy"`
	TotalVotes  int64        `json:"totalVotes"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type PollOption struct {
	ID          uuid.UUID `json:"id"`
	PollID      uuid.UUID `json:"-"`
	Position    int       `json:"-"`
	Text        string    `json:"text"`
	Description string    `json:"description,omitempty"`
	VoteCount   int64     `json:"voteCount"`
}

// StatusAt derives the poll status from the time window. The window takes
// precedence over the activation flag: an ended poll stays ended no matter
// what an administrator toggles.
func (p *Poll) StatusAt(now time.Time) PollStatus {
	if now.Before(p.StartTime) {
		return StatusUpcoming
	}
	if !now.Before(p.EndTime) {
		return StatusEnded
	}
	if p.IsActive {
		return StatusActive
	}
	return StatusPaused
}

// CanVote reports whether a user who has (or has not) already voted may cast
// a vote at the given instant.
func (p *Poll) CanVote(now time.Time, hasVoted bool) bool {
	return p.StatusAt(now) == StatusActive && !hasVoted
}

// TimeRemaining is the time left until the voting window closes, clamped to
// zero once the poll has ended.
func (p *Poll) TimeRemaining(now time.Time) time.Duration {
	if !now.Before(p.EndTime) {
		return 0
	}
	return p.EndTime.Sub(now)
}

// Option looks up an option by id.
func (p *Poll) Option(optionID uuid.UUID) (*PollOption, bool) {
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			return &p.Options[i], true
		}
	}
	return nil, false
}

// Validate enforces the poll invariants independently of storage, so they
// hold identically at the API boundary and in tests.
func (p *Poll) Validate() error {
	if p.Title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if len(p.Title) > MaxTitleLen {
		return &ValidationError{Field: "title", Reason: "exceeds 200 characters"}
	}
	if len(p.Description) > MaxDescriptionLen {
		return &ValidationError{Field: "description", Reason: "exceeds 1000 characters"}
	}
	if !p.Category.Valid() {
		return &ValidationError{Field: "category", Reason: "must be student-election, campus-decision or feedback"}
	}
	if len(p.Options) < MinOptions || len(p.Options) > MaxOptions {
		return &ValidationError{Field: "options", Reason: "must contain between 2 and 10 options"}
	}
	seen := make(map[uuid.UUID]struct{}, len(p.Options))
	for _, opt := range p.Options {
		if opt.Text == "" {
			return &ValidationError{Field: "options", Reason: "option text is required"}
		}
		if _, dup := seen[opt.ID]; dup {
			return &ValidationError{Field: "options", Reason: "option ids must be unique"}
		}
		seen[opt.ID] = struct{}{}
	}
	if !p.EndTime.After(p.StartTime) {
		return &ValidationError{Field: "endTime", Reason: "must be after startTime"}
	}
	return nil
}

// AnnotatedPoll is a poll decorated with per-requester voting state, as the
// poll listing endpoints return it.
type AnnotatedPoll struct {
	Poll
	Status        PollStatus `json:"status"`
	UserHasVoted  bool       `json:"userHasVoted"`
	CanVote       bool       `json:"canVote"`
	TimeRemaining int64      `json:"timeRemaining"` // seconds
}

// Annotate computes the derived per-requester fields at the given instant.
func (p *Poll) Annotate(now time.Time, hasVoted bool) *AnnotatedPoll {
	return &AnnotatedPoll{
		Poll:          *p,
		Status:        p.StatusAt(now),
		UserHasVoted:  hasVoted,
		CanVote:       p.CanVote(now, hasVoted),
		TimeRemaining: int64(p.TimeRemaining(now).Seconds()),
	}
}
