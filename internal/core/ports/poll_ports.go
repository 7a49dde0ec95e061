package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/unimate/campusvote/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	GetAll(ctx context.Context) ([]*domain.Poll, error)
	// GetActive returns polls with isActive set whose window contains now,
	// newest-created-first.
	GetActive(ctx context.Context, now time.Time) ([]*domain.Poll, error)
}

type CreateOptionInput struct {
	Text        string
	Description string
}

type CreatePollInput struct {
	Title       string
	Description string
	Category    domain.Category
	Options     []CreateOptionInput
	StartTime   time.Time
	EndTime     time.Time
	IsAnonymous bool
	CreatedBy   uuid.UUID
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string, userID uuid.UUID) (*domain.AnnotatedPoll, error)
	ListActivePolls(ctx context.Context, userID uuid.UUID) ([]*domain.AnnotatedPoll, error)
	ListPolls(ctx context.Context, userID uuid.UUID) ([]*domain.AnnotatedPoll, error)
}
