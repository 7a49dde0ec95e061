package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/unimate/campusvote/internal/core/domain"
)

type ResultService interface {
	// ProjectResults assembles the result view for the requesting user.
	ProjectResults(ctx context.Context, pollID, userID uuid.UUID) (*domain.VoteResult, error)
}

// MaintenanceRepository rebuilds the denormalized counters from the vote
// ledger, repairing any drift.
type MaintenanceRepository interface {
	RecountPoll(ctx context.Context, pollID uuid.UUID) error
}

type RecountService interface {
	RecountAll(ctx context.Context) error
}
