package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/unimate/campusvote/internal/core/domain"
)

type VoteRepository interface {
	// CastVote inserts the ledger entry and bumps the option and poll
	// counters as one atomic unit. A duplicate (pollId, userId) pair yields
	// VotingClosedError with reason AlreadyVoted.
	CastVote(ctx context.Context, vote *domain.Vote) error
	// GetUserVote returns the user's vote on a poll, or ErrVoteNotFound.
	GetUserVote(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error)
	// VotedPolls reports which of the given polls the user has voted on.
	VotedPolls(ctx context.Context, userID uuid.UUID, pollIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type CastVoteInput struct {
	PollID   uuid.UUID
	OptionID uuid.UUID
	UserID   uuid.UUID
}

type VoteService interface {
	Cast(ctx context.Context, input CastVoteInput) (*domain.Vote, error)
	MyVote(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error)
}
