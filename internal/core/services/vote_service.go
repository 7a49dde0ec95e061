package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/unimate/campusvote/internal/core/domain"
	"github.com/unimate/campusvote/internal/core/ports"
)

type voteService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewVoteService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

// Cast records a vote. Window and pause checks happen here; the
// vote-once-per-user rule is left to the store's uniqueness constraint so
// concurrent casts by the same user cannot both land.
func (s *voteService) Cast(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, error) {
	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, err
	}

	if _, ok := poll.Option(input.OptionID); !ok {
		return nil, domain.ErrOptionNotFound
	}

	now := time.Now()
	if status := poll.StatusAt(now); status != domain.StatusActive {
		return nil, domain.ClosedForStatus(status)
	}

	vote := &domain.Vote{
		ID:       uuid.New(),
		PollID:   input.PollID,
		OptionID: input.OptionID,
		UserID:   input.UserID,
		CastAt:   now,
	}

	if err := s.voteRepo.CastVote(ctx, vote); err != nil {
		return nil, err
	}

	return vote, nil
}

func (s *voteService) MyVote(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error) {
	return s.voteRepo.GetUserVote(ctx, pollID, userID)
}
