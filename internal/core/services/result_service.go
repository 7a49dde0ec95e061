package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/unimate/campusvote/internal/core/domain"
	"github.com/unimate/campusvote/internal/core/ports"
)

type resultService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewResultService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.ResultService {
	return &resultService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

// ProjectResults returns aggregate tallies plus the requesting user's own
// selection. Anonymity hides selections from other users, not from the voter
// themselves, so userSelection is filled in regardless of the flag.
func (s *resultService) ProjectResults(ctx context.Context, pollID, userID uuid.UUID) (*domain.VoteResult, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	options, total := poll.Tally()

	result := &domain.VoteResult{
		PollID:      poll.ID,
		Title:       poll.Title,
		Status:      poll.StatusAt(time.Now()),
		IsAnonymous: poll.IsAnonymous,
		Options:     options,
		TotalVotes:  total,
	}

	vote, err := s.voteRepo.GetUserVote(ctx, pollID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrVoteNotFound) {
			return result, nil
		}
		return nil, err
	}
	result.UserSelection = &vote.OptionID

	return result, nil
}
