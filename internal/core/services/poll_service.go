package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/unimate/campusvote/internal/core/domain"
	"github.com/unimate/campusvote/internal/core/ports"
)

type pollService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewPollService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.PollService {
	return &pollService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	pollID := uuid.New()
	now := time.Now()

	poll := &domain.Poll{
		ID:          pollID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsActive:    true,
		IsAnonymous: input.IsAnonymous,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
	}

	for i, opt := range input.Options {
		if opt.Text == "" {
			continue
		}
		poll.Options = append(poll.Options, domain.PollOption{
			ID:          uuid.New(),
			PollID:      pollID,
			Position:    i,
			Text:        opt.Text,
			Description: opt.Description,
		})
	}

	if err := poll.Validate(); err != nil {
		return nil, err
	}

	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string, userID uuid.UUID) (*domain.AnnotatedPoll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	voted, err := s.voteRepo.VotedPolls(ctx, userID, []uuid.UUID{pollID})
	if err != nil {
		return nil, err
	}

	return poll.Annotate(time.Now(), voted[pollID]), nil
}

func (s *pollService) ListActivePolls(ctx context.Context, userID uuid.UUID) ([]*domain.AnnotatedPoll, error) {
	now := time.Now()
	polls, err := s.pollRepo.GetActive(ctx, now)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, polls, userID, now)
}

func (s *pollService) ListPolls(ctx context.Context, userID uuid.UUID) ([]*domain.AnnotatedPoll, error) {
	polls, err := s.pollRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, polls, userID, time.Now())
}

func (s *pollService) annotate(ctx context.Context, polls []*domain.Poll, userID uuid.UUID, now time.Time) ([]*domain.AnnotatedPoll, error) {
	ids := make([]uuid.UUID, 0, len(polls))
	for _, p := range polls {
		ids = append(ids, p.ID)
	}

	voted, err := s.voteRepo.VotedPolls(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	annotated := make([]*domain.AnnotatedPoll, 0, len(polls))
	for _, p := range polls {
		annotated = append(annotated, p.Annotate(now, voted[p.ID]))
	}
	return annotated, nil
}
