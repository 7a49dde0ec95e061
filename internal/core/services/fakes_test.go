package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/unimate/campusvote/internal/core/domain"
)

// fakeStore backs the repository fakes with the same semantics the real
// store guarantees: a unique (pollId, userId) constraint and counter
// updates that land atomically with the ledger insert.
type fakeStore struct {
	mu    sync.Mutex
	polls map[uuid.UUID]*domain.Poll
	votes map[uuid.UUID]map[uuid.UUID]*domain.Vote // pollID -> userID -> vote

	failWith error // when set, every call fails with this error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		polls: make(map[uuid.UUID]*domain.Poll),
		votes: make(map[uuid.UUID]map[uuid.UUID]*domain.Vote),
	}
}

func (s *fakeStore) clonePoll(p *domain.Poll) *domain.Poll {
	cp := *p
	cp.Options = append([]domain.PollOption(nil), p.Options...)
	return &cp
}

type fakePollRepo struct {
	store *fakeStore
}

func (r *fakePollRepo) Save(ctx context.Context, poll *domain.Poll) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return r.store.failWith
	}
	r.store.polls[poll.ID] = r.store.clonePoll(poll)
	return nil
}

func (r *fakePollRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return nil, r.store.failWith
	}
	poll, ok := r.store.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return r.store.clonePoll(poll), nil
}

func (r *fakePollRepo) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return nil, r.store.failWith
	}
	polls := make([]*domain.Poll, 0, len(r.store.polls))
	for _, p := range r.store.polls {
		polls = append(polls, r.store.clonePoll(p))
	}
	sortNewestFirst(polls)
	return polls, nil
}

func (r *fakePollRepo) GetActive(ctx context.Context, now time.Time) ([]*domain.Poll, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return nil, r.store.failWith
	}
	var polls []*domain.Poll
	for _, p := range r.store.polls {
		if p.IsActive && !now.Before(p.StartTime) && now.Before(p.EndTime) {
			polls = append(polls, r.store.clonePoll(p))
		}
	}
	sortNewestFirst(polls)
	return polls, nil
}

func sortNewestFirst(polls []*domain.Poll) {
	for i := 1; i < len(polls); i++ {
		for j := i; j > 0 && polls[j].CreatedAt.After(polls[j-1].CreatedAt); j-- {
			polls[j], polls[j-1] = polls[j-1], polls[j]
		}
	}
}

type fakeVoteRepo struct {
	store *fakeStore
}

func (r *fakeVoteRepo) CastVote(ctx context.Context, vote *domain.Vote) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return r.store.failWith
	}

	byUser := r.store.votes[vote.PollID]
	if byUser == nil {
		byUser = make(map[uuid.UUID]*domain.Vote)
		r.store.votes[vote.PollID] = byUser
	}
	if _, exists := byUser[vote.UserID]; exists {
		return &domain.VotingClosedError{Reason: domain.ReasonAlreadyVoted}
	}

	poll, ok := r.store.polls[vote.PollID]
	if !ok {
		return domain.ErrPollNotFound
	}
	opt, ok := poll.Option(vote.OptionID)
	if !ok {
		return domain.ErrOptionNotFound
	}

	v := *vote
	byUser[vote.UserID] = &v
	opt.VoteCount++
	poll.TotalVotes++
	return nil
}

func (r *fakeVoteRepo) GetUserVote(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return nil, r.store.failWith
	}
	vote, ok := r.store.votes[pollID][userID]
	if !ok {
		return nil, domain.ErrVoteNotFound
	}
	v := *vote
	return &v, nil
}

func (r *fakeVoteRepo) VotedPolls(ctx context.Context, userID uuid.UUID, pollIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return nil, r.store.failWith
	}
	voted := make(map[uuid.UUID]bool, len(pollIDs))
	for _, pollID := range pollIDs {
		if _, ok := r.store.votes[pollID][userID]; ok {
			voted[pollID] = true
		}
	}
	return voted, nil
}

type fakeMaintenanceRepo struct {
	store *fakeStore
}

func (r *fakeMaintenanceRepo) RecountPoll(ctx context.Context, pollID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return r.store.failWith
	}
	poll, ok := r.store.polls[pollID]
	if !ok {
		return domain.ErrPollNotFound
	}
	counts := make(map[uuid.UUID]int64)
	var total int64
	for _, v := range r.store.votes[pollID] {
		counts[v.OptionID]++
		total++
	}
	for i := range poll.Options {
		poll.Options[i].VoteCount = counts[poll.Options[i].ID]
	}
	poll.TotalVotes = total
	return nil
}
