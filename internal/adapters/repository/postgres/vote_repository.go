package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/unimate/campusvote/internal/core/domain"
	"github.com/unimate/campusvote/internal/core/ports"
)

type voteRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewVoteRepository(db *sql.DB, timeout time.Duration) ports.VoteRepository {
	return &voteRepository{
		db:      db,
		timeout: timeout,
	}
}

// CastVote runs the ledger insert and both counter increments in one
// transaction. The UNIQUE (poll_id, user_id) index on votes is the
// vote-once guard: under concurrent casts by the same user exactly one
// insert commits and the rest fail with a unique violation, which is
// surfaced as AlreadyVoted. Nothing is persisted on any failure path.
func (r *voteRepository) CastVote(ctx context.Context, vote *domain.Vote) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	queryVote := `
		INSERT INTO votes (id, poll_id, option_id, user_id, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.ExecContext(ctx, queryVote, vote.ID, vote.PollID, vote.OptionID, vote.UserID, vote.CastAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.VotingClosedError{Reason: domain.ReasonAlreadyVoted}
		}
		return storeErr(fmt.Errorf("failed to insert vote: %w", err))
	}

	queryOption := `
		UPDATE poll_options SET vote_count = vote_count + 1
		WHERE id = $1 AND poll_id = $2
	`
	res, err := tx.ExecContext(ctx, queryOption, vote.OptionID, vote.PollID)
	if err != nil {
		return storeErr(fmt.Errorf("failed to increment option count: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(fmt.Errorf("failed to read affected rows: %w", err))
	}
	if affected == 0 {
		return domain.ErrOptionNotFound
	}

	queryPoll := `
		UPDATE polls SET total_votes = total_votes + 1
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, queryPoll, vote.PollID); err != nil {
		return storeErr(fmt.Errorf("failed to increment total votes: %w", err))
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return &domain.VotingClosedError{Reason: domain.ReasonAlreadyVoted}
		}
		return storeErr(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

func (r *voteRepository) GetUserVote(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, poll_id, option_id, user_id, cast_at
		FROM votes
		WHERE poll_id = $1 AND user_id = $2
	`
	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, pollID, userID).Scan(
		&vote.ID, &vote.PollID, &vote.OptionID, &vote.UserID, &vote.CastAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrVoteNotFound
		}
		return nil, storeErr(fmt.Errorf("failed to get vote: %w", err))
	}
	return &vote, nil
}

func (r *voteRepository) VotedPolls(ctx context.Context, userID uuid.UUID, pollIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	voted := make(map[uuid.UUID]bool, len(pollIDs))
	if len(pollIDs) == 0 {
		return voted, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT poll_id
		FROM votes
		WHERE user_id = $1 AND poll_id = ANY($2)
	`
	rows, err := r.db.QueryContext(ctx, query, userID, pq.Array(pollIDs))
	if err != nil {
		return nil, storeErr(fmt.Errorf("failed to get voted polls: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		var pollID uuid.UUID
		if err := rows.Scan(&pollID); err != nil {
			return nil, storeErr(fmt.Errorf("failed to scan voted poll: %w", err))
		}
		voted[pollID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(fmt.Errorf("error iterating voted polls: %w", err))
	}
	return voted, nil
}
