package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/unimate/campusvote/internal/core/domain"
	"github.com/unimate/campusvote/internal/core/ports"
)

type pollRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPollRepository(db *sql.DB, timeout time.Duration) ports.PollRepository {
	return &pollRepository{
		db:      db,
		timeout: timeout,
	}
}

func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	queryPoll := `
		INSERT INTO polls (id, title, description, category, starts_at, ends_at, is_active, is_anonymous, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.ExecContext(ctx, queryPoll,
		poll.ID, poll.Title, poll.Description, poll.Category,
		poll.StartTime, poll.EndTime, poll.IsActive, poll.IsAnonymous,
		poll.CreatedBy, poll.CreatedAt,
	)
	if err != nil {
		return storeErr(fmt.Errorf("failed to insert poll: %w", err))
	}

	queryOption := `
		INSERT INTO poll_options (id, poll_id, position, text, description)
		VALUES ($1, $2, $3, $4, $5)
	`
	stmt, err := tx.PrepareContext(ctx, queryOption)
	if err != nil {
		return storeErr(fmt.Errorf("failed to prepare option statement: %w", err))
	}
	defer stmt.Close()

	for _, opt := range poll.Options {
		_, err = stmt.ExecContext(ctx, opt.ID, opt.PollID, opt.Position, opt.Text, opt.Description)
		if err != nil {
			return storeErr(fmt.Errorf("failed to insert option: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	queryPoll := `
		SELECT id, title, description, category, starts_at, ends_at, is_active, is_anonymous, created_by, total_votes, created_at
		FROM polls
		WHERE id = $1
	`

	var poll domain.Poll
	err := r.db.QueryRowContext(ctx, queryPoll, id).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.Category,
		&poll.StartTime, &poll.EndTime, &poll.IsActive, &poll.IsAnonymous,
		&poll.CreatedBy, &poll.TotalVotes, &poll.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrPollNotFound
		}
		return nil, storeErr(fmt.Errorf("failed to get poll: %w", err))
	}

	options, err := r.fetchOptions(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	poll.Options = options

	return &poll, nil
}

func (r *pollRepository) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, title, description, category, starts_at, ends_at, is_active, is_anonymous, created_by, total_votes, created_at
		FROM polls
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr(fmt.Errorf("failed to get all polls: %w", err))
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

func (r *pollRepository) GetActive(ctx context.Context, now time.Time) ([]*domain.Poll, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, title, description, category, starts_at, ends_at, is_active, is_anonymous, created_by, total_votes, created_at
		FROM polls
		WHERE is_active = TRUE AND starts_at <= $1 AND ends_at > $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, storeErr(fmt.Errorf("failed to get active polls: %w", err))
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

func (r *pollRepository) scanPolls(ctx context.Context, rows *sql.Rows) ([]*domain.Poll, error) {
	var polls []*domain.Poll
	for rows.Next() {
		var poll domain.Poll
		err := rows.Scan(
			&poll.ID, &poll.Title, &poll.Description, &poll.Category,
			&poll.StartTime, &poll.EndTime, &poll.IsActive, &poll.IsAnonymous,
			&poll.CreatedBy, &poll.TotalVotes, &poll.CreatedAt,
		)
		if err != nil {
			return nil, storeErr(fmt.Errorf("failed to scan poll: %w", err))
		}
		polls = append(polls, &poll)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(fmt.Errorf("error iterating polls: %w", err))
	}

	for _, poll := range polls {
		options, err := r.fetchOptions(ctx, poll.ID)
		if err != nil {
			return nil, err
		}
		poll.Options = options
	}
	return polls, nil
}

func (r *pollRepository) fetchOptions(ctx context.Context, pollID uuid.UUID) ([]domain.PollOption, error) {
	queryOptions := `
		SELECT id, poll_id, position, text, description, vote_count
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, queryOptions, pollID)
	if err != nil {
		return nil, storeErr(fmt.Errorf("failed to get poll options: %w", err))
	}
	defer rows.Close()

	var options []domain.PollOption
	for rows.Next() {
		var opt domain.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Position, &opt.Text, &opt.Description, &opt.VoteCount); err != nil {
			return nil, storeErr(fmt.Errorf("failed to scan option: %w", err))
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(fmt.Errorf("error iterating options: %w", err))
	}
	return options, nil
}
