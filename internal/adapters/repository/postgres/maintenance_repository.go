package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/unimate/campusvote/internal/core/ports"
)

type maintenanceRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewMaintenanceRepository(db *sql.DB, timeout time.Duration) ports.MaintenanceRepository {
	return &maintenanceRepository{
		db:      db,
		timeout: timeout,
	}
}

// RecountPoll rebuilds the option counters and the poll total from the vote
// ledger. The ledger is the source of truth; the counters are a projection.
func (r *maintenanceRepository) RecountPoll(ctx context.Context, pollID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	queryOptions := `
		UPDATE poll_options
		SET vote_count = (SELECT COUNT(*) FROM votes WHERE votes.option_id = poll_options.id)
		WHERE poll_id = $1
	`
	if _, err := tx.ExecContext(ctx, queryOptions, pollID); err != nil {
		return storeErr(fmt.Errorf("failed to recount options for poll %s: %w", pollID, err))
	}

	queryTotal := `
		UPDATE polls
		SET total_votes = (SELECT COUNT(*) FROM votes WHERE votes.poll_id = polls.id)
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, queryTotal, pollID); err != nil {
		return storeErr(fmt.Errorf("failed to recount total for poll %s: %w", pollID, err))
	}

	if err := tx.Commit(); err != nil {
		return storeErr(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}
