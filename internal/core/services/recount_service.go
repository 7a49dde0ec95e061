package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/unimate/campusvote/internal/core/ports"
)

type recountService struct {
	pollRepo        ports.PollRepository
	maintenanceRepo ports.MaintenanceRepository
}

func NewRecountService(pollRepo ports.PollRepository, maintenanceRepo ports.MaintenanceRepository) ports.RecountService {
	return &recountService{
		pollRepo:        pollRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

// RecountAll rebuilds the per-option counters and poll totals of every poll
// from the vote ledger, one goroutine per poll.
func (s *recountService) RecountAll(ctx context.Context) error {
	polls, err := s.pollRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch all polls: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(polls))

	for _, poll := range polls {
		wg.Add(1)
		go func(pID uuid.UUID) {
			defer wg.Done()
			if err := s.maintenanceRepo.RecountPoll(ctx, pID); err != nil {
				errChan <- fmt.Errorf("failed to recount poll %s: %w", pID, err)
			}
		}(poll.ID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	return nil
}
