package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one user's immutable selection of a single option on a single
// poll. The store guarantees at most one vote per (poll, user) pair.
type Vote struct {
	ID       uuid.UUID `json:"id"`
	PollID   uuid.UUID `json:"pollId"`
	OptionID uuid.UUID `json:"optionId"`
	UserID   uuid.UUID `json:"userId"`
	CastAt   time.Time `json:"castAt"`
}
