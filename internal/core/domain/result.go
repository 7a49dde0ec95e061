package domain

import (
	"math"

	"github.com/google/uuid"
)

// OptionResult is one option's tally.
type OptionResult struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	VoteCount  int64     `json:"voteCount"`
	Percentage int       `json:"percentage"`
}

// VoteResult is the user-facing result view for a poll. UserSelection is the
// requesting user's own choice; anonymity only hides selections from other
// users, never from the voter themselves.
type VoteResult struct {
	PollID        uuid.UUID      `json:"pollId"`
	Title         string         `json:"title"`
	Status        PollStatus     `json:"status"`
	IsAnonymous   bool           `json:"isAnonymous"`
	Options       []OptionResult `json:"options"`
	TotalVotes    int64          `json:"totalVotes"`
	UserSelection *uuid.UUID     `json:"userSelection,omitempty"`
}

// Tally computes per-option counts and rounded percentages from the poll's
// counters. Percentages are rounded independently and may not sum to 100.
func (p *Poll) Tally() ([]OptionResult, int64) {
	results := make([]OptionResult, 0, len(p.Options))
	for _, opt := range p.Options {
		pct := 0
		if p.TotalVotes > 0 {
			pct = int(math.Round(float64(opt.VoteCount) / float64(p.TotalVotes) * 100))
		}
		results = append(results, OptionResult{
			ID:         opt.ID,
			Text:       opt.Text,
			VoteCount:  opt.VoteCount,
			Percentage: pct,
		})
	}
	return results, p.TotalVotes
}
