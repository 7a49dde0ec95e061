package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/unimate/campusvote/internal/core/domain"
	"github.com/unimate/campusvote/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type castVoteRequest struct {
	PollID   uuid.UUID `json:"pollId"`
	OptionID uuid.UUID `json:"optionId"`
}

type castVoteResponse struct {
	SelectedOption uuid.UUID `json:"selectedOption"`
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PollID == uuid.Nil || req.OptionID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "pollId and optionId are required")
		return
	}

	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	vote, err := h.service.Cast(r.Context(), ports.CastVoteInput{
		PollID:   req.PollID,
		OptionID: req.OptionID,
		UserID:   userID,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, castVoteResponse{SelectedOption: vote.OptionID})
}

func (h *VoteHandler) MyVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, domain.ErrInvalidPollID)
		return
	}

	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	vote, err := h.service.MyVote(r.Context(), pollID, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, vote)
}
