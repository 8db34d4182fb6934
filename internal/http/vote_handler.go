package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"pollcast/internal/platform/apperr"
	"pollcast/internal/worker"
)

type castVoteRequest struct {
	ID uuid.UUID `json:"id"`
}

// @Summary     Cast a vote
// @Tags        vote
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      string           true  "Poll ID (UUID)"
// @Param       request  body      castVoteRequest  true  "Option ID"
// @Success     201      {object}  vote.Vote
// @Failure     400      {object}  map[string]string  "invalid id or option"
// @Failure     403      {object}  map[string]string  "already voted"
// @Failure     404      {object}  map[string]string  "option not found"
// @Router      /poll/cast/{id} [post]
func (h *Handler) handleCastVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseUUIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "id must be a valid UUID", err))
		return
	}

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.ID == uuid.Nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "option id is required", nil))
		return
	}

	u := userFromCtx(r)
	v, err := h.voteSvc.Cast(r.Context(), u.ID, pollID, req.ID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	select {
	case h.voteCh <- worker.VoteEvent{Kind: worker.EventCast, PollID: pollID, OptionID: v.OptionID, UserID: u.ID}:
	default:
	}

	writeJSON(w, http.StatusCreated, v)
}

// @Summary     Retract a vote
// @Tags        vote
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Option ID (UUID)"
// @Success     200  {object}  map[string]int64
// @Failure     400  {object}  map[string]string  "invalid id"
// @Failure     404  {object}  map[string]string  "option not found"
// @Router      /poll/retract/{id} [delete]
func (h *Handler) handleRetractVote(w http.ResponseWriter, r *http.Request) {
	optionID, err := parseUUIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "id must be a valid UUID", err))
		return
	}

	u := userFromCtx(r)
	deleted, err := h.voteSvc.Retract(r.Context(), u.ID, optionID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	if deleted > 0 {
		select {
		case h.voteCh <- worker.VoteEvent{Kind: worker.EventRetract, OptionID: optionID, UserID: u.ID}:
		default:
		}
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
