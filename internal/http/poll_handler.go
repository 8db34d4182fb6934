package api

import (
	"encoding/json"
	"net/http"

	"pollcast/internal/domain/poll"
	"pollcast/internal/platform/apperr"
)

type pollOption struct {
	Option string `json:"option"`
}

type createPollRequest struct {
	Question string       `json:"question"`
	Options  []pollOption `json:"options"`
}

type editPollRequest struct {
	Question *string      `json:"question"`
	Options  []pollOption `json:"options"`
}

// @Summary     Create a poll
// @Tags        poll
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      createPollRequest  true  "Question and at least two options"
// @Success     201      {object}  poll.Poll
// @Failure     400      {object}  map[string]string  "invalid input"
// @Failure     401      {object}  map[string]string  "unauthorized"
// @Router      /poll/create [post]
func (h *Handler) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	u := userFromCtx(r)
	p, err := h.pollSvc.Create(r.Context(), u.ID, req.Question, optionTexts(req.Options))
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// @Summary     List polls
// @Tags        poll
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}   poll.Poll
// @Failure     401  {object}  map[string]string  "unauthorized"
// @Router      /poll [get]
func (h *Handler) handleListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.pollSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, polls)
}

// @Summary     Get a poll
// @Tags        poll
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Poll ID (UUID)"
// @Success     200  {object}  poll.Poll
// @Failure     400  {object}  map[string]string  "invalid id"
// @Failure     404  {object}  map[string]string  "poll not found"
// @Router      /poll/{id} [get]
func (h *Handler) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "id must be a valid UUID", err))
		return
	}

	p, err := h.pollSvc.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleEditPoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "id must be a valid UUID", err))
		return
	}

	var req editPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	in := poll.EditInput{Question: req.Question}
	if req.Options != nil {
		in.Options = optionTexts(req.Options)
	}

	p, err := h.pollSvc.Edit(r.Context(), id, in)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// @Summary     Delete a poll
// @Tags        poll
// @Security    BearerAuth
// @Param       id   path      string  true  "Poll ID (UUID)"
// @Success     204
// @Failure     403  {object}  map[string]string  "not the creator"
// @Failure     404  {object}  map[string]string  "poll not found"
// @Router      /poll/{id} [delete]
func (h *Handler) handleDeletePoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "id must be a valid UUID", err))
		return
	}

	u := userFromCtx(r)
	if err := h.pollSvc.Delete(r.Context(), u.ID, id); err != nil {
		errorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func optionTexts(opts []pollOption) []string {
	texts := make([]string, 0, len(opts))
	for _, o := range opts {
		texts = append(texts, o.Option)
	}
	return texts
}
