package api

import (
	"database/sql"
	"errors"
	"net/http"

	"pollcast/internal/domain/poll"
	"pollcast/internal/domain/user"
	"pollcast/internal/domain/vote"
	"pollcast/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.Conflict("email_taken", "email already in use", err)
	case errors.Is(err, user.ErrUserNotFound):
		return apperr.NotFound("user_not_found", "user not found", err)
	case errors.Is(err, user.ErrInvalidPassword):
		return apperr.Unauthorized("invalid_password", "invalid password", err)
	case errors.Is(err, user.ErrInvalidRefreshToken):
		return apperr.Unauthorized("invalid_refresh_token", "invalid refresh token", err)
	case errors.Is(err, user.ErrInactiveUser):
		return apperr.Unauthorized("inactive_user", "user is inactive", err)
	case errors.Is(err, poll.ErrPollNotFound):
		return apperr.NotFound("poll_not_found", "poll not found", err)
	case errors.Is(err, poll.ErrQuestionRequired):
		return apperr.BadRequest("invalid_input", "question is required", err)
	case errors.Is(err, poll.ErrTooFewOptions):
		return apperr.BadRequest("invalid_input", "poll must have at least 2 options", err)
	case errors.Is(err, poll.ErrEmptyOption):
		return apperr.BadRequest("invalid_input", "option text must not be empty", err)
	case errors.Is(err, poll.ErrNotOwner):
		return apperr.Forbidden("not_owner", "only the creator can delete a poll", err)
	case errors.Is(err, vote.ErrAlreadyVoted):
		return apperr.Forbidden("already_voted", "already voted for this poll", err)
	case errors.Is(err, vote.ErrOptionNotFound):
		return apperr.NotFound("option_not_found", "option not found", err)
	case errors.Is(err, vote.ErrOptionNotInPoll):
		return apperr.BadRequest("invalid_option", "option does not belong to poll", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
