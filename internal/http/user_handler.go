package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"pollcast/internal/domain/user"
	"pollcast/internal/platform/apperr"
	jwtpkg "pollcast/internal/platform/jwt"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type editUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// @Summary     Register a new user
// @Tags        user
// @Accept      json
// @Produce     json
// @Param       request  body      registerRequest  true  "Registration payload"
// @Success     201      {object}  user.User
// @Failure     400      {object}  map[string]string  "invalid input"
// @Failure     409      {object}  map[string]string  "email already in use"
// @Router      /user/register [post]
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		errorResponse(w, apperr.BadRequest("invalid_input", "firstName and lastName are required", nil))
		return
	}
	if !validEmail(req.Email) {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid email address", nil))
		return
	}
	if !strongPassword(req.Password) {
		errorResponse(w, apperr.BadRequest("weak_password",
			"password must be at least 8 characters with upper, lower, digit and symbol", nil))
		return
	}

	u, err := h.userSvc.Register(r.Context(), user.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, u)
}

// @Summary     Sign in
// @Tags        user
// @Accept      json
// @Produce     json
// @Param       request  body      signInRequest  true  "Credentials"
// @Success     200      {object}  user.TokenPair
// @Failure     401      {object}  map[string]string  "invalid password"
// @Failure     404      {object}  map[string]string  "user not found"
// @Router      /user/signin [post]
func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.Email == "" || req.Password == "" {
		errorResponse(w, apperr.BadRequest("invalid_input", "email and password are required", nil))
		return
	}

	pair, err := h.userSvc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// handleRefresh verifies the refresh JWT from the body, resolves its
// subject and exchanges it for a fresh access token. The token must also
// match the stored row, so a rotated-away refresh token is rejected even
// though its signature still checks out.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.RefreshToken == "" {
		errorResponse(w, apperr.BadRequest("invalid_input", "refreshToken is required", nil))
		return
	}

	claims, err := h.jwtMgr.Parse(jwtpkg.RefreshToken, req.RefreshToken)
	if err != nil {
		errorResponse(w, apperr.Unauthorized("invalid_refresh_token", "invalid refresh token", err))
		return
	}

	u, err := h.userSvc.GetByID(r.Context(), claims.UserID)
	if err != nil {
		errorResponse(w, apperr.Unauthorized("invalid_refresh_token", "invalid refresh token", err))
		return
	}

	access, err := h.userSvc.Refresh(r.Context(), u, req.RefreshToken)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": access})
}

// @Summary     Current user
// @Tags        user
// @Security    BearerAuth
// @Produce     json
// @Success     200  {object}  user.User
// @Failure     401  {object}  map[string]string  "unauthorized"
// @Router      /user [get]
func (h *Handler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFromCtx(r))
}

func (h *Handler) handleEditUser(w http.ResponseWriter, r *http.Request) {
	var req editUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	if req.Email != nil && !validEmail(*req.Email) {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid email address", nil))
		return
	}
	if req.Password != nil && !strongPassword(*req.Password) {
		errorResponse(w, apperr.BadRequest("weak_password",
			"password must be at least 8 characters with upper, lower, digit and symbol", nil))
		return
	}

	u := userFromCtx(r)
	updated, err := h.userSvc.EditProfile(r.Context(), u.ID, user.EditInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// @Summary     Sign out
// @Tags        user
// @Security    BearerAuth
// @Success     204
// @Failure     401  {object}  map[string]string  "unauthorized"
// @Router      /user/signout [delete]
func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	u := userFromCtx(r)
	if err := h.userSvc.SignOut(r.Context(), u.ID); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
