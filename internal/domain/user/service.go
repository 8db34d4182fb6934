package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	jwtpkg "pollcast/internal/platform/jwt"
	"pollcast/internal/platform/password"
)

var (
	ErrEmailTaken          = errors.New("email already in use")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInactiveUser        = errors.New("user is inactive")
)

type Service struct {
	repo   Repository
	rtRepo RefreshTokenRepository
	tokens *jwtpkg.Manager
}

func NewService(repo Repository, rtRepo RefreshTokenRepository, tokens *jwtpkg.Manager) *Service {
	return &Service{repo: repo, rtRepo: rtRepo, tokens: tokens}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SignIn verifies credentials and issues a fresh token pair. The user's
// refresh token row is overwritten so only the latest refresh token stays
// valid.
func (s *Service) SignIn(ctx context.Context, email, pass string) (*TokenPair, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if err := password.Verify(pass, u.PasswordHash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, ErrInvalidPassword
		}
		return nil, err
	}

	access, err := s.tokens.Generate(jwtpkg.AccessToken, u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Generate(jwtpkg.RefreshToken, u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	if err := s.rtRepo.Upsert(ctx, u.ID, refresh); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a refresh token for a new access token. The presented
// token must match the stored row exactly, so a token that was overwritten
// by a later sign-in or removed by sign-out is rejected. The refresh token
// itself is not rotated on this path.
func (s *Service) Refresh(ctx context.Context, u *User, refreshToken string) (string, error) {
	stored, err := s.rtRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}
	if stored.UserID != u.ID {
		return "", ErrInvalidRefreshToken
	}

	return s.tokens.Generate(jwtpkg.AccessToken, u.ID, u.Email)
}

type EditInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

func (s *Service) EditProfile(ctx context.Context, id uuid.UUID, in EditInput) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := password.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SignOut invalidates future refresh calls. Access tokens already issued
// stay valid until they expire.
func (s *Service) SignOut(ctx context.Context, id uuid.UUID) error {
	return s.rtRepo.DeleteByUser(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
