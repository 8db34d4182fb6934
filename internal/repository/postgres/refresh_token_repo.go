package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"pollcast/internal/domain/user"
)

type RefreshTokenRepo struct {
	db *sql.DB
}

func NewRefreshTokenRepo(db *sql.DB) *RefreshTokenRepo {
	return &RefreshTokenRepo{db: db}
}

// Upsert keeps at most one refresh token row per user: a re-sign-in
// overwrites the stored token instead of appending.
func (r *RefreshTokenRepo) Upsert(ctx context.Context, userID uuid.UUID, token string) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO refresh_tokens (user_id, token)
        VALUES ($1, $2)
        ON CONFLICT (user_id) DO UPDATE
        SET token = EXCLUDED.token,
            updated_at = now()
    `, userID, token)
	return err
}

func (r *RefreshTokenRepo) GetByToken(ctx context.Context, token string) (*user.RefreshToken, error) {
	rt := &user.RefreshToken{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, token, created_at, updated_at
        FROM refresh_tokens WHERE token = $1
    `, token).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *RefreshTokenRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	return err
}
