package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"pollcast/internal/domain/vote"
)

type VoteRepo struct {
	db *sql.DB
}

func NewVoteRepo(db *sql.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// Create inserts a vote. The votes_poll_user_unique constraint serializes
// concurrent casts for the same (poll, user), so a lost race surfaces here
// as ErrAlreadyVoted rather than a duplicate row.
func (r *VoteRepo) Create(ctx context.Context, v *vote.Vote) error {
	query := `
        INSERT INTO votes (poll_id, option_id, user_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.db.QueryRowContext(ctx, query, v.PollID, v.OptionID, v.UserID).
		Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return vote.ErrAlreadyVoted
		}
		return err
	}
	return nil
}

func (r *VoteRepo) HasUserVoted(ctx context.Context, pollID, userID uuid.UUID) (bool, error) {
	var voted bool
	err := r.db.QueryRowContext(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM votes WHERE poll_id = $1 AND user_id = $2
        )
    `, pollID, userID).Scan(&voted)
	return voted, err
}

func (r *VoteRepo) OptionPoll(ctx context.Context, optionID uuid.UUID) (uuid.UUID, error) {
	var pollID uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`SELECT poll_id FROM poll_options WHERE id = $1`, optionID).Scan(&pollID)
	return pollID, err
}

func (r *VoteRepo) DeleteByOptionAndUser(ctx context.Context, optionID, userID uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM votes WHERE option_id = $1 AND user_id = $2`, optionID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
