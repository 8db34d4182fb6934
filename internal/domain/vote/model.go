package vote

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"pollId"`
	OptionID  uuid.UUID `json:"optionId"`
	UserID    uuid.UUID `json:"votedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	// Create inserts a vote. The store enforces uniqueness per
	// (poll, user) and reports a violation as ErrAlreadyVoted.
	Create(ctx context.Context, v *Vote) error
	HasUserVoted(ctx context.Context, pollID, userID uuid.UUID) (bool, error)
	// OptionPoll resolves the poll an option belongs to.
	OptionPoll(ctx context.Context, optionID uuid.UUID) (uuid.UUID, error)
	DeleteByOptionAndUser(ctx context.Context, optionID, userID uuid.UUID) (int64, error)
}
