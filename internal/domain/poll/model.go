package poll

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	CreatedBy uuid.UUID `json:"createdBy"`
	Options   []Option  `json:"options"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Option struct {
	ID        uuid.UUID    `json:"id"`
	PollID    uuid.UUID    `json:"pollId"`
	Text      string       `json:"option"`
	Votes     []OptionVote `json:"votes"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// OptionVote is the read model of a vote nested under its option in poll
// responses. Casting and retraction live in the vote package.
type OptionVote struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"votedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, p *Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*Poll, error)
	List(ctx context.Context) ([]Poll, error)
	// Edit updates the question and, when options is non-nil, replaces the
	// entire option set in the same transaction.
	Edit(ctx context.Context, id uuid.UUID, question *string, options []Option) error
	Delete(ctx context.Context, id uuid.UUID) error
}
