package vote

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrAlreadyVoted    = errors.New("already voted for this poll")
	ErrOptionNotFound  = errors.New("option not found")
	ErrOptionNotInPoll = errors.New("option does not belong to poll")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Cast records the user's single vote on a poll. The pre-check gives a
// clean error on the common path; correctness under concurrent casts rests
// on the store's (poll, user) uniqueness constraint.
func (s *Service) Cast(ctx context.Context, userID, pollID, optionID uuid.UUID) (*Vote, error) {
	optPollID, err := s.repo.OptionPoll(ctx, optionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOptionNotFound
		}
		return nil, err
	}
	if optPollID != pollID {
		return nil, ErrOptionNotInPoll
	}

	voted, err := s.repo.HasUserVoted(ctx, pollID, userID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	v := &Vote{
		PollID:   pollID,
		OptionID: optionID,
		UserID:   userID,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Retract removes the user's vote on the given option and reports how many
// rows went away. Retracting frees the user to vote on that poll again.
func (s *Service) Retract(ctx context.Context, userID, optionID uuid.UUID) (int64, error) {
	if _, err := s.repo.OptionPoll(ctx, optionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrOptionNotFound
		}
		return 0, err
	}
	return s.repo.DeleteByOptionAndUser(ctx, optionID, userID)
}
