package vote

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type memoryVoteRepo struct {
	mu          sync.Mutex
	optionPolls map[uuid.UUID]uuid.UUID
	votes       []Vote
}

func newMemoryVoteRepo() *memoryVoteRepo {
	return &memoryVoteRepo{optionPolls: make(map[uuid.UUID]uuid.UUID)}
}

func (r *memoryVoteRepo) addOption(pollID uuid.UUID) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New()
	r.optionPolls[id] = pollID
	return id
}

// Create mirrors the database unique constraint on (poll, user).
func (r *memoryVoteRepo) Create(ctx context.Context, v *Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.votes {
		if existing.PollID == v.PollID && existing.UserID == v.UserID {
			return ErrAlreadyVoted
		}
	}
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	r.votes = append(r.votes, *v)
	return nil
}

func (r *memoryVoteRepo) HasUserVoted(ctx context.Context, pollID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.votes {
		if v.PollID == pollID && v.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryVoteRepo) OptionPoll(ctx context.Context, optionID uuid.UUID) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pollID, ok := r.optionPolls[optionID]
	if !ok {
		return uuid.Nil, sql.ErrNoRows
	}
	return pollID, nil
}

func (r *memoryVoteRepo) DeleteByOptionAndUser(ctx context.Context, optionID, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []Vote
	var deleted int64
	for _, v := range r.votes {
		if v.OptionID == optionID && v.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, v)
	}
	r.votes = kept
	return deleted, nil
}

func TestCast(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	pollID := uuid.New()
	optA := repo.addOption(pollID)
	optB := repo.addOption(pollID)
	userID := uuid.New()

	v, err := svc.Cast(ctx, userID, pollID, optA)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if v.OptionID != optA || v.UserID != userID || v.PollID != pollID {
		t.Fatal("vote must link option, poll and user")
	}

	// Second cast on the same poll fails regardless of option.
	if _, err := svc.Cast(ctx, userID, pollID, optB); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	if _, err := svc.Cast(ctx, userID, pollID, optA); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	// A different user still can vote.
	if _, err := svc.Cast(ctx, uuid.New(), pollID, optB); err != nil {
		t.Fatalf("cast by another user: %v", err)
	}
}

func TestCastUnknownOption(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)

	if _, err := svc.Cast(context.Background(), uuid.New(), uuid.New(), uuid.New()); !errors.Is(err, ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}
}

func TestCastOptionFromOtherPoll(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	pollA := uuid.New()
	pollB := uuid.New()
	optionOfB := repo.addOption(pollB)

	if _, err := svc.Cast(ctx, uuid.New(), pollA, optionOfB); !errors.Is(err, ErrOptionNotInPoll) {
		t.Fatalf("expected ErrOptionNotInPoll, got %v", err)
	}
}

func TestRetractThenCastAgain(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	pollID := uuid.New()
	opt := repo.addOption(pollID)
	userID := uuid.New()

	if _, err := svc.Cast(ctx, userID, pollID, opt); err != nil {
		t.Fatalf("cast: %v", err)
	}

	deleted, err := svc.Retract(ctx, userID, opt)
	if err != nil {
		t.Fatalf("retract: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted vote, got %d", deleted)
	}

	// Retraction frees the user to vote on the poll again.
	if _, err := svc.Cast(ctx, userID, pollID, opt); err != nil {
		t.Fatalf("cast after retract: %v", err)
	}
}

func TestRetractUnknownOption(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)

	if _, err := svc.Retract(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}
}

func TestRetractNothing(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	pollID := uuid.New()
	opt := repo.addOption(pollID)

	deleted, err := svc.Retract(ctx, uuid.New(), opt)
	if err != nil {
		t.Fatalf("retract: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected 0 deleted votes, got %d", deleted)
	}
}
