package poll

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
)

const minOptions = 2

var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrNotOwner         = errors.New("only the creator can delete a poll")
	ErrQuestionRequired = errors.New("question required")
	ErrTooFewOptions    = errors.New("poll must have at least 2 options")
	ErrEmptyOption      = errors.New("option text must not be empty")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, question string, optionTexts []string) (*Poll, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrQuestionRequired
	}
	opts, err := buildOptions(optionTexts)
	if err != nil {
		return nil, err
	}

	p := &Poll{
		Question:  question,
		CreatedBy: creatorID,
		Options:   opts,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Poll, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Poll, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	return p, nil
}

type EditInput struct {
	Question *string
	Options  []string
}

// Edit patches the question and, when options are supplied, replaces the
// whole option set. Votes on the removed options go with them.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, in EditInput) (*Poll, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if in.Question != nil && strings.TrimSpace(*in.Question) == "" {
		return nil, ErrQuestionRequired
	}

	var opts []Option
	if in.Options != nil {
		var err error
		opts, err = buildOptions(in.Options)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Edit(ctx, id, in.Question, opts); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.CreatedBy != callerID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func buildOptions(texts []string) ([]Option, error) {
	if len(texts) < minOptions {
		return nil, ErrTooFewOptions
	}
	opts := make([]Option, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, ErrEmptyOption
		}
		opts = append(opts, Option{Text: t})
	}
	return opts, nil
}
