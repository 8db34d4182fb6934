package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"pollcast/internal/domain/poll"
)

type PollRepo struct {
	db *sql.DB
}

func NewPollRepo(db *sql.DB) *PollRepo {
	return &PollRepo{db: db}
}

func (r *PollRepo) Create(ctx context.Context, p *poll.Poll) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	queryPoll := `
        INSERT INTO polls (question, created_by)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at
    `
	if err := tx.QueryRowContext(ctx, queryPoll, p.Question, p.CreatedBy).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}

	queryOpt := `
        INSERT INTO poll_options (poll_id, option_text)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at
    `
	for i := range p.Options {
		p.Options[i].PollID = p.ID
		if err := tx.QueryRowContext(ctx, queryOpt, p.ID, p.Options[i].Text).
			Scan(&p.Options[i].ID, &p.Options[i].CreatedAt, &p.Options[i].UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PollRepo) GetByID(ctx context.Context, id uuid.UUID) (*poll.Poll, error) {
	p := &poll.Poll{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, question, created_by, created_at, updated_at
        FROM polls WHERE id = $1
    `, id).Scan(&p.ID, &p.Question, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	opts, err := r.loadOptions(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Options = opts
	return p, nil
}

func (r *PollRepo) List(ctx context.Context) ([]poll.Poll, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, question, created_by, created_at, updated_at
        FROM polls ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []poll.Poll
	for rows.Next() {
		var p poll.Poll
		if err := rows.Scan(&p.ID, &p.Question, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range res {
		opts, err := r.loadOptions(ctx, res[i].ID)
		if err != nil {
			return nil, err
		}
		res[i].Options = opts
	}
	return res, nil
}

// Edit patches the question and replaces the option set in one
// transaction, so a partial failure never leaves a mixed state. Deleting
// the old options cascades to their votes.
func (r *PollRepo) Edit(ctx context.Context, id uuid.UUID, question *string, options []poll.Option) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if question != nil {
		if _, err := tx.ExecContext(ctx,
			`UPDATE polls SET question = $1, updated_at = now() WHERE id = $2`,
			*question, id); err != nil {
			return err
		}
	}

	if options != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM poll_options WHERE poll_id = $1`, id); err != nil {
			return err
		}
		queryOpt := `
            INSERT INTO poll_options (poll_id, option_text)
            VALUES ($1, $2)
        `
		for i := range options {
			if _, err := tx.ExecContext(ctx, queryOpt, id, options[i].Text); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE polls SET updated_at = now() WHERE id = $1`, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PollRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE poll_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM poll_options WHERE poll_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PollRepo) loadOptions(ctx context.Context, pollID uuid.UUID) ([]poll.Option, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, poll_id, option_text, created_at, updated_at
        FROM poll_options WHERE poll_id = $1 ORDER BY created_at
    `, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []poll.Option
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var o poll.Option
		if err := rows.Scan(&o.ID, &o.PollID, &o.Text, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.Votes = []poll.OptionVote{}
		index[o.ID] = len(opts)
		opts = append(opts, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	voteRows, err := r.db.QueryContext(ctx, `
        SELECT id, option_id, user_id, created_at
        FROM votes WHERE poll_id = $1
    `, pollID)
	if err != nil {
		return nil, err
	}
	defer voteRows.Close()

	for voteRows.Next() {
		var v poll.OptionVote
		var optionID uuid.UUID
		if err := voteRows.Scan(&v.ID, &optionID, &v.UserID, &v.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[optionID]; ok {
			opts[i].Votes = append(opts[i].Votes, v)
		}
	}
	return opts, voteRows.Err()
}
