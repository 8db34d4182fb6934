package worker

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"pollcast/internal/metrics"
)

type EventKind string

const (
	EventCast    EventKind = "cast"
	EventRetract EventKind = "retract"
)

type VoteEvent struct {
	Kind     EventKind
	PollID   uuid.UUID
	OptionID uuid.UUID
	UserID   uuid.UUID
}

// VoteWorker drains vote events off the hot request path, bumping counters
// and writing an audit log line per event.
type VoteWorker struct {
	ch  <-chan VoteEvent
	log *slog.Logger
}

func NewVoteWorker(ch <-chan VoteEvent, log *slog.Logger) *VoteWorker {
	if log == nil {
		log = slog.Default()
	}
	return &VoteWorker{ch: ch, log: log}
}

func (w *VoteWorker) Run(ctx context.Context) {
	w.log.Info("vote worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("vote worker stopped")
			return
		case ev := <-w.ch:
			switch ev.Kind {
			case EventCast:
				metrics.IncVoteCast()
			case EventRetract:
				metrics.IncVoteRetracted()
			}
			w.log.Info("vote event",
				"kind", string(ev.Kind),
				"poll_id", ev.PollID.String(),
				"option_id", ev.OptionID.String(),
			)
		}
	}
}
