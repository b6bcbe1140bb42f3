package worker

import (
	"context"
	"fmt"
	"time"

	"pricebot/internal/application"
	"pricebot/internal/domain"
	"pricebot/internal/infrastructure/logx"

	"go.uber.org/zap"
)

// CycleRunner is satisfied by *application.Service.
type CycleRunner interface {
	RunCycle(ctx context.Context, st domain.State) (domain.State, application.CycleReport)
}

var _ application.Worker = (*PollWorker)(nil)

// PollWorker is the scheduler: run a cycle, wait PollEvery, repeat. Cycles
// never overlap; a slow cycle pushes the next one back rather than
// bunching them.
//
// No cycle runs until the saved state has been read: publishing from an
// empty state while a message is still live would leave two in the chat.
type PollWorker struct {
	Cycles    CycleRunner
	Store     application.StateStore
	PollEvery time.Duration
	Log       *zap.Logger

	state    domain.State
	restored bool
}

func (w *PollWorker) logger() *zap.Logger {
	if w.Log == nil {
		return zap.NewNop()
	}
	return w.Log
}

func (w *PollWorker) Start(ctx context.Context) {
	log := w.logger()
	if w.PollEvery <= 0 {
		w.PollEvery = 60 * time.Second
	}

	log.Info("poll_worker_started", zap.Duration("poll_every", w.PollEvery))
	w.Tick(ctx)

	t := time.NewTimer(w.PollEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("poll_worker_stopped")
			return
		case <-t.C:
			w.Tick(ctx)
			t.Reset(w.PollEvery)
		}
	}
}

// RunOnce restores state, runs a single cycle and persists the result. A
// failed restore is returned without running the cycle.
func (w *PollWorker) RunOnce(ctx context.Context) (application.CycleReport, error) {
	if err := w.restore(ctx); err != nil {
		return application.CycleReport{Outcome: application.OutcomeStateUnavailable, Err: err}, err
	}
	return w.step(ctx)
}

// Tick runs one cycle against the worker's current state. Until the saved
// state has been read the cycle is skipped and the read is retried on the
// next tick. Save failures are logged; the in-memory state stays
// authoritative.
func (w *PollWorker) Tick(ctx context.Context) application.CycleReport {
	if err := w.restore(ctx); err != nil {
		w.logger().Warn("cycle_skipped", zap.String("reason", "state_unavailable"), zap.Error(err))
		return application.CycleReport{Outcome: application.OutcomeStateUnavailable, Err: err}
	}
	rep, err := w.step(ctx)
	if err != nil {
		w.logger().Warn("state_save_failed", zap.String("cycle_id", rep.CycleID), zap.Error(err))
	}
	return rep
}

func (w *PollWorker) step(ctx context.Context) (application.CycleReport, error) {
	prev := w.state
	next, rep := w.Cycles.RunCycle(ctx, prev)
	w.state = next
	if next.Equal(prev) || w.Store == nil {
		return rep, nil
	}
	ctx = logx.Into(ctx, w.logger().With(zap.String("cycle_id", rep.CycleID)))
	if err := w.Store.Save(ctx, next); err != nil {
		return rep, fmt.Errorf("save state: %w", err)
	}
	return rep, nil
}

func (w *PollWorker) State() domain.State { return w.state }

// restore reads the saved state once. It stays pending until a read succeeds.
func (w *PollWorker) restore(ctx context.Context) error {
	if w.restored {
		return nil
	}
	if w.Store == nil {
		w.restored = true
		return nil
	}
	log := w.logger()
	st, err := w.Store.Load(logx.Into(ctx, log.With(zap.String("op", "restore"))))
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	w.state, w.restored = st, true
	if st.Live != nil {
		log.Info("state_restored", zap.String("message_id", st.Live.ID), zap.Time("created_at", st.Live.CreatedAt))
	}
	return nil
}
