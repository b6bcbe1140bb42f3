package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pricebot/internal/domain"

	"go.uber.org/zap"
)

type PublisherConfig struct {
	// MaxAge is the freshness threshold; older messages are replaced.
	MaxAge time.Duration
	// Pin pins every new message when the messenger is also a Pinner.
	Pin bool
}

// Publisher keeps at most one live message in the chat. It owns no state of
// its own: the current State goes in and the next State comes out.
type Publisher struct {
	messenger Messenger
	pinner    Pinner
	clock     Clock
	maxAge    time.Duration
	log       *zap.Logger
}

func NewPublisher(m Messenger, cfg PublisherConfig, clock Clock, log *zap.Logger) *Publisher {
	if clock == nil {
		clock = SystemClock()
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Publisher{messenger: m, clock: clock, maxAge: cfg.MaxAge, log: log}
	if cfg.Pin {
		if pn, ok := m.(Pinner); ok {
			p.pinner = pn
		}
	}
	return p
}

func (p *Publisher) Send(ctx context.Context, text string) (string, error) {
	id, err := p.messenger.Send(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSend, err)
	}
	return id, nil
}

func (p *Publisher) Edit(ctx context.Context, id, text string) error {
	if err := p.messenger.Edit(ctx, id, text); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEdit, err)
	}
	return nil
}

// Delete is best-effort. The error is returned for reporting only.
func (p *Publisher) Delete(ctx context.Context, id string) error {
	if err := p.messenger.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDelete, err)
	}
	return nil
}

// Publish moves st one step given freshly rendered text.
func (p *Publisher) Publish(ctx context.Context, st domain.State, text string) PublishResult {
	return p.publish(ctx, p.log, st, text)
}

func (p *Publisher) publish(ctx context.Context, log *zap.Logger, st domain.State, text string) PublishResult {
	if st.Live == nil {
		return p.sendNew(ctx, log, text, OutcomeSent)
	}

	live := *st.Live
	log = log.With(zap.String("message_id", live.ID))
	now := p.clock.Now()
	if live.Expired(now, p.maxAge) {
		log.Info("message_expired", zap.Duration("age", live.Age(now)), zap.Duration("max_age", p.maxAge))
		return p.replace(ctx, log, live, text, nil)
	}

	if err := p.Edit(ctx, live.ID, text); err != nil {
		log.Warn("message_edit_failed", zap.Error(err))
		return p.replace(ctx, log, live, text, err)
	}
	log.Debug("message_edited")
	return PublishResult{State: st, Outcome: OutcomeEdited}
}

// replace drops old and posts a new message. If the send fails the chat is
// left without a live message until the next cycle.
func (p *Publisher) replace(ctx context.Context, log *zap.Logger, old domain.LiveMessage, text string, editErr error) PublishResult {
	if p.pinner != nil {
		if err := p.pinner.Unpin(ctx, old.ID); err != nil {
			log.Warn("message_unpin_failed", zap.Error(err))
		}
	}
	delErr := p.Delete(ctx, old.ID)
	if delErr != nil {
		log.Warn("message_delete_failed", zap.Error(delErr))
	}

	res := p.sendNew(ctx, log, text, OutcomeReplaced)
	res.Err = errors.Join(editErr, delErr, res.Err)
	return res
}

func (p *Publisher) sendNew(ctx context.Context, log *zap.Logger, text string, outcome Outcome) PublishResult {
	id, err := p.Send(ctx, text)
	if err != nil {
		log.Error("message_send_failed", zap.Error(err))
		return PublishResult{Outcome: OutcomeSendFailed, Err: err}
	}
	live := &domain.LiveMessage{ID: id, CreatedAt: p.clock.Now()}

	if p.pinner != nil {
		if err := p.pinner.Pin(ctx, id); err != nil {
			log.Warn("message_pin_failed", zap.String("new_message_id", id), zap.Error(err))
		}
	}
	log.Info("message_sent", zap.String("new_message_id", id), zap.String("outcome", string(outcome)))
	return PublishResult{State: domain.State{Live: live}, Outcome: outcome}
}
