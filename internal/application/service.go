package application

import (
	"context"
	"fmt"

	"pricebot/internal/domain"

	"go.uber.org/zap"
)

// Service runs one fetch -> render -> publish cycle at a time.
type Service struct {
	fetcher   PriceFetcher
	renderer  *Renderer
	publisher *Publisher
	clock     Clock
	idgen     IDGen
	observer  CycleObserver
	log       *zap.Logger
}

type Option func(*Service)

func WithClock(c Clock) Option            { return func(s *Service) { s.clock = c } }
func WithIDGen(g IDGen) Option            { return func(s *Service) { s.idgen = g } }
func WithObserver(o CycleObserver) Option { return func(s *Service) { s.observer = o } }
func WithLogger(l *zap.Logger) Option     { return func(s *Service) { s.log = l } }

func NewService(fetcher PriceFetcher, renderer *Renderer, publisher *Publisher, opts ...Option) *Service {
	s := &Service{
		fetcher:   fetcher,
		renderer:  renderer,
		publisher: publisher,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = SystemClock()
	}
	if s.idgen == nil {
		s.idgen = defaultIDGen{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// RunCycle performs one cycle starting from st and returns the next state.
// A failed fetch leaves st untouched and makes no chat calls.
func (s *Service) RunCycle(ctx context.Context, st domain.State) (domain.State, CycleReport) {
	rep := CycleReport{CycleID: s.idgen.NewID(), StartedAt: s.clock.Now()}
	log := s.log.With(zap.String("cycle_id", rep.CycleID))

	q, err := s.fetcher.Fetch(ctx)
	if err != nil {
		log.Warn("cycle_fetch_failed", zap.Error(err))
		rep.Outcome = OutcomeFetchFailed
		rep.State = st
		rep.Err = fmt.Errorf("%w: %w", domain.ErrFetch, err)
	} else {
		res := s.publisher.publish(ctx, log, st, s.renderer.Render(q))
		rep.Outcome, rep.State, rep.Err = res.Outcome, res.State, res.Err
	}
	rep.FinishedAt = s.clock.Now()

	if s.observer != nil {
		s.observer.ObserveCycle(rep)
	}
	log.Debug("cycle_done",
		zap.String("outcome", string(rep.Outcome)),
		zap.String("phase", string(rep.State.Phase())),
	)
	return rep.State, rep
}
