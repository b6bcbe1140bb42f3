package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pricebot/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	errNetwork = errors.New("network down")
	errAPI     = errors.New("Bad Request: message to edit not found")
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("cycle-%d", g.n)
}

type fakeFetcher struct {
	out   domain.Quote
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(context.Context) (domain.Quote, error) {
	f.calls++
	if f.err != nil {
		return domain.Quote{}, f.err
	}
	return f.out, nil
}

type fakeMessenger struct {
	nextIDs   []string
	sendErr   error
	editErr   error
	deleteErr error

	calls []string
	texts []string
}

func (m *fakeMessenger) Send(_ context.Context, text string) (string, error) {
	m.calls = append(m.calls, "send")
	m.texts = append(m.texts, text)
	if m.sendErr != nil {
		return "", m.sendErr
	}
	if len(m.nextIDs) == 0 {
		return "", errors.New("fake messenger: no ids left")
	}
	id := m.nextIDs[0]
	m.nextIDs = m.nextIDs[1:]
	return id, nil
}

func (m *fakeMessenger) Edit(_ context.Context, id, text string) error {
	m.calls = append(m.calls, "edit:"+id)
	m.texts = append(m.texts, text)
	return m.editErr
}

func (m *fakeMessenger) Delete(_ context.Context, id string) error {
	m.calls = append(m.calls, "delete:"+id)
	return m.deleteErr
}

func (m *fakeMessenger) reset() { m.calls, m.texts = nil, nil }

type pinningMessenger struct {
	*fakeMessenger
	pinErr error
}

func (m *pinningMessenger) Pin(_ context.Context, id string) error {
	m.calls = append(m.calls, "pin:"+id)
	return m.pinErr
}

func (m *pinningMessenger) Unpin(_ context.Context, id string) error {
	m.calls = append(m.calls, "unpin:"+id)
	return m.pinErr
}

type recordingObserver struct{ reports []CycleReport }

func (o *recordingObserver) ObserveCycle(rep CycleReport) { o.reports = append(o.reports, rep) }

func quote(usd, eur, change string) domain.Quote {
	return domain.Quote{
		Asset:        domain.Asset{ID: "ripple", Symbol: "XRP", Name: "Ripple"},
		PriceUSD:     decimal.RequireFromString(usd),
		PriceEUR:     decimal.RequireFromString(eur),
		Change24hPct: decimal.RequireFromString(change),
	}
}

func live(id string, at time.Time) domain.State {
	return domain.State{Live: &domain.LiveMessage{ID: id, CreatedAt: at}}
}

type harness struct {
	clock     *fakeClock
	fetcher   *fakeFetcher
	messenger *fakeMessenger
	observer  *recordingObserver
	svc       *Service
}

func newHarness(m Messenger, fm *fakeMessenger, pin bool) *harness {
	clock := &fakeClock{t: t0}
	h := &harness{
		clock:     clock,
		fetcher:   &fakeFetcher{out: quote("0.52", "0.48", "1.23")},
		messenger: fm,
		observer:  &recordingObserver{},
	}
	pub := NewPublisher(m, PublisherConfig{MaxAge: 24 * time.Hour, Pin: pin}, clock, nil)
	h.svc = NewService(h.fetcher, NewRenderer(clock), pub,
		WithClock(clock),
		WithIDGen(&seqIDGen{}),
		WithObserver(h.observer),
	)
	return h
}

func newDefaultHarness(ids ...string) *harness {
	fm := &fakeMessenger{nextIDs: ids}
	return newHarness(fm, fm, false)
}
