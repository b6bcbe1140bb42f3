package httpserver

import (
	"context"
	"net/http"
	"time"

	"pricebot/internal/application"
	"pricebot/internal/domain"
)

var _ application.StateStore = (*fakeStore)(nil)

type fakeStore struct {
	st  domain.State
	err error
}

func (f *fakeStore) Load(context.Context) (domain.State, error) { return f.st, f.err }

func (f *fakeStore) Save(_ context.Context, st domain.State) error {
	f.st = st
	return f.err
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setupWith(store application.StateStore) (*Server, func() http.Handler) {
	srv := NewServer(store, fixedClock{t: t0}, 24*time.Hour)
	return srv, func() http.Handler { return NewRouter(srv) }
}
