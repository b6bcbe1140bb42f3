package application

import (
	"context"

	"pricebot/internal/domain"
)

type PriceFetcher interface {
	Fetch(ctx context.Context) (domain.Quote, error)
}

// Messenger talks to the chat API. Message ids are opaque to the application.
type Messenger interface {
	Send(ctx context.Context, text string) (string, error)
	Edit(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
}

// Pinner is optionally implemented by a Messenger.
type Pinner interface {
	Pin(ctx context.Context, id string) error
	Unpin(ctx context.Context, id string) error
}

// StateStore mirrors the live-message state outside the loop.
// Load returns an empty State when nothing was saved.
type StateStore interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, st domain.State) error
}

type CycleObserver interface {
	ObserveCycle(rep CycleReport)
}
