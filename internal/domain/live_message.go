package domain

import "time"

// LiveMessage is the one chat message currently showing the latest quote.
type LiveMessage struct {
	ID        string
	CreatedAt time.Time
}

func (m LiveMessage) Age(now time.Time) time.Duration {
	return now.Sub(m.CreatedAt)
}

// Expired reports whether the message is older than maxAge and must be replaced
// instead of edited.
func (m LiveMessage) Expired(now time.Time, maxAge time.Duration) bool {
	return m.Age(now) > maxAge
}

type Phase string

const (
	PhaseNoMessage Phase = "no_message"
	PhaseLive      Phase = "live"
)

// State is the publisher's record carried from one cycle to the next.
// A nil Live means no message has been posted (or the last one was lost).
type State struct {
	Live *LiveMessage
}

func (s State) Phase() Phase {
	if s.Live == nil {
		return PhaseNoMessage
	}
	return PhaseLive
}

func (s State) Equal(o State) bool {
	if s.Live == nil || o.Live == nil {
		return s.Live == o.Live
	}
	return s.Live.ID == o.Live.ID && s.Live.CreatedAt.Equal(o.Live.CreatedAt)
}
