package application

import (
	"time"

	"pricebot/internal/domain"
)

type Outcome string

const (
	OutcomeFetchFailed Outcome = "fetch_failed"
	OutcomeSent        Outcome = "sent"
	OutcomeEdited      Outcome = "edited"
	OutcomeReplaced    Outcome = "replaced"
	OutcomeSendFailed  Outcome = "send_failed"
	// OutcomeStateUnavailable: the saved state could not be read, so no
	// chat call was made.
	OutcomeStateUnavailable Outcome = "state_unavailable"
)

// PublishResult is the publisher's answer for one rendered text.
// Err joins every failure met on the way (edit, delete, send); it is
// informational, the State is already the correct next state.
type PublishResult struct {
	State   domain.State
	Outcome Outcome
	Err     error
}

type CycleReport struct {
	CycleID    string
	Outcome    Outcome
	State      domain.State
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}
