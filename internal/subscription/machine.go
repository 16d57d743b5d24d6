// Package subscription implements the notify-me form's state machine: a
// submit either lands in the terminal Submitted state or in Failed, from
// which the user may retry.
package subscription

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/withlaguna/stonks-page/internal/models"
)

// State is one of the subscription form states
type State string

// Subscription states
const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
	StateFailed     State = "failed"
)

// Sentinel errors for rejected submits
var (
	// ErrAlreadySubscribed is returned once the machine has reached its
	// terminal Submitted state.
	ErrAlreadySubscribed = errors.New("subscription already submitted")
	// ErrSubmitInFlight is returned while a previous submit is still
	// awaiting its network outcome.
	ErrSubmitInFlight = errors.New("subscription submit in flight")
)

// Sender performs the outbound notification-registration call.
type Sender interface {
	Subscribe(ctx context.Context, req models.SubscribeRequest) error
}

// Snapshot is a point-in-time view of the machine for the presentation
// layer. Submitted is set optimistically while a submit is in flight so
// the form swaps to its thank-you message without flicker; it reverts if
// the call fails.
type Snapshot struct {
	State     State  `json:"state"`
	Submitted bool   `json:"submitted"`
	Value     string `json:"value"`
	HasError  bool   `json:"has_error"`
}

// Machine holds the subscription form state. It is the sole mutator of
// that state; transitions happen only via Submit and the network outcome.
type Machine struct {
	mu     sync.Mutex
	state  State
	value  string
	err    bool
	sender Sender
	log    zerolog.Logger
}

// NewMachine creates a Machine in the Idle state.
func NewMachine(sender Sender, log zerolog.Logger) *Machine {
	return &Machine{
		state:  StateIdle,
		sender: sender,
		log:    log.With().Str("component", "subscription").Logger(),
	}
}

// Submit drives one submit action: Idle/Failed -> Submitting, then
// Submitted on success or Failed on any error from the outbound call.
// Exactly one outbound request is made per accepted submit; no validation
// is applied beyond the caller's presence check, so the error state is
// driven solely by the remote outcome. Failure clears the entered value.
// Deduplication of repeated registrations happens downstream.
func (m *Machine) Submit(ctx context.Context, req models.SubscribeRequest) (Snapshot, error) {
	m.mu.Lock()
	switch m.state {
	case StateSubmitted:
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap, ErrAlreadySubscribed
	case StateSubmitting:
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap, ErrSubmitInFlight
	}
	m.state = StateSubmitting
	m.err = false
	m.value = req.Phone
	m.mu.Unlock()

	err := m.sender.Subscribe(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.log.Warn().Err(err).Msg("subscription submit failed")
		m.state = StateFailed
		m.err = true
		m.value = ""
		return m.snapshotLocked(), err
	}

	m.state = StateSubmitted
	return m.snapshotLocked(), nil
}

// Status returns the current form snapshot.
func (m *Machine) Status() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() Snapshot {
	return Snapshot{
		State:     m.state,
		Submitted: m.state == StateSubmitting || m.state == StateSubmitted,
		Value:     m.value,
		HasError:  m.err,
	}
}
