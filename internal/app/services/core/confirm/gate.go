package confirm

import (
	"context"
	"errors"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/exceptions"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type State string

var errDeleteInterrupted = errors.New("delete interrupted before completion")

const (
	StateIdle                      State = "idle"
	StateAwaitingTypedConfirmation State = "awaiting_typed_confirmation"
	StateInFlight                  State = "in_flight"
)

// Target is the entity a pending delete points at.
type Target struct {
	Resource    string
	ID          string
	DisplayName string
}

// Approval is handed to the delete callback once the typed word matched.
// Only a Gate can produce a valid one.
type Approval struct {
	target Target
	valid  bool
}

func (a Approval) Target() Target {
	return a.target
}

func (a Approval) Valid() bool {
	return a.valid
}

// Covers reports whether the approval was issued for this exact entity.
func (a Approval) Covers(resource, id string) bool {
	return a.valid && a.target.Resource == resource && a.target.ID == id
}

type Snapshot struct {
	State      State
	Target     Target
	Input      string
	CanConfirm bool
	LastError  error
}

// Gate is the typed-word confirmation state machine guarding deletes:
// Idle -> AwaitingTypedConfirmation -> InFlight -> Idle.
type Gate struct {
	mu      sync.Mutex
	state   State
	target  Target
	input   string
	lastErr error
	log     *zap.Logger
}

func NewGate(log *zap.Logger) *Gate {
	return &Gate{
		state: StateIdle,
		log:   log,
	}
}

func matches(input string) bool {
	return strings.ToLower(input) == constvars.ConfirmationWord
}

// Request opens the gate for target. Only an idle gate accepts a new target.
func (g *Gate) Request(target Target) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateIdle {
		return exceptions.ErrConfirmationBusy()
	}
	g.state = StateAwaitingTypedConfirmation
	g.target = target
	g.input = ""
	g.lastErr = nil

	g.log.Debug("Gate.Request opened",
		zap.String(constvars.LoggingResourceKey, target.Resource),
		zap.String(constvars.LoggingResourceIDKey, target.ID),
	)
	return nil
}

// Type records the operator's latest input.
func (g *Gate) Type(input string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireAwaiting(); err != nil {
		return err
	}
	g.input = input
	return nil
}

func (g *Gate) CanConfirm() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == StateAwaitingTypedConfirmation && matches(g.input)
}

// Confirm runs fn exactly once when the last typed input is the confirmation
// word. The lock is not held while fn runs. Whatever fn returns, the gate goes
// back to idle with an empty input buffer.
func (g *Gate) Confirm(ctx context.Context, fn func(ctx context.Context, approval Approval) error) (err error) {
	g.mu.Lock()
	if err := g.requireAwaiting(); err != nil {
		g.mu.Unlock()
		return err
	}
	if !matches(g.input) {
		g.mu.Unlock()
		return exceptions.ErrConfirmationMismatch()
	}
	g.state = StateInFlight
	approval := Approval{target: g.target, valid: true}
	g.mu.Unlock()

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.log.Info("Gate.Confirm in flight",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceKey, approval.target.Resource),
		zap.String(constvars.LoggingResourceIDKey, approval.target.ID),
	)

	// A panicking callback still releases the gate; the panic keeps unwinding.
	err = errDeleteInterrupted
	defer func() {
		g.mu.Lock()
		g.state = StateIdle
		g.target = Target{}
		g.input = ""
		g.lastErr = err
		g.mu.Unlock()
	}()

	err = fn(ctx, approval)
	return err
}

// Cancel discards the pending target. It is refused once the delete is in flight.
func (g *Gate) Cancel() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireAwaiting(); err != nil {
		return err
	}
	g.state = StateIdle
	g.target = Target{}
	g.input = ""
	return nil
}

func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Snapshot{
		State:      g.state,
		Target:     g.target,
		Input:      g.input,
		CanConfirm: g.state == StateAwaitingTypedConfirmation && matches(g.input),
		LastError:  g.lastErr,
	}
}

func (g *Gate) requireAwaiting() error {
	switch g.state {
	case StateAwaitingTypedConfirmation:
		return nil
	case StateInFlight:
		return exceptions.ErrConfirmationInFlight()
	default:
		return exceptions.ErrConfirmationIdle()
	}
}
