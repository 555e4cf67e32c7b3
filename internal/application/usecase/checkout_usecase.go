// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	orderdom "github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/order"
)

// State is the checkout lifecycle position.
//
//	Idle -> AwaitingDeliveryLocation -> Submitting -> Completed
//	                                    Submitting -> Failed -> Submitting (retry)
//	                                                  Failed -> Idle       (abandon)
type State string

const (
	StateIdle                     State = "idle"
	StateAwaitingDeliveryLocation State = "awaitingDeliveryLocation"
	StateSubmitting               State = "submitting"
	StateCompleted                State = "completed"
	StateFailed                   State = "failed"
)

// RedirectIntent tells the caller where to send the user when a guard
// blocks entry into checkout. Guard violations are navigation signals, not
// internal errors.
type RedirectIntent string

const (
	RedirectNone  RedirectIntent = ""
	RedirectLogin RedirectIntent = "login"
	RedirectCart  RedirectIntent = "cart"
)

var (
	ErrNotAuthenticated   = errors.New("checkout: not authenticated")
	ErrEmptyCart          = errors.New("checkout: cart is empty")
	ErrNoDeliveryLocation = errors.New("checkout: delivery location not set")
	ErrAlreadySubmitting  = errors.New("checkout: submission already in flight")
	ErrInvalidTransition  = errors.New("checkout: invalid state transition")
)

// SessionVerifier is the external session collaborator. A nil error means
// the user is authenticated.
type SessionVerifier interface {
	Verify(ctx context.Context) error
}

// OrderCreator is the outbound port issuing the single order-creation call.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req orderdom.CreateRequest) (orderdom.Created, error)
}

// ConfirmationMailer sends a best-effort confirmation after a completed
// checkout. Optional; failures never affect the checkout outcome.
type ConfirmationMailer interface {
	SendOrderConfirmation(ctx context.Context, snap orderdom.Snapshot, created orderdom.Created) error
}

// CheckoutOrchestrator drives the checkout state machine. Mutual exclusion
// on submission comes from the state guard, not from holding the lock
// across the network call.
type CheckoutOrchestrator struct {
	mu       sync.Mutex
	state    State
	location *orderdom.DeliveryLocation
	snapshot *orderdom.Snapshot
	created  *orderdom.Created
	errMsg   string

	cart    *CartStore
	session SessionVerifier
	orders  OrderCreator
	mailer  ConfirmationMailer
	clock   Clock
}

func NewCheckoutOrchestrator(cart *CartStore, session SessionVerifier, orders OrderCreator) *CheckoutOrchestrator {
	return &CheckoutOrchestrator{
		state:   StateIdle,
		cart:    cart,
		session: session,
		orders:  orders,
		clock:   systemClock{},
	}
}

// WithMailer attaches an optional confirmation mailer.
func (o *CheckoutOrchestrator) WithMailer(m ConfirmationMailer) *CheckoutOrchestrator {
	o.mailer = m
	return o
}

// WithClock is useful for tests.
func (o *CheckoutOrchestrator) WithClock(c Clock) *CheckoutOrchestrator {
	if c != nil {
		o.clock = c
	}
	return o
}

// State returns the current lifecycle position.
func (o *CheckoutOrchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// ErrorMessage returns the user-visible message of the last failure.
func (o *CheckoutOrchestrator) ErrorMessage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMsg
}

// Snapshot returns the order snapshot captured at submission time. It stays
// available in Completed even though the live cart has been emptied.
func (o *CheckoutOrchestrator) Snapshot() (orderdom.Snapshot, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.snapshot == nil {
		return orderdom.Snapshot{}, false
	}
	return *o.snapshot, true
}

// CreatedOrder returns the backend's order-create response when Completed.
func (o *CheckoutOrchestrator) CreatedOrder() (orderdom.Created, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.created == nil {
		return orderdom.Created{}, false
	}
	return *o.created, true
}

// Begin guards Idle -> AwaitingDeliveryLocation: the session must be
// authenticated and the cart non-empty. A violation keeps the machine in
// Idle and returns where to redirect instead.
func (o *CheckoutOrchestrator) Begin(ctx context.Context) (RedirectIntent, error) {
	o.mu.Lock()
	if o.state != StateIdle {
		cur := o.state
		o.mu.Unlock()
		return RedirectNone, fmt.Errorf("%w: begin from %s", ErrInvalidTransition, cur)
	}
	o.mu.Unlock()

	if err := o.session.Verify(ctx); err != nil {
		log.Printf("[checkout] begin blocked: session not verified: %v", err)
		return RedirectLogin, ErrNotAuthenticated
	}
	if o.cart.Len() == 0 {
		return RedirectCart, ErrEmptyCart
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle {
		return RedirectNone, fmt.Errorf("%w: begin from %s", ErrInvalidTransition, o.state)
	}
	o.state = StateAwaitingDeliveryLocation
	return RedirectNone, nil
}

// SetDeliveryLocation records the picked location while awaiting it.
func (o *CheckoutOrchestrator) SetDeliveryLocation(loc orderdom.DeliveryLocation) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateAwaitingDeliveryLocation && o.state != StateFailed {
		return fmt.Errorf("%w: set location from %s", ErrInvalidTransition, o.state)
	}
	cp := loc
	o.location = &cp
	return nil
}

// Submit captures the order snapshot, then issues at most one
// order-creation request for this Submitting episode. Calls made while a
// submission is in flight return ErrAlreadySubmitting and do nothing.
//
// Ordering is mandatory: the snapshot is captured strictly before the
// network call, and the cart is cleared only after the call succeeds.
func (o *CheckoutOrchestrator) Submit(ctx context.Context) (orderdom.Created, error) {
	o.mu.Lock()
	switch o.state {
	case StateSubmitting:
		o.mu.Unlock()
		return orderdom.Created{}, ErrAlreadySubmitting
	case StateAwaitingDeliveryLocation, StateFailed:
		// allowed: first submission, or retry after failure
	default:
		cur := o.state
		o.mu.Unlock()
		return orderdom.Created{}, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, cur)
	}

	if o.location == nil {
		// validation, not fatal: stay put and surface a message
		o.mu.Unlock()
		return orderdom.Created{}, ErrNoDeliveryLocation
	}

	snap := orderdom.NewSnapshot(o.cart.Lines(), *o.location, o.clock.Now())
	o.snapshot = &snap
	o.state = StateSubmitting
	o.errMsg = ""
	o.mu.Unlock()

	created, err := o.orders.CreateOrder(ctx, orderdom.CreateRequestFromSnapshot(snap))
	if err != nil {
		o.mu.Lock()
		o.state = StateFailed
		o.errMsg = submitFailureMessage(err)
		o.mu.Unlock()
		log.Printf("[checkout] order create failed: %v", err)
		return orderdom.Created{}, err
	}

	o.mu.Lock()
	o.state = StateCompleted
	o.created = &created
	o.mu.Unlock()

	// The snapshot renders the success view; the live cart empties now.
	if cErr := o.cart.Clear(ctx); cErr != nil {
		log.Printf("[checkout] WARN: cart purge after order %d failed: %v", created.ID, cErr)
	}

	if o.mailer != nil {
		if mErr := o.mailer.SendOrderConfirmation(ctx, snap, created); mErr != nil {
			log.Printf("[checkout] WARN: confirmation mail failed for order %d: %v", created.ID, mErr)
		}
	}

	log.Printf("[checkout] OK: order created id=%d items=%d total=%s",
		created.ID, len(snap.Items), FormatAmount(snap.Total))
	return created, nil
}

// Abandon returns Failed -> Idle. Cart and delivery location stay intact so
// nothing is lost by navigating away.
func (o *CheckoutOrchestrator) Abandon() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateFailed {
		return fmt.Errorf("%w: abandon from %s", ErrInvalidTransition, o.state)
	}
	o.state = StateIdle
	o.errMsg = ""
	return nil
}

// submitFailureMessage prefers the server-provided detail and falls back to
// a generic message.
func submitFailureMessage(err error) string {
	var detailed interface{ Detail() string }
	if errors.As(err, &detailed) && detailed.Detail() != "" {
		return detailed.Detail()
	}
	return "There was an error processing your checkout. Please try again."
}
