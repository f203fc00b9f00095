package payment

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the confirmation flow's current position.
type State string

const (
	StateWaiting     State = "waiting"
	StateSuccess     State = "success"
	StateTimeout     State = "timeout"
	StateSubmitError State = "submit_error"
)

// DefaultWindow is how long the user has to attest payment.
const DefaultWindow = 60 * time.Second

var (
	// ErrTimedOut is returned when the user confirms after the window
	// expired; Retry must be pressed first.
	ErrTimedOut = errors.New("payment window timed out")
	// ErrClosed is returned for any action after the flow was torn down.
	ErrClosed = errors.New("payment confirmation closed")
	// ErrBadTransition is returned for actions the current state does not
	// allow.
	ErrBadTransition = errors.New("action not allowed in current state")
)

// SubmitFunc places the order once the user attests payment. It receives the
// locally generated transaction id; a retry after a submit error receives
// the SAME id. The backend performs no deduplication on it — if the failed
// submit actually landed, the retry can create a duplicate order. Known
// limitation.
type SubmitFunc func(transactionID string) error

// Confirmation drives the manual QR/UPI payment flow: a single countdown
// window during which the user self-attests payment.
//
//	waiting → success      (confirm, submit ok)
//	waiting → submit_error (confirm, submit failed; Confirm retries)
//	waiting → timeout      (window expired; Retry restarts the window)
//
// Exactly one timer is live at a time, and Close invalidates it so no
// transition fires after the view is torn down.
type Confirmation struct {
	mu     sync.Mutex
	state  State
	txnID  string
	timer  *time.Timer
	window time.Duration
	submit SubmitFunc
	closed bool
}

// NewConfirmation starts a flow in waiting with the countdown armed.
func NewConfirmation(window time.Duration, submit SubmitFunc) *Confirmation {
	if window <= 0 {
		window = DefaultWindow
	}
	c := &Confirmation{
		state:  StateWaiting,
		txnID:  "TXN-" + uuid.NewString(),
		window: window,
		submit: submit,
	}
	c.timer = time.AfterFunc(window, c.expire)
	return c
}

func (c *Confirmation) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != StateWaiting {
		return
	}
	c.state = StateTimeout
}

// State returns the current state.
func (c *Confirmation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// TransactionID returns the locally generated transaction id submitted with
// the order.
func (c *Confirmation) TransactionID() string {
	return c.txnID
}

// Confirm submits the order. Allowed from waiting and, as a retry with the
// same transaction id, from submit_error. From timeout it fails with
// ErrTimedOut until Retry restarts the window.
func (c *Confirmation) Confirm() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	switch c.state {
	case StateWaiting, StateSubmitError:
	case StateTimeout:
		c.mu.Unlock()
		return ErrTimedOut
	default:
		c.mu.Unlock()
		return ErrBadTransition
	}
	c.timer.Stop()
	txnID := c.txnID
	c.mu.Unlock()

	// The submit performs network I/O; keep it outside the lock.
	err := c.submit(txnID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err != nil {
		c.state = StateSubmitError
		return err
	}
	c.state = StateSuccess
	return nil
}

// Retry restarts the countdown after a timeout, returning the flow to
// waiting. Submit errors are retried through Confirm instead.
func (c *Confirmation) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state != StateTimeout {
		return ErrBadTransition
	}
	c.state = StateWaiting
	c.timer = time.AfterFunc(c.window, c.expire)
	return nil
}

// Close tears the flow down: the pending timer is cancelled and no further
// transition can fire. Safe to call more than once.
func (c *Confirmation) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
}
