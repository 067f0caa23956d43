package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Checkout confirmation is asynchronous: the provider webhook lands on its
// own schedule after the user pays. The poller bridges that gap for
// post-checkout screens by re-reading the subscription a bounded number of
// times. Exhaustion is not a failure; the payment may still land later.

const (
	// DefaultPollInterval is the delay between subscription reads.
	DefaultPollInterval = 2 * time.Second
	// DefaultMaxAttempts bounds the number of reads before giving up.
	DefaultMaxAttempts = 10

	// ExhaustedMessage is the user-facing text for a poll that gave up.
	ExhaustedMessage = "confirmation is taking longer than expected; your payment may still be processing"
)

// PollOutcome is the terminal state of a poll.
type PollOutcome string

const (
	// OutcomeResolved means the subscription reflects the paid plan.
	OutcomeResolved PollOutcome = "resolved"
	// OutcomeExhausted means the attempt budget ran out before the
	// payment was reflected.
	OutcomeExhausted PollOutcome = "exhausted"
)

// PollResult is the outcome of waiting for a checkout to be reflected.
type PollResult struct {
	Outcome      PollOutcome
	Subscription *Subscription
	Message      string
}

// errNotReflected signals a successful read that does not yet show the
// paid plan, distinguishing "keep polling" from transport failures.
var errNotReflected = errors.New("subscription does not reflect the paid plan yet")

// Poller waits for a completed checkout to be reflected in the
// subscription record.
type Poller struct {
	client      *Client
	interval    time.Duration
	maxAttempts uint
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithPollInterval sets the delay between reads.
func WithPollInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.interval = d
	}
}

// WithMaxAttempts sets the total attempt budget.
func WithMaxAttempts(n uint) PollerOption {
	return func(p *Poller) {
		p.maxAttempts = n
	}
}

// NewPoller creates a poller reading through the given client.
func NewPoller(client *Client, opts ...PollerOption) *Poller {
	p := &Poller{
		client:      client,
		interval:    DefaultPollInterval,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WaitForPaidPlan polls the subscription until the effective plan matches
// planType. The first read happens immediately. Running out of attempts
// returns OutcomeExhausted with a user-facing message, not an error;
// errors are reserved for cancellation and transport failures.
func (p *Poller) WaitForPaidPlan(ctx context.Context, planType string) (*PollResult, error) {
	operation := func() (*Subscription, error) {
		sub, err := p.client.GetMySubscription(ctx)
		if err != nil {
			return nil, err
		}
		if sub.EffectivePlan == planType && sub.HasPaidPlan() {
			return sub, nil
		}
		return nil, errNotReflected
	}

	sub, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(p.interval)),
		backoff.WithMaxTries(p.maxAttempts),
	)
	if err != nil {
		if errors.Is(err, errNotReflected) {
			return &PollResult{
				Outcome: OutcomeExhausted,
				Message: ExhaustedMessage,
			}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("poll subscription: %w", err)
	}

	return &PollResult{
		Outcome:      OutcomeResolved,
		Subscription: sub,
	}, nil
}
