package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/metrics"
	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// DefaultCallTimeout bounds one notifier call including its retries.
const DefaultCallTimeout = 10 * time.Second

// Dispatcher fans game events out to every registered notifier.
// Calls run in the background; failures are logged and counted, never returned.
type Dispatcher struct {
	registry *Registry
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher over a registry.
func NewDispatcher(registry *Registry, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Dispatcher{
		registry: registry,
		timeout:  timeout,
	}
}

// MissionCreated announces a released puzzle to all notifiers.
func (d *Dispatcher) MissionCreated(ctx context.Context, mission MissionMetadata) {
	d.dispatch(ctx, "create_mission", func(ctx context.Context, n Notifier) error {
		return n.CreateMission(ctx, mission)
	})
}

// MissionCompleted reports a completed puzzle. Skipped when the player has no wallet.
func (d *Dispatcher) MissionCompleted(ctx context.Context, recipient Recipient, puzzleID string, results MissionResults) {
	if !d.hasWallet(recipient, "complete_mission") {
		return
	}
	d.dispatch(ctx, "complete_mission", func(ctx context.Context, n Notifier) error {
		return n.CompleteMission(ctx, recipient, puzzleID, results)
	})
}

// TraitsUnlocked pushes the player's trait set. Skipped when the player has no wallet or no traits.
func (d *Dispatcher) TraitsUnlocked(ctx context.Context, recipient Recipient, traits []player.Trait) {
	if len(traits) == 0 || !d.hasWallet(recipient, "update_traits") {
		return
	}
	d.dispatch(ctx, "update_traits", func(ctx context.Context, n Notifier) error {
		return n.UpdateTraits(ctx, recipient, traits)
	})
}

// MissionClaimed reports a claimed mission. Skipped when the player has no wallet.
func (d *Dispatcher) MissionClaimed(ctx context.Context, recipient Recipient, missionID string) {
	if !d.hasWallet(recipient, "claim_mission") {
		return
	}
	d.dispatch(ctx, "claim_mission", func(ctx context.Context, n Notifier) error {
		return n.ClaimMission(ctx, recipient, missionID)
	})
}

// Wait blocks until all in-flight calls finish.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) hasWallet(recipient Recipient, call string) bool {
	if recipient.HasWallet() {
		return true
	}
	logrus.Debugf("skipping %s for player %s: no wallet linked", call, recipient.PlayerID)
	return false
}

func (d *Dispatcher) dispatch(ctx context.Context, call string, fn func(context.Context, Notifier) error) {
	// outlive the request that produced the event
	base := context.WithoutCancel(ctx)

	for _, n := range d.registry.GetAll() {
		d.wg.Add(1)
		go func(n Notifier) {
			defer d.wg.Done()

			callCtx, cancel := context.WithTimeout(base, d.timeout)
			defer cancel()

			err := backoff.Retry(func() error {
				err := fn(callCtx, n)
				if errors.Is(err, ErrCallNotSupported) {
					return backoff.Permanent(err)
				}
				if err != nil {
					logrus.Warnf("notifier %s %s failed: %v", n.ID(), call, err)
				}
				return err
			}, backoff.WithContext(retryPolicy(n.Config().Retry), callCtx))

			result := "success"
			switch {
			case errors.Is(err, ErrCallNotSupported):
				result = "skipped"
			case err != nil:
				result = "error"
				logrus.Errorf("notifier %s %s gave up: %v", n.ID(), call, err)
			default:
				logrus.Infof("notifier %s %s completed", n.ID(), call)
			}
			metrics.NotifierCallsTotal.WithLabelValues(n.ID(), call, result).Inc()
		}(n)
	}
}

// retryPolicy builds the backoff for a notifier. No retry config means a single attempt.
func retryPolicy(cfg *RetryConfig) backoff.BackOff {
	if cfg == nil || cfg.MaxAttempts <= 1 {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 0)
	}

	var b backoff.BackOff
	switch cfg.Backoff {
	case "exponential":
		exp := backoff.NewExponentialBackOff()
		if cfg.Delay > 0 {
			exp.InitialInterval = cfg.Delay
		}
		b = exp
	default:
		b = backoff.NewConstantBackOff(cfg.Delay)
	}
	return backoff.WithMaxRetries(b, uint64(cfg.MaxAttempts-1))
}
