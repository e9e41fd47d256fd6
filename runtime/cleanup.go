package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sng-lab/contract"
	"sng-lab/domain"
	sngerrors "sng-lab/errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy is the declared deletion policy applied to every artifact.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2,
	}
}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.Multiplier = p.Multiplier
	return b
}

// Cleaner deletes artifacts from the chat surface.
// Outcomes are classified per artifact and one failure never stops a sweep:
//   - not found counts as deleted and consumes no retry
//   - forbidden is terminal for that artifact
//   - stale handles are re-resolved through their channel once, then retried
//   - anything else is transient and retried with backoff
type Cleaner struct {
	log       *slog.Logger
	connector contract.Connector
	policy    RetryPolicy
}

func NewCleaner(log *slog.Logger, connector contract.Connector, policy RetryPolicy) *Cleaner {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Cleaner{log: log, connector: connector, policy: policy}
}

func (c *Cleaner) DeleteAll(ctx context.Context, handles []domain.ArtifactHandle) []domain.ArtifactResult {
	results := make([]domain.ArtifactResult, 0, len(handles))
	for _, h := range handles {
		results = append(results, c.Delete(ctx, h))
	}
	return results
}

func (c *Cleaner) Delete(ctx context.Context, handle domain.ArtifactHandle) domain.ArtifactResult {
	result := domain.ArtifactResult{Handle: handle}
	current := handle
	resolved := false

	operation := func() (domain.CleanupOutcome, error) {
		result.Attempts++
		err := c.connector.DeleteArtifact(ctx, current)
		if !errors.Is(err, sngerrors.ErrStaleHandle) {
			return classify(err)
		}
		if resolved {
			return domain.OutcomeFailed, backoff.Permanent(err)
		}
		resolved = true
		fresh, resolveErr := c.connector.ResolveArtifact(ctx, current)
		if errors.Is(resolveErr, sngerrors.ErrArtifactNotFound) {
			return domain.OutcomeNotFound, nil
		}
		if resolveErr != nil {
			return domain.OutcomeFailed, backoff.Permanent(fmt.Errorf("resolve artifact: %w", resolveErr))
		}
		// The resolved handle is deleted within the same attempt so the
		// fallback still runs when the stale error came on the last try.
		current = fresh
		return classify(c.connector.DeleteArtifact(ctx, current))
	}

	outcome, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.policy.backOff()),
		backoff.WithMaxTries(uint(c.policy.MaxAttempts)),
	)
	result.Outcome = outcome
	result.Err = err
	if err != nil {
		c.log.Warn("Artifact deletion failed",
			"artifact", handle.ID,
			"kind", handle.Kind,
			"outcome", outcome.String(),
			"attempts", result.Attempts,
			"error", err)
		return result
	}
	c.log.Debug("Artifact deleted", "artifact", handle.ID, "kind", handle.Kind, "outcome", outcome.String())
	return result
}

func classify(err error) (domain.CleanupOutcome, error) {
	switch {
	case err == nil:
		return domain.OutcomeDeleted, nil
	case errors.Is(err, sngerrors.ErrArtifactNotFound):
		return domain.OutcomeNotFound, nil
	case errors.Is(err, sngerrors.ErrPermissionDenied):
		return domain.OutcomeForbidden, backoff.Permanent(err)
	case errors.Is(err, sngerrors.ErrStaleHandle):
		// a resolved handle never goes stale, a second stale answer is final
		return domain.OutcomeFailed, backoff.Permanent(err)
	default:
		return domain.OutcomeFailed, err
	}
}
