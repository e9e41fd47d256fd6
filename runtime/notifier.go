package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sng-lab/contract"
	"sng-lab/domain"
	sngerrors "sng-lab/errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Notifier delivers the start notice to every subscriber of a session.
// Deliveries run in parallel with a bounded fan-out; a failed delivery is logged
// and never affects the session or the other subscribers.
type Notifier struct {
	log         *slog.Logger
	connector   contract.Connector
	concurrency int
	timeout     time.Duration
}

func NewNotifier(log *slog.Logger, connector contract.Connector, concurrency int, timeout time.Duration) *Notifier {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Notifier{log: log, connector: connector, concurrency: concurrency, timeout: timeout}
}

// Notify returns how many subscribers were reached.
func (n *Notifier) Notify(ctx context.Context, snapshot domain.Snapshot) int {
	if len(snapshot.Subscribers) == 0 {
		return 0
	}
	text := fmt.Sprintf("The SNG game %s has started!", snapshot.DisplayID)

	var delivered atomic.Int32
	var g errgroup.Group
	g.SetLimit(n.concurrency)
	for _, recipient := range snapshot.Subscribers {
		g.Go(func() error {
			deliveryCtx, cancel := context.WithTimeout(ctx, n.timeout)
			defer cancel()
			err := n.connector.NotifySubscriber(deliveryCtx, recipient, text)
			switch {
			case err == nil:
				delivered.Add(1)
				n.log.Debug("Notification sent", "session", snapshot.ID, "recipient", recipient)
			case errors.Is(err, sngerrors.ErrUndeliverable):
				n.log.Warn("Subscriber unreachable", "session", snapshot.ID, "recipient", recipient, "error", err)
			default:
				n.log.Warn("Failed to notify subscriber", "session", snapshot.ID, "recipient", recipient, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	n.log.Info(fmt.Sprintf("%d/%d subscriber(s) notified for SNG %s",
		delivered.Load(), len(snapshot.Subscribers), snapshot.DisplayID))
	return int(delivered.Load())
}
