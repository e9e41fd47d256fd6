package workers

import (
	"context"
	"log/slog"
	"sng-lab/contract"
	"sng-lab/domain"
	"time"
)

// ChannelGuardWorker keeps designated channels free of chatter.
// Messages the policy rejects are deleted; a failed deletion is only logged.
type ChannelGuardWorker struct {
	log           *slog.Logger
	policy        domain.ChannelPolicy
	connector     contract.Connector
	messages      <-chan domain.ChatMessage
	deleteTimeout time.Duration
}

func NewChannelGuardWorker(log *slog.Logger, policy domain.ChannelPolicy, connector contract.Connector,
	messages <-chan domain.ChatMessage, deleteTimeout time.Duration) *ChannelGuardWorker {
	return &ChannelGuardWorker{
		log:           log,
		policy:        policy,
		connector:     connector,
		messages:      messages,
		deleteTimeout: deleteTimeout,
	}
}

func (w ChannelGuardWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return nil
		case msg, ok := <-w.messages:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			w.Guard(ctx, msg)
		}
	}
}

// Guard returns true when the message was removed.
func (w ChannelGuardWorker) Guard(ctx context.Context, msg domain.ChatMessage) bool {
	if w.policy.Allows(msg) {
		return false
	}
	deleteCtx, cancel := context.WithTimeout(ctx, w.deleteTimeout)
	defer cancel()
	if err := w.connector.DeleteArtifact(deleteCtx, msg.Handle()); err != nil {
		w.log.Warn("Failed to delete message", "channel", msg.Channel, "author", msg.Author, "error", err)
		return false
	}
	w.log.Info("Deleted message in designated channel", "channel", msg.Channel, "author", msg.Author)
	return true
}
