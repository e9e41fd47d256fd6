package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sng-lab/contract"
	"sng-lab/domain"
	"sng-lab/errors"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// DefaultInteractionTTL mirrors how long chat platforms keep interaction tokens usable.
const DefaultInteractionTTL = 15 * time.Minute

type SurfaceOptions struct {
	Self            domain.Identity
	InteractionTTL  time.Duration
	ManagedChannels []domain.ChannelID
}

type postedMessage struct {
	handle domain.ArtifactHandle
	author domain.Identity
	text   string
	status *domain.StatusView
}

// Surface is the chat surface served over websockets.
// It keeps every message posted in each channel and pushes changes to connected participants.
// Handles issued while answering an interaction go stale after the interaction TTL;
// handles re-resolved through the channel never do.
type Surface struct {
	mu       sync.Mutex
	log      *slog.Logger
	hub      *Hub
	opts     SurfaceOptions
	seq      uint64
	messages map[domain.ArtifactID]*postedMessage
	history  map[domain.ChannelID][]domain.ArtifactID
	now      func() time.Time
}

var _ contract.Connector = (*Surface)(nil)

func NewSurface(log *slog.Logger, hub *Hub, opts SurfaceOptions) *Surface {
	if opts.InteractionTTL <= 0 {
		opts.InteractionTTL = DefaultInteractionTTL
	}
	return &Surface{
		log:      log,
		hub:      hub,
		opts:     opts,
		messages: make(map[domain.ArtifactID]*postedMessage),
		history:  make(map[domain.ChannelID][]domain.ArtifactID),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// post stores a message. Caller holds s.mu.
func (s *Surface) post(channel domain.ChannelID, author domain.Identity, text string, scope domain.HandleScope) *postedMessage {
	s.seq++
	msg := &postedMessage{
		handle: domain.ArtifactHandle{
			ID:       domain.ArtifactID(fmt.Sprintf("%s-%d", channel, s.seq)),
			Channel:  channel,
			Scope:    scope,
			IssuedAt: s.now(),
		},
		author: author,
		text:   text,
	}
	s.messages[msg.handle.ID] = msg
	s.history[channel] = append(s.history[channel], msg.handle.ID)
	return msg
}

func (s *Surface) stale(h domain.ArtifactHandle) bool {
	return h.Scope == domain.ScopeInteraction && s.now().Sub(h.IssuedAt) > s.opts.InteractionTTL
}

func (s *Surface) frame(kind string, msg *postedMessage) Outbound {
	return Outbound{
		Type:    kind,
		ID:      msg.handle.ID,
		Channel: msg.handle.Channel,
		Author:  msg.author,
		Text:    msg.text,
		Status:  msg.status,
		At:      s.now(),
	}
}

func statusText(view domain.StatusView) string {
	return strings.Join([]string{view.Title, view.Footer}, "\n")
}

func (s *Surface) RenderStatus(ctx context.Context, snapshot domain.Snapshot) (domain.ArtifactHandle, error) {
	if err := ctx.Err(); err != nil {
		return domain.ArtifactHandle{}, fmt.Errorf("%w: %v", errors.ErrDeliveryFailure, err)
	}
	view := domain.NewStatusView(snapshot)
	s.mu.Lock()
	msg := s.post(snapshot.Channel, s.opts.Self, statusText(view), domain.ScopeInteraction)
	msg.status = &view
	out := s.frame(FramePosted, msg)
	s.mu.Unlock()

	s.hub.Broadcast(snapshot.Channel, out)
	return msg.handle, nil
}

func (s *Surface) UpdateStatus(ctx context.Context, handle domain.ArtifactHandle, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.stale(handle) {
		return fmt.Errorf("%w: %s", errors.ErrStaleHandle, handle.ID)
	}
	view := domain.NewStatusView(snapshot)
	s.mu.Lock()
	msg, ok := s.messages[handle.ID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", errors.ErrArtifactNotFound, handle.ID)
	}
	msg.status = &view
	msg.text = statusText(view)
	out := s.frame(FrameUpdated, msg)
	s.mu.Unlock()

	s.hub.Broadcast(handle.Channel, out)
	return nil
}

// SendAnnouncement answers the current interaction in the channel, so the handle is interaction scoped.
func (s *Surface) SendAnnouncement(ctx context.Context, channel domain.ChannelID, text string) (domain.ArtifactHandle, error) {
	return s.say(ctx, channel, text, domain.ScopeInteraction)
}

func (s *Surface) MentionGroup(ctx context.Context, channel domain.ChannelID, group string) (domain.ArtifactHandle, error) {
	if group == "" {
		return domain.ArtifactHandle{}, fmt.Errorf("%w: empty group", errors.ErrPermissionDenied)
	}
	return s.say(ctx, channel, "@"+group, domain.ScopeChannel)
}

func (s *Surface) say(ctx context.Context, channel domain.ChannelID, text string, scope domain.HandleScope) (domain.ArtifactHandle, error) {
	if err := ctx.Err(); err != nil {
		return domain.ArtifactHandle{}, fmt.Errorf("%w: %v", errors.ErrDeliveryFailure, err)
	}
	s.mu.Lock()
	msg := s.post(channel, s.opts.Self, text, scope)
	out := s.frame(FramePosted, msg)
	s.mu.Unlock()

	s.hub.Broadcast(channel, out)
	return msg.handle, nil
}

func (s *Surface) SendEphemeral(_ context.Context, recipient domain.Identity, text string) error {
	if !s.hub.Send(recipient, Outbound{Type: FrameEphemeral, Text: text, At: s.now()}) {
		return fmt.Errorf("%w: %s", errors.ErrUndeliverable, recipient)
	}
	return nil
}

func (s *Surface) NotifySubscriber(ctx context.Context, recipient domain.Identity, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.hub.Send(recipient, Outbound{Type: FrameDirect, Author: s.opts.Self, Text: text, At: s.now()}) {
		return fmt.Errorf("%w: %s", errors.ErrUndeliverable, recipient)
	}
	return nil
}

func (s *Surface) DeleteArtifact(ctx context.Context, handle domain.ArtifactHandle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.stale(handle) {
		return fmt.Errorf("%w: %s", errors.ErrStaleHandle, handle.ID)
	}
	s.mu.Lock()
	msg, ok := s.messages[handle.ID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", errors.ErrArtifactNotFound, handle.ID)
	}
	if msg.author != s.opts.Self && !s.manages(msg.handle.Channel) {
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot delete messages in %s", errors.ErrPermissionDenied, msg.handle.Channel)
	}
	delete(s.messages, handle.ID)
	channel := msg.handle.Channel
	s.history[channel] = lo.Without(s.history[channel], handle.ID)
	out := Outbound{Type: FrameDeleted, ID: handle.ID, Channel: channel, At: s.now()}
	s.mu.Unlock()

	s.hub.Broadcast(channel, out)
	return nil
}

func (s *Surface) manages(channel domain.ChannelID) bool {
	return len(s.opts.ManagedChannels) == 0 || lo.Contains(s.opts.ManagedChannels, channel)
}

// ResolveArtifact re-fetches a message through its channel, giving a handle that never expires.
func (s *Surface) ResolveArtifact(ctx context.Context, handle domain.ArtifactHandle) (domain.ArtifactHandle, error) {
	if err := ctx.Err(); err != nil {
		return domain.ArtifactHandle{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages[handle.ID]
	if !ok {
		return domain.ArtifactHandle{}, fmt.Errorf("%w: %s", errors.ErrArtifactNotFound, handle.ID)
	}
	resolved := msg.handle
	resolved.Kind = handle.Kind
	resolved.Scope = domain.ScopeChannel
	resolved.IssuedAt = s.now()
	return resolved, nil
}

// FindArtifacts scans the last limit messages of a channel, newest first,
// and keeps those posted by the surface itself whose text contains marker.
func (s *Surface) FindArtifacts(ctx context.Context, channel domain.ChannelID, marker string, limit int) ([]domain.ArtifactHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.history[channel]
	if limit > 0 && len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}
	window := slices.Clone(ids)
	slices.Reverse(window)

	var found []domain.ArtifactHandle
	for _, id := range window {
		msg := s.messages[id]
		if msg.author != s.opts.Self || !strings.Contains(msg.text, marker) {
			continue
		}
		h := msg.handle
		h.Scope = domain.ScopeChannel
		found = append(found, h)
	}
	return found, nil
}

// PostUserMessage records free text typed by a participant and shows it to the channel.
func (s *Surface) PostUserMessage(p domain.Participant, text string) domain.ChatMessage {
	s.mu.Lock()
	msg := s.post(p.Channel, p.ID, text, domain.ScopeChannel)
	out := s.frame(FramePosted, msg)
	s.mu.Unlock()

	s.hub.Broadcast(p.Channel, out)
	return domain.ChatMessage{
		ID:        msg.handle.ID,
		Channel:   p.Channel,
		Author:    p.ID,
		Content:   text,
		CreatedAt: msg.handle.IssuedAt,
	}
}
