package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sng-lab/contract"
	"sng-lab/domain"
	"sng-lab/domain/event"
	sngerrors "sng-lab/errors"
	"time"
)

const (
	updatingText      = "Updating SNG status..."
	autoStartedText   = "SNG %s has automatically started with %d players!"
	manualStartedText = "SNG %s has been manually started with %d players!"
)

// Settings tunes a Controller.
type Settings struct {
	Capacity          int
	MinPlayers        int
	InactivityTimeout time.Duration
	AutoEndDelay      time.Duration
	RefreshInterval   time.Duration
	ConfirmationTTL   time.Duration
	OperationTimeout  time.Duration
	AnnounceAutoEnd   bool
	PingOnUpdate      bool
	SweepHistory      bool
	HistoryLimit      int
	TestMode          bool
	MentionGroup      string
}

// Controller runs the session state machine.
// Session state is only touched under the session lock; every call to the
// chat surface happens outside of it and its result is folded back in afterwards.
type Controller struct {
	log       *slog.Logger
	settings  Settings
	connector contract.Connector
	registry  *Registry
	tasks     *TaskGroup
	cleaner   *Cleaner
	notifier  *Notifier
	events    chan<- event.Event
}

var _ contract.SessionController = (*Controller)(nil)

func NewController(log *slog.Logger, settings Settings, connector contract.Connector,
	registry *Registry, cleaner *Cleaner, notifier *Notifier, events chan<- event.Event) *Controller {
	return &Controller{
		log:       log,
		settings:  settings,
		connector: connector,
		registry:  registry,
		tasks:     NewTaskGroup(),
		cleaner:   cleaner,
		notifier:  notifier,
		events:    events,
	}
}

// CreateSession opens a forming session in the starter's channel and posts its status display.
// A session whose status display cannot be posted is torn down right away.
func (c *Controller) CreateSession(ctx context.Context, starter domain.Participant) (domain.Snapshot, error) {
	id, displayID := domain.NewSessionID()
	session := domain.NewSession(id, displayID, starter, c.settings.Capacity, c.settings.MinPlayers, time.Now().UTC())
	timers := NewTimerSet(c.tasks)

	e, err := c.registry.add(session, timers)
	if err != nil {
		return domain.Snapshot{}, err
	}
	e.mu.Lock()
	timers.Arm(TimerInactivity, c.settings.InactivityTimeout, c.expire(id, domain.TriggerInactivity))
	snapshot := session.Snapshot()
	e.mu.Unlock()

	c.log.Info(fmt.Sprintf("SNG %s created by %s", displayID, starter.Name), "session", id, "channel", starter.Channel)
	c.emit(event.New(event.SessionCreatedType, event.SessionCreated{
		Session:   id,
		DisplayID: displayID,
		Starter:   starter.ID,
		Channel:   starter.Channel,
		Capacity:  snapshot.Capacity,
	}))

	status, err := c.connector.RenderStatus(ctx, snapshot)
	if err != nil {
		c.log.Error("Failed to post status display", "session", id, "error", err)
		if _, termErr := c.Terminate(ctx, id, domain.TriggerRecovery); termErr != nil {
			c.log.Debug("Recovery termination skipped", "session", id, "error", termErr)
		}
		return domain.Snapshot{}, fmt.Errorf("%w: status display: %v", sngerrors.ErrDeliveryFailure, err)
	}
	status.Kind = domain.ArtifactStatus
	if !c.foldStatus(ctx, e, status) {
		return domain.Snapshot{}, fmt.Errorf("%w: %s", sngerrors.ErrSessionNotFound, id)
	}

	e.mu.Lock()
	if session.Phase == domain.PhaseForming {
		timers.Every(TimerRefresh, c.settings.RefreshInterval, c.refresh(id))
	}
	e.mu.Unlock()

	c.mention(ctx, e, starter.Channel)
	return snapshot, nil
}

func (c *Controller) mention(ctx context.Context, e *sessionEntry, channel domain.ChannelID) {
	if c.settings.TestMode || c.settings.MentionGroup == "" {
		c.log.Debug("Group mention skipped", "test_mode", c.settings.TestMode)
		return
	}
	handle, err := c.connector.MentionGroup(ctx, channel, c.settings.MentionGroup)
	switch {
	case errors.Is(err, sngerrors.ErrPermissionDenied):
		c.log.Warn("Not allowed to mention group", "group", c.settings.MentionGroup, "channel", channel)
		return
	case err != nil:
		c.log.Warn("Group mention failed", "group", c.settings.MentionGroup, "error", err)
		return
	}
	handle.Kind = domain.ArtifactMention
	c.fold(ctx, e, handle)
}

// ClaimSlot sets the roster to the claimed slot; claiming the last slot starts the session.
func (c *Controller) ClaimSlot(ctx context.Context, id domain.SessionID, p domain.Participant, slot int) (domain.ClaimResult, error) {
	var (
		entry  *sessionEntry
		result domain.ClaimResult
		status domain.ArtifactHandle
	)
	err := c.registry.with(id, func(e *sessionEntry) error {
		entry = e
		if p.Channel != e.session.Channel {
			return sngerrors.ErrWrongChannel
		}
		auto, err := e.session.ClaimSlot(slot, time.Now().UTC())
		if err != nil {
			return err
		}
		if auto {
			c.armStarted(e)
		}
		result = domain.ClaimResult{Snapshot: e.session.Snapshot(), AutoStarted: auto}
		status = e.session.Status
		return nil
	})
	if err != nil {
		return domain.ClaimResult{}, err
	}

	snapshot := result.Snapshot
	c.log.Info(fmt.Sprintf("SNG %s: %s claimed slot %d", snapshot.DisplayID, p.Name, slot), "session", id)
	c.emit(event.New(event.SlotClaimedType, event.SlotClaimed{
		Session:     id,
		Participant: p.ID,
		Slot:        slot,
		AutoStarted: result.AutoStarted,
	}))

	if result.AutoStarted {
		c.onStarted(ctx, entry, status, snapshot, fmt.Sprintf(autoStartedText, snapshot.DisplayID, snapshot.Capacity))
	} else {
		c.refreshStatus(ctx, entry, status, snapshot)
	}
	if c.settings.PingOnUpdate {
		c.ping(ctx, entry, snapshot.Channel)
	}
	return result, nil
}

// ManualStart starts a forming session once enough slots are claimed.
func (c *Controller) ManualStart(ctx context.Context, id domain.SessionID, p domain.Participant) (domain.Snapshot, error) {
	var (
		entry    *sessionEntry
		snapshot domain.Snapshot
		status   domain.ArtifactHandle
	)
	err := c.registry.with(id, func(e *sessionEntry) error {
		entry = e
		if p.Channel != e.session.Channel {
			return sngerrors.ErrWrongChannel
		}
		if err := e.session.Start(time.Now().UTC()); err != nil {
			return err
		}
		c.armStarted(e)
		snapshot = e.session.Snapshot()
		status = e.session.Status
		return nil
	})
	if err != nil {
		return domain.Snapshot{}, err
	}

	c.log.Info(fmt.Sprintf("SNG %s manually started by %s", snapshot.DisplayID, p.Name), "session", id)
	c.onStarted(ctx, entry, status, snapshot, fmt.Sprintf(manualStartedText, snapshot.DisplayID, snapshot.ClaimedSlots))
	return snapshot, nil
}

// armStarted swaps the forming timers for the auto-end timer. Caller holds the session lock.
func (c *Controller) armStarted(e *sessionEntry) {
	e.timers.Disarm(TimerInactivity, TimerRefresh)
	e.timers.Arm(TimerAutoEnd, c.settings.AutoEndDelay, c.expire(e.session.ID, domain.TriggerAutoEnd))
}

func (c *Controller) onStarted(ctx context.Context, e *sessionEntry, status domain.ArtifactHandle, snapshot domain.Snapshot, text string) {
	c.emit(event.New(event.SessionStartedType, event.SessionStarted{
		Session:     snapshot.ID,
		DisplayID:   snapshot.DisplayID,
		Players:     snapshot.ClaimedSlots,
		Automatic:   snapshot.AutoStarted,
		Subscribers: len(snapshot.Subscribers),
	}))
	c.refreshStatus(ctx, e, status, snapshot)

	handle, err := c.connector.SendAnnouncement(ctx, snapshot.Channel, text)
	if err != nil {
		c.log.Warn("Start announcement failed", "session", snapshot.ID, "error", err)
	} else {
		handle.Kind = domain.ArtifactAnnouncement
		c.fold(ctx, e, handle)
	}

	notifyCtx := context.WithoutCancel(ctx)
	if !c.tasks.Go(func() { c.notifier.Notify(notifyCtx, snapshot) }) {
		c.log.Debug("Shutting down, start notifications skipped", "session", snapshot.ID)
	}
}

// ManualEnd terminates a session on behalf of a participant in its channel.
func (c *Controller) ManualEnd(ctx context.Context, id domain.SessionID, p domain.Participant) (domain.TerminationReport, error) {
	return c.terminate(ctx, id, domain.TriggerManual, &p)
}

// ToggleSubscription flips whether the participant gets a direct notice when the session starts.
func (c *Controller) ToggleSubscription(ctx context.Context, id domain.SessionID, p domain.Participant) (bool, error) {
	var (
		entry      *sessionEntry
		subscribed bool
		snapshot   domain.Snapshot
		status     domain.ArtifactHandle
	)
	err := c.registry.with(id, func(e *sessionEntry) error {
		entry = e
		if p.Channel != e.session.Channel {
			return sngerrors.ErrWrongChannel
		}
		on, err := e.session.ToggleSubscriber(p.ID, time.Now().UTC())
		if err != nil {
			return err
		}
		subscribed = on
		snapshot = e.session.Snapshot()
		status = e.session.Status
		return nil
	})
	if err != nil {
		return false, err
	}

	c.log.Info("Notification toggled", "session", id, "participant", p.ID, "subscribed", subscribed,
		"subscribers", len(snapshot.Subscribers))
	c.emit(event.New(event.SubscriptionToggledType, event.SubscriptionToggled{
		Session:     id,
		Participant: p.ID,
		Subscribed:  subscribed,
	}))
	c.refreshStatus(ctx, entry, status, snapshot)
	return subscribed, nil
}

func (c *Controller) Active() []domain.Snapshot {
	return c.registry.Snapshots()
}

// Overdue lists sessions whose own timer should already have ended them.
func (c *Controller) Overdue(now time.Time, grace time.Duration) []domain.SessionID {
	var res []domain.SessionID
	for _, s := range c.registry.Snapshots() {
		var deadline time.Time
		switch s.Phase {
		case domain.PhaseForming:
			deadline = s.CreatedAt.Add(c.settings.InactivityTimeout)
		case domain.PhaseStarted:
			deadline = s.StartedAt.Add(c.settings.AutoEndDelay)
		default:
			continue
		}
		if now.After(deadline.Add(grace)) {
			res = append(res, s.ID)
		}
	}
	return res
}

// refreshStatus redraws the status display. An expired handle is replaced by a
// fresh display, which is tracked like any other artifact.
func (c *Controller) refreshStatus(ctx context.Context, e *sessionEntry, status domain.ArtifactHandle, snapshot domain.Snapshot) {
	if status.IsZero() {
		return
	}
	err := c.connector.UpdateStatus(ctx, status, snapshot)
	if err == nil {
		return
	}
	if !errors.Is(err, sngerrors.ErrStaleHandle) {
		c.log.Warn("Status update failed", "session", snapshot.ID, "error", err)
		return
	}
	c.log.Info("Status handle expired, posting a replacement", "session", snapshot.ID, "artifact", status.ID)
	replacement, err := c.connector.RenderStatus(ctx, snapshot)
	if err != nil {
		c.log.Warn("Replacement status failed", "session", snapshot.ID, "error", err)
		return
	}
	replacement.Kind = domain.ArtifactReplacement
	c.foldStatus(ctx, e, replacement)
}

func (c *Controller) ping(ctx context.Context, e *sessionEntry, channel domain.ChannelID) {
	handle, err := c.connector.SendAnnouncement(ctx, channel, updatingText)
	if err != nil {
		c.log.Debug("Status ping failed", "channel", channel, "error", err)
		return
	}
	handle.Kind = domain.ArtifactPing
	if !c.fold(ctx, e, handle) {
		return
	}
	c.cleaner.Delete(ctx, handle)
	e.mu.Lock()
	e.session.Artifacts.MarkDeleted(handle.ID)
	e.mu.Unlock()
}

// fold tracks an artifact produced outside the lock.
// If the session ended meanwhile the artifact is deleted immediately and false is returned.
func (c *Controller) fold(ctx context.Context, e *sessionEntry, handle domain.ArtifactHandle) bool {
	e.mu.Lock()
	if e.session.Phase == domain.PhaseEnded {
		e.mu.Unlock()
		c.log.Debug("Late artifact, deleting", "session", e.session.ID, "artifact", handle.ID, "kind", handle.Kind)
		c.cleaner.Delete(ctx, handle)
		return false
	}
	e.session.Artifacts.Track(handle)
	e.mu.Unlock()
	return true
}

func (c *Controller) foldStatus(ctx context.Context, e *sessionEntry, handle domain.ArtifactHandle) bool {
	e.mu.Lock()
	if e.session.Phase == domain.PhaseEnded {
		e.mu.Unlock()
		c.log.Debug("Late status display, deleting", "session", e.session.ID, "artifact", handle.ID)
		c.cleaner.Delete(ctx, handle)
		return false
	}
	e.session.Status = handle
	e.session.Artifacts.Track(handle)
	e.mu.Unlock()
	return true
}

// expire builds the callback of a one-shot ending timer.
func (c *Controller) expire(id domain.SessionID, trigger domain.Trigger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.settings.OperationTimeout)
		defer cancel()
		c.log.Info(fmt.Sprintf("%s timer fired", trigger), "session", id)
		if _, err := c.Terminate(ctx, id, trigger); err != nil {
			c.log.Debug("Timer termination skipped", "session", id, "trigger", trigger.String(), "error", err)
		}
	}
}

func (c *Controller) refresh(id domain.SessionID) func() {
	return func() {
		e, ok := c.registry.lookup(id)
		if !ok || e.ending.Load() {
			return
		}
		e.mu.Lock()
		if e.session.Phase != domain.PhaseForming {
			e.mu.Unlock()
			return
		}
		snapshot := e.session.Snapshot()
		status := e.session.Status
		e.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), c.settings.OperationTimeout)
		defer cancel()
		c.log.Debug("Refreshing status display", "session", id)
		c.refreshStatus(ctx, e, status, snapshot)
	}
}

func (c *Controller) emit(evt event.Event) {
	if c.events == nil {
		return
	}
	select {
	case c.events <- evt:
	default:
		c.log.Warn("Lifecycle event channel full, dropping event", "type", evt.Type)
	}
}
