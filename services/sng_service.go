package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sng-lab/contract"
	"sng-lab/domain"
	sngerrors "sng-lab/errors"
	"strings"

	"github.com/samber/lo"
)

const (
	StartCommand = "/start"

	missingRoleText     = "You don't have the required role to use this command."
	notDesignatedText   = "This command can only be used in designated channels."
	afterStartText      = "Cannot modify players after SNG has started."
	notEnoughText       = "Cannot start SNG. Make sure there are at least 2 players."
	alreadyStartedText  = "This SNG has already started."
	alreadyEndedText    = "This SNG has already been ended."
	wrongChannelText    = "This SNG belongs to another channel."
	subscribedText      = "You will be notified when this game starts."
	unsubscribedText    = "You will no longer be notified when this game starts."
	unexpectedErrorText = "An unexpected error occurred."
)

// MessageObserver receives free text posted in channels.
type MessageObserver interface {
	Observe(msg domain.ChatMessage)
}

// SNGService maps participant actions to session operations and answers the actor privately.
type SNGService struct {
	log        *slog.Logger
	controller contract.SessionController
	connector  contract.Connector
	observer   MessageObserver
	policy     domain.ChannelPolicy
	roleName   string
}

var _ contract.InteractionHandler = (*SNGService)(nil)

func NewSNGService(log *slog.Logger, controller contract.SessionController, connector contract.Connector,
	observer MessageObserver, policy domain.ChannelPolicy, roleName string) *SNGService {
	return &SNGService{
		log:        log,
		controller: controller,
		connector:  connector,
		observer:   observer,
		policy:     policy,
		roleName:   roleName,
	}
}

// HandleCommand runs a slash command. Only /start exists.
func (s *SNGService) HandleCommand(ctx context.Context, p domain.Participant, command string) {
	defer s.recover(ctx, p, "command")
	name := strings.Fields(command)
	if len(name) == 0 || name[0] != StartCommand {
		s.reply(ctx, p, fmt.Sprintf("Unknown command %q.", command))
		return
	}
	if err := s.authorizeStart(p); err != nil {
		s.log.Info("Start refused", "participant", p.ID, "channel", p.Channel, "error", err)
		s.reply(ctx, p, describe(err))
		return
	}
	if _, err := s.controller.CreateSession(ctx, p); err != nil {
		s.log.Error("Failed to open SNG", "participant", p.ID, "error", err)
		s.reply(ctx, p, describe(err))
	}
}

func (s *SNGService) authorizeStart(p domain.Participant) error {
	if s.roleName != "" && !p.HasRole(s.roleName) {
		return sngerrors.ErrMissingRole
	}
	if !s.policy.IsDesignated(p.Channel) {
		return sngerrors.ErrNotDesignatedChannel
	}
	return nil
}

// HandleControl runs a button press on a status display.
func (s *SNGService) HandleControl(ctx context.Context, p domain.Participant, controlID string) {
	defer s.recover(ctx, p, "control")
	control, err := domain.ParseControl(controlID)
	if err != nil {
		s.log.Warn("Unknown control", "participant", p.ID, "control", controlID)
		s.reply(ctx, p, describe(err))
		return
	}

	switch control.Kind {
	case domain.ControlClaim:
		_, err = s.controller.ClaimSlot(ctx, control.Session, p, control.Slot)
		if errors.Is(err, sngerrors.ErrAlreadyStarted) {
			s.reply(ctx, p, afterStartText)
			return
		}
	case domain.ControlStart:
		_, err = s.controller.ManualStart(ctx, control.Session, p)
	case domain.ControlEnd:
		// The confirmation is sent to the actor by the termination itself.
		_, err = s.controller.ManualEnd(ctx, control.Session, p)
	case domain.ControlNotify:
		var subscribed bool
		subscribed, err = s.controller.ToggleSubscription(ctx, control.Session, p)
		if err == nil {
			s.reply(ctx, p, lo.Ternary(subscribed, subscribedText, unsubscribedText))
			return
		}
	}
	if err != nil {
		s.log.Info("Control refused", "participant", p.ID, "control", controlID, "error", err)
		s.reply(ctx, p, describe(err))
	}
}

// HandleMessage passes free text to the channel guard.
func (s *SNGService) HandleMessage(ctx context.Context, msg domain.ChatMessage) {
	defer s.recover(ctx, domain.Participant{ID: msg.Author, Channel: msg.Channel}, "message")
	if s.observer != nil {
		s.observer.Observe(msg)
	}
}

func (s *SNGService) reply(ctx context.Context, p domain.Participant, text string) {
	if err := s.connector.SendEphemeral(ctx, p.ID, text); err != nil {
		s.log.Debug("Reply not delivered", "participant", p.ID, "error", err)
	}
}

func (s *SNGService) recover(ctx context.Context, p domain.Participant, what string) {
	if r := recover(); r != nil {
		s.log.Error(fmt.Sprintf("Panic while handling %s", what), "participant", p.ID, "panic", r)
		s.reply(ctx, p, unexpectedErrorText)
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, sngerrors.ErrMissingRole):
		return missingRoleText
	case errors.Is(err, sngerrors.ErrNotDesignatedChannel):
		return notDesignatedText
	case errors.Is(err, sngerrors.ErrInsufficientPlayers):
		return notEnoughText
	case errors.Is(err, sngerrors.ErrAlreadyStarted):
		return alreadyStartedText
	case errors.Is(err, sngerrors.ErrSessionNotFound),
		errors.Is(err, sngerrors.ErrAlreadyEnded),
		errors.Is(err, sngerrors.ErrAlreadyEnding):
		return alreadyEndedText
	case errors.Is(err, sngerrors.ErrWrongChannel):
		return wrongChannelText
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}
