package services

import (
	"context"
	"fmt"
	"log/slog"
	"sng-lab/domain"
	sngerrors "sng-lab/errors"
	"sng-lab/mocks"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingObserver struct {
	messages []domain.ChatMessage
}

func (r *recordingObserver) Observe(msg domain.ChatMessage) {
	r.messages = append(r.messages, msg)
}

var (
	policy  = domain.ChannelPolicy{Designated: []domain.ChannelID{"c1"}}
	starter = domain.Participant{ID: "u1", Name: "alice", Roles: []string{"SNG Host"}, Channel: "c1"}
)

func newTestService(t *testing.T) (*SNGService, *mocks.MockSessionController, *mocks.MockConnector, *recordingObserver) {
	t.Helper()
	ctrl := gomock.NewController(t)
	controller := mocks.NewMockSessionController(ctrl)
	connector := mocks.NewMockConnector(ctrl)
	observer := &recordingObserver{}
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return NewSNGService(log, controller, connector, observer, policy, "SNG Host"), controller, connector, observer
}

func TestSNGService_StartCommand(t *testing.T) {
	service, controller, _, _ := newTestService(t)

	// Given a host in a designated channel
	controller.EXPECT().CreateSession(gomock.Any(), starter).Return(domain.Snapshot{ID: "s1"}, nil).Times(1)

	// When /start is used
	service.HandleCommand(context.Background(), starter, "/start")
}

func TestSNGService_StartCommandRequiresRole(t *testing.T) {
	service, _, connector, _ := newTestService(t)
	guest := starter
	guest.Roles = nil

	// Then the guest is told privately, and no session is opened
	connector.EXPECT().SendEphemeral(gomock.Any(), guest.ID, missingRoleText).Return(nil).Times(1)

	service.HandleCommand(context.Background(), guest, "/start")
}

func TestSNGService_StartCommandOutsideDesignatedChannel(t *testing.T) {
	service, _, connector, _ := newTestService(t)
	elsewhere := starter
	elsewhere.Channel = "c2"

	connector.EXPECT().SendEphemeral(gomock.Any(), elsewhere.ID, notDesignatedText).Return(nil).Times(1)

	service.HandleCommand(context.Background(), elsewhere, "/start")
}

func TestSNGService_UnknownCommand(t *testing.T) {
	service, _, connector, _ := newTestService(t)

	connector.EXPECT().SendEphemeral(gomock.Any(), starter.ID, `Unknown command "/stop".`).Return(nil).Times(1)

	service.HandleCommand(context.Background(), starter, "/stop")
}

func TestSNGService_ClaimAfterStart(t *testing.T) {
	service, controller, connector, _ := newTestService(t)

	// Given a session that already started
	controller.EXPECT().ClaimSlot(gomock.Any(), domain.SessionID("s1"), starter, 3).
		Return(domain.ClaimResult{}, fmt.Errorf("claim slot 3: %w", sngerrors.ErrAlreadyStarted)).Times(1)
	connector.EXPECT().SendEphemeral(gomock.Any(), starter.ID, afterStartText).Return(nil).Times(1)

	// When a player button is pressed
	service.HandleControl(context.Background(), starter, "player_s1_3")
}

func TestSNGService_ClaimSucceedsSilently(t *testing.T) {
	service, controller, _, _ := newTestService(t)

	controller.EXPECT().ClaimSlot(gomock.Any(), domain.SessionID("s1"), starter, 1).
		Return(domain.ClaimResult{}, nil).Times(1)

	service.HandleControl(context.Background(), starter, "player_s1_1")
}

func TestSNGService_StartWithoutEnoughPlayers(t *testing.T) {
	service, controller, connector, _ := newTestService(t)

	controller.EXPECT().ManualStart(gomock.Any(), domain.SessionID("s1"), starter).
		Return(domain.Snapshot{}, sngerrors.ErrInsufficientPlayers).Times(1)
	connector.EXPECT().SendEphemeral(gomock.Any(), starter.ID, notEnoughText).Return(nil).Times(1)

	service.HandleControl(context.Background(), starter, "start_sng_s1")
}

func TestSNGService_EndTwice(t *testing.T) {
	service, controller, connector, _ := newTestService(t)

	controller.EXPECT().ManualEnd(gomock.Any(), domain.SessionID("s1"), starter).
		Return(domain.TerminationReport{}, sngerrors.ErrSessionNotFound).Times(1)
	connector.EXPECT().SendEphemeral(gomock.Any(), starter.ID, alreadyEndedText).Return(nil).Times(1)

	service.HandleControl(context.Background(), starter, "end_sng_s1")
}

func TestSNGService_ToggleSubscription(t *testing.T) {
	service, controller, connector, _ := newTestService(t)

	gomock.InOrder(
		controller.EXPECT().ToggleSubscription(gomock.Any(), domain.SessionID("s1"), starter).Return(true, nil),
		connector.EXPECT().SendEphemeral(gomock.Any(), starter.ID, subscribedText).Return(nil),
		controller.EXPECT().ToggleSubscription(gomock.Any(), domain.SessionID("s1"), starter).Return(false, nil),
		connector.EXPECT().SendEphemeral(gomock.Any(), starter.ID, unsubscribedText).Return(nil),
	)

	service.HandleControl(context.Background(), starter, "notify_me_s1")
	service.HandleControl(context.Background(), starter, "notify_me_s1")
}

func TestSNGService_UnknownControl(t *testing.T) {
	service, _, connector, _ := newTestService(t)

	connector.EXPECT().SendEphemeral(gomock.Any(), starter.ID, gomock.Any()).Return(nil).Times(1)

	service.HandleControl(context.Background(), starter, "shuffle_s1")
}

func TestSNGService_PanicIsReportedToActor(t *testing.T) {
	service, controller, connector, _ := newTestService(t)

	// Given a controller that blows up
	controller.EXPECT().ManualStart(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.SessionID, domain.Participant) (domain.Snapshot, error) {
			panic("boom")
		}).Times(1)
	connector.EXPECT().SendEphemeral(gomock.Any(), starter.ID, unexpectedErrorText).Return(nil).Times(1)

	// Then the panic does not escape the handler
	service.HandleControl(context.Background(), starter, "start_sng_s1")
}

func TestSNGService_HandleMessage(t *testing.T) {
	req := require.New(t)
	service, _, _, observer := newTestService(t)
	msg := domain.ChatMessage{ID: "m1", Channel: "c1", Author: "u2", Content: "hello"}

	service.HandleMessage(context.Background(), msg)

	req.Len(observer.messages, 1)
	req.Equal(msg, observer.messages[0])
}

func TestDescribe(t *testing.T) {
	req := require.New(t)
	req.Equal(alreadyStartedText, describe(sngerrors.ErrAlreadyStarted))
	req.Equal(alreadyEndedText, describe(fmt.Errorf("end: %w", sngerrors.ErrAlreadyEnding)))
	req.Equal(wrongChannelText, describe(sngerrors.ErrWrongChannel))
	req.Equal("An error occurred: boom", describe(fmt.Errorf("boom")))
}
