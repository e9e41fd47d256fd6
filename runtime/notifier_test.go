package runtime

import (
	"context"
	"errors"
	"log/slog"
	"sng-lab/domain"
	sngerrors "sng-lab/errors"
	"sng-lab/mocks"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotifier_Notify(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	connector := mocks.NewMockConnector(ctrl)
	notifier := NewNotifier(logs.GetLoggerFromLevel(slog.LevelDebug), connector, 2, time.Second)
	snapshot := domain.Snapshot{ID: "s1", DisplayID: "abcd1234", Subscribers: []domain.Identity{"u1", "u2", "u3"}}
	text := "The SNG game abcd1234 has started!"

	// Given one subscriber has direct messages closed and one delivery fails
	connector.EXPECT().NotifySubscriber(gomock.Any(), domain.Identity("u1"), text).Return(nil)
	connector.EXPECT().NotifySubscriber(gomock.Any(), domain.Identity("u2"), text).Return(sngerrors.ErrUndeliverable)
	connector.EXPECT().NotifySubscriber(gomock.Any(), domain.Identity("u3"), text).Return(errors.New("boom"))

	// When the session starts
	delivered := notifier.Notify(context.Background(), snapshot)

	// Then the others are still attempted
	req.Equal(1, delivered)
}

func TestNotifier_NoSubscribers(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	connector := mocks.NewMockConnector(ctrl)
	notifier := NewNotifier(logs.GetLoggerFromLevel(slog.LevelDebug), connector, 0, time.Second)

	req.Equal(0, notifier.Notify(context.Background(), domain.Snapshot{ID: "s1"}))
}
