package sink_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sng-lab/domain"
	"sng-lab/domain/event"
	"sng-lab/mocks"
	"sng-lab/repositories"
	"sng-lab/sink"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestArchiveSink_Consume(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockISessionArchive(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	s := sink.NewArchiveSink(mockRepo, logger)

	report := domain.TerminationReport{
		Session: domain.Snapshot{ID: "s1", DisplayID: "s1", ClaimedSlots: 4, Phase: domain.PhaseStarted},
		Trigger: domain.TriggerManual,
		EndedAt: time.Now().UTC(),
	}

	t.Run("Ended session is stored", func(t *testing.T) {
		mockRepo.EXPECT().
			Store(gomock.Any()).
			DoAndReturn(func(s repositories.ArchivedSession) error {
				req.Equal("s1", s.SessionID)
				req.Equal(4, s.Players)
				req.Equal("manual", s.Trigger)
				return nil
			}).Times(1)

		req.NoError(s.Consume(ctx, event.New(event.SessionEndedType, event.SessionEnded{Report: report})))
	})

	t.Run("Other events are ignored", func(t *testing.T) {
		req.NoError(s.Consume(ctx, event.New(event.SessionCreatedType, event.SessionCreated{Session: "s1"})))
	})

	t.Run("Storage failure is reported", func(t *testing.T) {
		mockRepo.EXPECT().Store(gomock.Any()).Return(errors.New("disk full")).Times(1)

		err := s.Consume(ctx, event.New(event.SessionEndedType, event.SessionEnded{Report: report}))
		req.ErrorContains(err, "disk full")
	})
}
