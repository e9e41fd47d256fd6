package sink

import (
	"context"
	"fmt"
	"log/slog"
	"sng-lab/domain/event"
	"sng-lab/repositories"
)

// ArchiveSink writes every ended session to the archive.
type ArchiveSink struct {
	repository repositories.ISessionArchive
	log        *slog.Logger
}

func NewArchiveSink(repository repositories.ISessionArchive, log *slog.Logger) ArchiveSink {
	return ArchiveSink{repository: repository, log: log}
}

func (a ArchiveSink) Consume(ctx context.Context, e event.Event) error {
	switch evt := e.Payload.(type) {
	case event.SessionEnded:
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.repository.Store(repositories.FromReport(evt.Report)); err != nil {
			return fmt.Errorf("archive session %s: %w", evt.Report.Session.ID, err)
		}
		a.log.Debug("Session archived", "session", evt.Report.Session.ID)
		return nil
	default:
		return nil
	}
}
