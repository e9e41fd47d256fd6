package internal

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sng-lab/domain"
	"sng-lab/projection"
	"sng-lab/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
)

const InspectEndpoint = "/inspect"

type ActiveSessions interface {
	Active() []domain.Snapshot
}

type historyPage struct {
	Sessions []repositories.ArchivedSession `json:"sessions"`
	Next     *string                        `json:"next,omitempty"`
}

// DebugHandler exposes the live registry, the recent event timeline and the archive as JSON.
//
//	GET /debug/sessions
//	GET /debug/events[?session=id]
//	GET /debug/history[?cursor=key]
func DebugHandler(log *slog.Logger, sessions ActiveSessions, timeline *projection.Timeline, archive repositories.ISessionArchive) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /debug/sessions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(log, w, sessions.Active())
	})

	mux.HandleFunc("GET /debug/events", func(w http.ResponseWriter, r *http.Request) {
		if id := r.URL.Query().Get("session"); id != "" {
			writeJSON(log, w, timeline.Session(domain.SessionID(id)))
			return
		}
		writeJSON(log, w, timeline.Entries())
	})

	mux.HandleFunc("GET /debug/history", func(w http.ResponseWriter, r *http.Request) {
		var cursor *string
		if c := r.URL.Query().Get("cursor"); c != "" {
			cursor = &c
		}
		archived, next, err := archive.List(cursor)
		if err != nil {
			log.Error("Failed to list archived sessions", "error", err)
			http.Error(w, "archive unavailable", http.StatusInternalServerError)
			return
		}
		writeJSON(log, w, historyPage{Sessions: archived, Next: next})
	})

	return mux
}

func writeJSON(log *slog.Logger, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("Failed to write debug response", "error", err)
	}
}

// StartInspector serves the raw badger content on its own port.
func StartInspector(log *slog.Logger, db *badger.DB, port int) {
	log.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", port, InspectEndpoint))
	database.StartDebugServer(db, port, InspectEndpoint, ArchiveMapper)
}

func ArchiveMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	session, err := repositories.DecodeArchived(val)
	if err != nil {
		row.Detail = "Error: decode failed"
		return row
	}
	row.Type = session.Trigger
	row.Detail = fmt.Sprintf("#%s in %s ended %s: %s by %s, %d/%d players, %d artifact(s), %d failed",
		session.DisplayID, session.Channel, session.EndedAt.Format("15:04:05"),
		session.Phase, session.Starter, session.Players, session.Capacity, session.Artifacts, session.Failed)
	return row
}
