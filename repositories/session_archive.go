//go:generate go run go.uber.org/mock/mockgen -source=session_archive.go -destination=../mocks/mock_session_archive.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"sng-lab/domain"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/samber/lo"
)

const archivePrefix = "sng:"

var archiveEncoding = lo.Must(cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode())

// ISessionArchive keeps a history of ended sessions. Live sessions are never stored.
type ISessionArchive interface {
	Store(session ArchivedSession) error
	List(cursor *string) ([]ArchivedSession, *string, error)
}

type SessionArchive struct {
	db    *badger.DB
	log   *slog.Logger
	limit *int
}

func NewSessionArchive(db *badger.DB, log *slog.Logger, limit *int) SessionArchive {
	return SessionArchive{db: db, log: log, limit: limit}
}

// ArchivedSession is the CBOR record written once per ended session.
type ArchivedSession struct {
	SessionID   string    `cbor:"1,keyasint"`
	DisplayID   string    `cbor:"2,keyasint"`
	Starter     string    `cbor:"3,keyasint"`
	StarterID   string    `cbor:"4,keyasint"`
	Channel     string    `cbor:"5,keyasint"`
	Capacity    int       `cbor:"6,keyasint"`
	Players     int       `cbor:"7,keyasint"`
	Phase       string    `cbor:"8,keyasint"`
	AutoStarted bool      `cbor:"9,keyasint"`
	Subscribers int       `cbor:"10,keyasint"`
	Trigger     string    `cbor:"11,keyasint"`
	Artifacts   int       `cbor:"12,keyasint"`
	Failed      int       `cbor:"13,keyasint"`
	Swept       int       `cbor:"14,keyasint"`
	CreatedAt   time.Time `cbor:"15,keyasint"`
	StartedAt   time.Time `cbor:"16,keyasint"`
	EndedAt     time.Time `cbor:"17,keyasint"`
}

func FromReport(report domain.TerminationReport) ArchivedSession {
	s := report.Session
	return ArchivedSession{
		SessionID:   string(s.ID),
		DisplayID:   s.DisplayID,
		Starter:     s.Starter,
		StarterID:   string(s.StarterID),
		Channel:     string(s.Channel),
		Capacity:    s.Capacity,
		Players:     s.ClaimedSlots,
		Phase:       s.Phase.String(),
		AutoStarted: s.AutoStarted,
		Subscribers: len(s.Subscribers),
		Trigger:     report.Trigger.String(),
		Artifacts:   len(report.Results),
		Failed:      len(report.Failed()),
		Swept:       report.Swept,
		CreatedAt:   s.CreatedAt,
		StartedAt:   s.StartedAt,
		EndedAt:     report.EndedAt,
	}
}

// Store persists an ended session.
// The key "sng:{ended_at_padded}:{session_id}" sorts chronologically thanks to the
// 19-digit zero padding, and the session id keeps two sessions ended on the same
// nanosecond apart.
func (a SessionArchive) Store(session ArchivedSession) error {
	key := fmt.Sprintf("%s%019d:%s", archivePrefix, session.EndedAt.UnixNano(), session.SessionID)
	bytes, err := archiveEncoding.Marshal(session)
	if err != nil {
		return err
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// List walks the archive from the most recently ended session backwards.
// The returned cursor resumes right after the last session returned.
func (a SessionArchive) List(cursor *string) ([]ArchivedSession, *string, error) {
	var raw [][]byte
	var lastKey string
	err := a.db.View(func(txn *badger.Txn) error {
		prefix := []byte(archivePrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if a.limit != nil && len(raw) == *a.limit {
				a.log.Debug(fmt.Sprintf("Maximum of %d archived session(s) reached", *a.limit))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefix):])
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			raw = append(raw, value)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sessions := make([]ArchivedSession, 0, len(raw))
	for _, b := range raw {
		s, err := DecodeArchived(b)
		if err != nil {
			return nil, nil, err
		}
		sessions = append(sessions, s)
	}
	if len(sessions) == 0 {
		return sessions, nil, nil
	}
	return sessions, lo.ToPtr(lastKey), nil
}

func DecodeArchived(value []byte) (ArchivedSession, error) {
	var s ArchivedSession
	if err := cbor.Unmarshal(value, &s); err != nil {
		return ArchivedSession{}, fmt.Errorf("decode archived session: %w", err)
	}
	return s, nil
}
