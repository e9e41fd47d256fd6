package runtime

import (
	"context"
	"fmt"
	"sng-lab/domain"
	sngerrors "sng-lab/errors"
	"strings"
	"sync"
	"time"
)

type postedMessage struct {
	handle domain.ArtifactHandle
	text   string
}

// fakeConnector is an in-memory chat surface.
type fakeConnector struct {
	mu            sync.Mutex
	seq           int
	messages      map[domain.ArtifactID]postedMessage
	deleteCalls   map[domain.ArtifactID]int
	deleteErrs    map[domain.ArtifactID][]error
	updates       int
	updateErr     error
	renderErr     error
	announcements []string
	ephemerals    map[domain.Identity][]string
	notified      []domain.Identity
	undeliverable map[domain.Identity]bool
}

func newFakeConnector() *fakeConnector {
	return &fakeConnector{
		messages:      make(map[domain.ArtifactID]postedMessage),
		deleteCalls:   make(map[domain.ArtifactID]int),
		deleteErrs:    make(map[domain.ArtifactID][]error),
		ephemerals:    make(map[domain.Identity][]string),
		undeliverable: make(map[domain.Identity]bool),
	}
}

func (f *fakeConnector) post(channel domain.ChannelID, text string) domain.ArtifactHandle {
	f.seq++
	h := domain.ArtifactHandle{
		ID:       domain.ArtifactID(fmt.Sprintf("m%d", f.seq)),
		Channel:  channel,
		Scope:    domain.ScopeInteraction,
		IssuedAt: time.Now(),
	}
	f.messages[h.ID] = postedMessage{handle: h, text: text}
	return h
}

func (f *fakeConnector) RenderStatus(_ context.Context, s domain.Snapshot) (domain.ArtifactHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.renderErr != nil {
		return domain.ArtifactHandle{}, f.renderErr
	}
	return f.post(s.Channel, domain.NewStatusView(s).Title), nil
}

func (f *fakeConnector) UpdateStatus(_ context.Context, h domain.ArtifactHandle, _ domain.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if _, ok := f.messages[h.ID]; !ok {
		return sngerrors.ErrArtifactNotFound
	}
	return f.updateErr
}

func (f *fakeConnector) SendAnnouncement(_ context.Context, channel domain.ChannelID, text string) (domain.ArtifactHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.announcements = append(f.announcements, text)
	return f.post(channel, text), nil
}

func (f *fakeConnector) SendEphemeral(_ context.Context, recipient domain.Identity, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ephemerals[recipient] = append(f.ephemerals[recipient], text)
	return nil
}

func (f *fakeConnector) DeleteArtifact(_ context.Context, h domain.ArtifactHandle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls[h.ID]++
	if queued := f.deleteErrs[h.ID]; len(queued) > 0 {
		f.deleteErrs[h.ID] = queued[1:]
		return queued[0]
	}
	if _, ok := f.messages[h.ID]; !ok {
		return sngerrors.ErrArtifactNotFound
	}
	delete(f.messages, h.ID)
	return nil
}

func (f *fakeConnector) ResolveArtifact(_ context.Context, h domain.ArtifactHandle) (domain.ArtifactHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.messages[h.ID]; !ok {
		return domain.ArtifactHandle{}, sngerrors.ErrArtifactNotFound
	}
	h.Scope = domain.ScopeChannel
	return h, nil
}

func (f *fakeConnector) FindArtifacts(_ context.Context, channel domain.ChannelID, marker string, limit int) ([]domain.ArtifactHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []domain.ArtifactHandle
	for _, m := range f.messages {
		if m.handle.Channel == channel && strings.Contains(m.text, marker) && len(res) < limit {
			res = append(res, m.handle)
		}
	}
	return res, nil
}

func (f *fakeConnector) NotifySubscriber(_ context.Context, recipient domain.Identity, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.undeliverable[recipient] {
		return sngerrors.ErrUndeliverable
	}
	f.notified = append(f.notified, recipient)
	return nil
}

func (f *fakeConnector) MentionGroup(_ context.Context, channel domain.ChannelID, group string) (domain.ArtifactHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.post(channel, "@"+group), nil
}

func (f *fakeConnector) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeConnector) deletions(id domain.ArtifactID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteCalls[id]
}

func (f *fakeConnector) calls() (deletes, updates, announcements int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.deleteCalls {
		deletes += n
	}
	return deletes, f.updates, len(f.announcements)
}

func (f *fakeConnector) notifiedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notified)
}

func (f *fakeConnector) announced(text string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.announcements {
		if a == text {
			return true
		}
	}
	return false
}

func (f *fakeConnector) seed(channel domain.ChannelID, text string) domain.ArtifactHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.post(channel, text)
}
