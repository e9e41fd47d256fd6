package domain

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// ChatMessage is a plain text message observed in a channel.
type ChatMessage struct {
	ID        ArtifactID
	Channel   ChannelID
	Author    Identity
	Content   string
	CreatedAt time.Time
}

func (m ChatMessage) IsCommand() bool {
	return strings.HasPrefix(strings.TrimSpace(m.Content), "/")
}

func (m ChatMessage) Handle() ArtifactHandle {
	return ArtifactHandle{ID: m.ID, Channel: m.Channel, Kind: ArtifactHistory, Scope: ScopeChannel, IssuedAt: m.CreatedAt}
}

// ChannelPolicy decides where sessions may be opened and who may talk there.
type ChannelPolicy struct {
	Designated []ChannelID
	Admin      Identity
	PinBot     Identity
	Self       Identity
}

// IsDesignated reports whether the channel hosts sessions. No designated channel means any channel.
func (p ChannelPolicy) IsDesignated(channel ChannelID) bool {
	return len(p.Designated) == 0 || lo.Contains(p.Designated, channel)
}

// Allows reports whether a free text message may stay in its channel.
// Only designated channels are guarded; there, commands and the privileged authors are kept.
func (p ChannelPolicy) Allows(m ChatMessage) bool {
	if len(p.Designated) == 0 || !lo.Contains(p.Designated, m.Channel) {
		return true
	}
	if m.IsCommand() {
		return true
	}
	privileged := lo.Compact([]Identity{p.Admin, p.PinBot, p.Self})
	return lo.Contains(privileged, m.Author)
}
