package websocket

import (
	"encoding/json"
	"fmt"
	"sng-lab/domain"
	"sng-lab/errors"
	"strings"
	"time"
)

// Inbound frame types, sent by participants.
const (
	FrameCommand  = "command"
	FrameInteract = "interact"
	FrameMessage  = "message"
)

// Outbound frame types, sent by the surface.
const (
	FramePosted    = "posted"
	FrameUpdated   = "updated"
	FrameDeleted   = "deleted"
	FrameEphemeral = "ephemeral"
	FrameDirect    = "direct"
	FrameError     = "error"
)

// Inbound is what a participant sends over the socket.
type Inbound struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Control string `json:"control,omitempty"`
}

// Outbound is what the surface pushes to connected participants.
type Outbound struct {
	Type    string             `json:"type"`
	ID      domain.ArtifactID  `json:"id,omitempty"`
	Channel domain.ChannelID   `json:"channel,omitempty"`
	Author  domain.Identity    `json:"author,omitempty"`
	Text    string             `json:"text,omitempty"`
	Status  *domain.StatusView `json:"status,omitempty"`
	At      time.Time          `json:"at"`
}

func DecodeInbound(data []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", errors.ErrInvalidFrame, err)
	}
	switch in.Type {
	case FrameCommand:
		if !strings.HasPrefix(strings.TrimSpace(in.Text), "/") {
			return Inbound{}, fmt.Errorf("%w: command must start with /", errors.ErrInvalidFrame)
		}
	case FrameInteract:
		if in.Control == "" {
			return Inbound{}, fmt.Errorf("%w: missing control", errors.ErrInvalidFrame)
		}
	case FrameMessage:
		if strings.TrimSpace(in.Text) == "" {
			return Inbound{}, fmt.Errorf("%w: empty message", errors.ErrInvalidFrame)
		}
	default:
		return Inbound{}, fmt.Errorf("%w: unknown type %q", errors.ErrInvalidFrame, in.Type)
	}
	return in, nil
}
