package domain

import (
	"fmt"
	"sng-lab/errors"
	"strconv"
	"strings"
)

type ControlKind string

const (
	ControlClaim  ControlKind = "player"
	ControlStart  ControlKind = "start_sng"
	ControlEnd    ControlKind = "end_sng"
	ControlNotify ControlKind = "notify_me"
)

type ControlStyle string

const (
	StyleGrey    ControlStyle = "grey"
	StyleBlurple ControlStyle = "blurple"
	StyleRed     ControlStyle = "red"
)

// Control is one interactive button attached to the status display.
// Its ID is stable so it can be routed back to the session after a restart of the surface.
type Control struct {
	ID      string
	Label   string
	Kind    ControlKind
	Style   ControlStyle
	Session SessionID
	Slot    int
}

func ControlID(kind ControlKind, id SessionID, slot int) string {
	if kind == ControlClaim {
		return fmt.Sprintf("%s_%s_%d", kind, id, slot)
	}
	return fmt.Sprintf("%s_%s", kind, id)
}

// ParseControl routes a control ID back to its kind, session and slot.
func ParseControl(controlID string) (Control, error) {
	for _, kind := range []ControlKind{ControlStart, ControlEnd, ControlNotify} {
		if rest, ok := strings.CutPrefix(controlID, string(kind)+"_"); ok && rest != "" {
			return Control{ID: controlID, Kind: kind, Session: SessionID(rest)}, nil
		}
	}
	rest, ok := strings.CutPrefix(controlID, string(ControlClaim)+"_")
	if !ok {
		return Control{}, fmt.Errorf("%w: %q", errors.ErrUnknownControl, controlID)
	}
	idx := strings.LastIndex(rest, "_")
	if idx <= 0 {
		return Control{}, fmt.Errorf("%w: %q", errors.ErrUnknownControl, controlID)
	}
	slot, err := strconv.Atoi(rest[idx+1:])
	if err != nil {
		return Control{}, fmt.Errorf("%w: %q", errors.ErrUnknownControl, controlID)
	}
	return Control{ID: controlID, Kind: ControlClaim, Session: SessionID(rest[:idx]), Slot: slot}, nil
}

// Controls lays out one claim button per slot followed by start, end and notify.
func Controls(s Snapshot) []Control {
	controls := make([]Control, 0, s.Capacity+3)
	for slot := 1; slot <= s.Capacity; slot++ {
		controls = append(controls, Control{
			ID:      ControlID(ControlClaim, s.ID, slot),
			Label:   fmt.Sprintf("Player %d", slot),
			Kind:    ControlClaim,
			Style:   StyleGrey,
			Session: s.ID,
			Slot:    slot,
		})
	}
	return append(controls,
		Control{ID: ControlID(ControlStart, s.ID, 0), Label: "Start SNG", Kind: ControlStart, Style: StyleBlurple, Session: s.ID},
		Control{ID: ControlID(ControlEnd, s.ID, 0), Label: "End SNG", Kind: ControlEnd, Style: StyleRed, Session: s.ID},
		Control{ID: ControlID(ControlNotify, s.ID, 0), Label: "Notify Me", Kind: ControlNotify, Style: StyleBlurple, Session: s.ID},
	)
}

type StatusField struct {
	Name  string
	Value string
}

// StatusView is what the status display shows for a snapshot.
type StatusView struct {
	Title    string
	Fields   []StatusField
	Footer   string
	Controls []Control
}

func NewStatusView(s Snapshot) StatusView {
	if s.Phase == PhaseEnded {
		return StatusView{
			Title:  "5M Sit-and-Go Ended",
			Fields: []StatusField{{Name: "Status", Value: "This SNG has ended or timed out"}},
		}
	}
	return StatusView{
		Title: fmt.Sprintf("5M Sit-and-Go Status (ID: %s)", s.DisplayID),
		Fields: []StatusField{
			{Name: "Players", Value: fmt.Sprintf("%d/%d", s.ClaimedSlots, s.Capacity)},
			{Name: "Status", Value: s.Phase.String()},
			{Name: "Notifications", Value: fmt.Sprintf("%d user(s)", len(s.Subscribers))},
		},
		Footer:   fmt.Sprintf("Started by %s", s.Starter),
		Controls: Controls(s),
	}
}
