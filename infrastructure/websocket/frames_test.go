package websocket

import (
	"sng-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeInbound(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Inbound
		wantErr bool
	}{
		{"Command", `{"type":"command","text":"/start"}`, Inbound{Type: FrameCommand, Text: "/start"}, false},
		{"Interaction", `{"type":"interact","control":"player_3_abc"}`, Inbound{Type: FrameInteract, Control: "player_3_abc"}, false},
		{"Message", `{"type":"message","text":"hi"}`, Inbound{Type: FrameMessage, Text: "hi"}, false},
		{"Command without slash", `{"type":"command","text":"start"}`, Inbound{}, true},
		{"Interaction without control", `{"type":"interact"}`, Inbound{}, true},
		{"Blank message", `{"type":"message","text":"  "}`, Inbound{}, true},
		{"Unknown type", `{"type":"reaction"}`, Inbound{}, true},
		{"Not JSON", `hello`, Inbound{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeInbound([]byte(tt.data))
			if tt.wantErr {
				require.ErrorIs(t, err, errors.ErrInvalidFrame)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
