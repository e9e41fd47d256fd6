// Package client is a terminal participant for the websocket surface.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sng-lab/domain"
	sngws "sng-lab/infrastructure/websocket"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Address string `envconfig:"SNG_ADDR" default:"localhost:8080"`
	Token   string `envconfig:"SNG_TOKEN" required:"true"`
	Channel string `envconfig:"SNG_CHANNEL" required:"true"`
	// SNG_COLOURS enables colorized output for better readability
	Colours bool `envconfig:"SNG_COLOURS" default:"true"`
	// SNG_DEBUG_JSON dumps every received frame as raw JSON
	DebugJSON bool   `envconfig:"SNG_DEBUG_JSON" default:"false"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"INFO"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Dial joins a channel. The token travels as a bearer header.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: cfg.Address, Path: "/ws", RawQuery: url.Values{"channel": {cfg.Channel}}.Encode()}
	header := http.Header{"Authorization": {"Bearer " + cfg.Token}}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %s: %w", u.String(), resp.Status, err)
		}
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	return &Client{conn: conn}, nil
}

// Send writes one inbound frame. Safe for concurrent use.
func (c *Client) Send(in sngws.Inbound) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteJSON(in)
}

// Read blocks until the next frame arrives.
func (c *Client) Read() (sngws.Outbound, error) {
	var out sngws.Outbound
	err := c.conn.ReadJSON(&out)
	return out, err
}

func (c *Client) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return c.conn.Close()
}

// ParseLine turns a typed line into a frame:
//
//	/start           slash command
//	!press <control> button press
//	anything else    chat message
func ParseLine(line string) (sngws.Inbound, bool) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return sngws.Inbound{}, false
	case strings.HasPrefix(line, "/"):
		return sngws.Inbound{Type: sngws.FrameCommand, Text: line}, true
	case line == "!press" || strings.HasPrefix(line, "!press "):
		control := strings.TrimSpace(strings.TrimPrefix(line, "!press"))
		return sngws.Inbound{Type: sngws.FrameInteract, Control: control}, control != ""
	default:
		return sngws.Inbound{Type: sngws.FrameMessage, Text: line}, true
	}
}

// Render formats a frame for the terminal.
func Render(frame sngws.Outbound, colours bool) string {
	paint := func(style color.Style, s string) string {
		if !colours {
			return s
		}
		return style.Render(s)
	}

	at := frame.At.Format(time.TimeOnly)
	switch frame.Type {
	case sngws.FramePosted, sngws.FrameUpdated:
		if frame.Status == nil {
			return fmt.Sprintf("[%s] %s: %s", at, frame.Author, frame.Text)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "[%s] %s %s\n", at, paint(color.New(color.FgCyan, color.OpBold), frame.Status.Title), frame.ID)
		for _, field := range frame.Status.Fields {
			fmt.Fprintf(&b, "  %s: %s\n", field.Name, field.Value)
		}
		if frame.Status.Footer != "" {
			fmt.Fprintf(&b, "  %s\n", frame.Status.Footer)
		}
		for _, control := range frame.Status.Controls {
			fmt.Fprintf(&b, "  [%s] !press %s\n", control.Label, control.ID)
		}
		return strings.TrimRight(b.String(), "\n")
	case sngws.FrameDeleted:
		return paint(color.New(color.FgGray), fmt.Sprintf("[%s] message %s deleted", at, frame.ID))
	case sngws.FrameEphemeral:
		return paint(color.New(color.FgYellow), fmt.Sprintf("[%s] (only you) %s", at, frame.Text))
	case sngws.FrameDirect:
		return paint(color.New(color.FgGreen), fmt.Sprintf("[%s] (direct) %s", at, frame.Text))
	case sngws.FrameError:
		return paint(color.New(color.FgRed), fmt.Sprintf("[%s] error: %s", at, frame.Text))
	default:
		return fmt.Sprintf("[%s] %s %s", at, frame.Type, frame.Text)
	}
}

// Shortcuts remembers the last status display seen so that "claim N", "start", "end"
// and "notify" can be typed instead of full control ids.
type Shortcuts struct {
	mu      sync.Mutex
	session domain.SessionID
}

func (s *Shortcuts) Observe(frame sngws.Outbound) {
	if frame.Status == nil || len(frame.Status.Controls) == 0 {
		return
	}
	s.mu.Lock()
	s.session = frame.Status.Controls[0].Session
	s.mu.Unlock()
}

// Expand rewrites a shortcut into a "!press" line. Other lines are returned as is.
func (s *Shortcuts) Expand(line string) string {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	fields := strings.Fields(line)
	if session == "" || len(fields) == 0 {
		return line
	}
	switch {
	case fields[0] == "claim" && len(fields) == 2:
		slot, err := strconv.Atoi(fields[1])
		if err != nil {
			return line
		}
		return "!press " + domain.ControlID(domain.ControlClaim, session, slot)
	case len(fields) > 1:
		return line
	case fields[0] == "start":
		return "!press " + domain.ControlID(domain.ControlStart, session, 0)
	case fields[0] == "end":
		return "!press " + domain.ControlID(domain.ControlEnd, session, 0)
	case fields[0] == "notify":
		return "!press " + domain.ControlID(domain.ControlNotify, session, 0)
	default:
		return line
	}
}
