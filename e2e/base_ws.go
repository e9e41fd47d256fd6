package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sng-lab/auth"
	"sng-lab/client"
	"sng-lab/domain"
	"sng-lab/infrastructure/websocket"
	"sng-lab/projection"
	"sng-lab/repositories"
	"sng-lab/runtime"
	"sng-lab/services"
	"sng-lab/sink"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

const (
	channel  = "table-1"
	hostRole = "SNG Host"
	capacity = 2
)

// BaseWSSuite runs the whole bot in process behind an httptest server.
type BaseWSSuite struct {
	suite.Suite
	Config Config

	db           *badger.DB
	server       *httptest.Server
	orchestrator *runtime.Orchestrator
	tokens       *auth.TokenIssuer
	Archive      repositories.SessionArchive
	Timeline     *projection.Timeline
	done         chan struct{}
}

func (s *BaseWSSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	s.db, err = badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	s.Require().NoError(err)

	policy := domain.ChannelPolicy{Designated: []domain.ChannelID{channel}, Self: "sng-bot"}
	hub := websocket.NewHub(log)
	surface := websocket.NewSurface(log, hub, websocket.SurfaceOptions{
		Self:            policy.Self,
		InteractionTTL:  time.Minute,
		ManagedChannels: policy.Designated,
	})
	s.orchestrator = runtime.NewOrchestrator(log, surface, runtime.Options{
		Settings: runtime.Settings{
			Capacity:          capacity,
			MinPlayers:        2,
			InactivityTimeout: time.Minute,
			AutoEndDelay:      time.Minute,
			RefreshInterval:   time.Minute,
			ConfirmationTTL:   100 * time.Millisecond,
			OperationTimeout:  time.Second,
			HistoryLimit:      50,
		},
		Retry:                runtime.RetryPolicy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond, Multiplier: 2},
		Policy:               policy,
		NotifyConcurrency:    2,
		DeliveryTimeout:      time.Second,
		BufferSize:           64,
		SinkTimeout:          time.Second,
		RestartInterval:      10 * time.Millisecond,
		MetricInterval:       time.Minute,
		LowCapacityThreshold: 10,
		ReaperInterval:       time.Minute,
		ReaperGrace:          time.Minute,
	})

	s.Archive = repositories.NewSessionArchive(s.db, log, nil)
	s.Timeline = projection.NewTimeline(100)
	s.orchestrator.Add(sink.NewArchiveSink(s.Archive, log), s.Timeline)

	service := services.NewSNGService(log, s.orchestrator.Controller(), surface, s.orchestrator, policy, hostRole)
	s.tokens = auth.NewTokenIssuer("e2e-secret-0123456789", time.Hour)

	mux := http.NewServeMux()
	mux.Handle("/ws", websocket.NewHandler(log, hub, surface, s.tokens, service, time.Second))
	s.server = httptest.NewServer(mux)

	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		_ = s.orchestrator.Start(context.Background())
	}()
}

func (s *BaseWSSuite) TearDownSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.NoError(s.orchestrator.Stop(ctx))
	<-s.done
	s.server.Close()
	s.NoError(s.db.Close())
}

func (s *BaseWSSuite) header(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Join connects a participant to the table channel.
func (s *BaseWSSuite) Join(userID, name string, roles ...string) *client.Client {
	s.header(fmt.Sprintf("%s joins %s", name, channel))
	token, err := s.tokens.GenerateToken(userID, name, roles)
	s.Require().NoError(err)

	c, err := client.Dial(context.Background(), client.Config{
		Address: strings.TrimPrefix(s.server.URL, "http://"),
		Token:   token,
		Channel: channel,
	})
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = c.Close() })
	return c
}

func (s *BaseWSSuite) Send(c *client.Client, line string) {
	in, ok := client.ParseLine(line)
	s.Require().True(ok, "unparsable line %q", line)
	s.Require().NoError(c.Send(in))
}

// Await reads frames until one matches, failing after the frame timeout.
func (s *BaseWSSuite) Await(c *client.Client, what string, match func(websocket.Outbound) bool) websocket.Outbound {
	deadline := time.Now().Add(s.Config.FrameTimeout)
	s.Require().NoError(c.SetReadDeadline(deadline))
	defer func() { _ = c.SetReadDeadline(time.Time{}) }()

	for {
		frame, err := c.Read()
		s.Require().NoError(err, "no frame matching %q before %s", what, deadline.Format(time.TimeOnly))
		if s.Config.DebugJSON {
			raw, _ := json.MarshalIndent(frame, "", "  ")
			s.T().Log(string(raw))
		}
		if match(frame) {
			return frame
		}
	}
}

func IsType(kind string) func(websocket.Outbound) bool {
	return func(o websocket.Outbound) bool { return o.Type == kind }
}

func HasText(kind, text string) func(websocket.Outbound) bool {
	return func(o websocket.Outbound) bool { return o.Type == kind && strings.Contains(o.Text, text) }
}

func IsStatus(phase string) func(websocket.Outbound) bool {
	return func(o websocket.Outbound) bool {
		if o.Status == nil || (o.Type != websocket.FramePosted && o.Type != websocket.FrameUpdated) {
			return false
		}
		for _, f := range o.Status.Fields {
			if f.Name == "Status" && f.Value == phase {
				return true
			}
		}
		return false
	}
}
