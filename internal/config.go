package internal

import (
	"fmt"
	"sng-lab/domain"
	"sng-lab/infrastructure/websocket"
	"sng-lab/runtime"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	Host     string `env:"HOST,default=localhost" validate:"required"`
	Port     int    `env:"PORT,default=8080" validate:"min=1,max=65535"`

	MaxPlayers        int           `env:"MAX_PLAYERS,default=8" validate:"min=2"`
	MinPlayers        int           `env:"MIN_PLAYERS,default=2" validate:"min=2,ltefield=MaxPlayers"`
	InactivityTimeout time.Duration `env:"INACTIVITY_TIMEOUT,default=1h" validate:"gt=0"`
	AutoEndDelay      time.Duration `env:"AUTO_END_DELAY,default=5m" validate:"gt=0"`
	RefreshInterval   time.Duration `env:"REFRESH_INTERVAL,default=10m" validate:"gt=0"`
	ConfirmationTTL   time.Duration `env:"CONFIRMATION_TTL,default=10s" validate:"gt=0"`
	OperationTimeout  time.Duration `env:"OPERATION_TIMEOUT,default=10s" validate:"gt=0"`
	AnnounceAutoEnd   bool          `env:"ANNOUNCE_AUTO_END,default=false"`
	PingOnUpdate      bool          `env:"PING_ON_UPDATE,default=true"`
	SweepHistory      bool          `env:"SWEEP_HISTORY,default=true"`
	HistoryLimit      int           `env:"HISTORY_LIMIT,default=100" validate:"min=1"`
	TestMode          bool          `env:"TEST_MODE,default=false"`

	DeleteAttempts        int           `env:"DELETE_ATTEMPTS,default=3" validate:"min=1"`
	DeleteInitialInterval time.Duration `env:"DELETE_INITIAL_INTERVAL,default=500ms" validate:"gt=0"`
	DeleteMaxInterval     time.Duration `env:"DELETE_MAX_INTERVAL,default=5s" validate:"gtefield=DeleteInitialInterval"`
	NotifyConcurrency     int           `env:"NOTIFY_CONCURRENCY,default=4" validate:"min=1"`
	DeliveryTimeout       time.Duration `env:"DELIVERY_TIMEOUT,default=5s" validate:"gt=0"`

	RoleName           string `env:"ROLE_NAME,default=SNG Host"`
	MentionGroup       string `env:"MENTION_GROUP"`
	DesignatedChannels string `env:"DESIGNATED_CHANNELS"`
	AdminUserID        string `env:"ADMIN_USER_ID"`
	PinBotID           string `env:"PIN_BOT_ID"`
	BotID              string `env:"BOT_ID,default=sng-bot" validate:"required"`

	BufferSize           int           `env:"BUFFER_SIZE,default=256" validate:"min=1"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s" validate:"gt=0"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=1s" validate:"gt=0"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=30s" validate:"gt=0"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=10" validate:"min=0,max=100"`
	ReaperInterval       time.Duration `env:"REAPER_INTERVAL,default=1m" validate:"gt=0"`
	ReaperGrace          time.Duration `env:"REAPER_GRACE,default=30s" validate:"gte=0"`
	TimelineCapacity     int           `env:"TIMELINE_CAPACITY,default=500" validate:"min=1"`

	BadgerFilepath    string        `env:"BADGER_FILEPATH,default=./data/sng" validate:"required"`
	LimitSessions     *int          `env:"LIMIT_SESSIONS"`
	AuthSecret        string        `env:"AUTH_SECRET,required=true" validate:"min=16"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h" validate:"gt=0"`
	InteractionTTL    time.Duration `env:"INTERACTION_TTL,default=15m" validate:"gt=0"`
	DebugPort         int           `env:"DEBUG_PORT,default=8081" validate:"min=1,max=65535"`
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig(files ...string) (Config, error) {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load(files...)

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) Channels() []domain.ChannelID {
	parts := lo.Map(strings.Split(c.DesignatedChannels, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Map(lo.Compact(parts), func(s string, _ int) domain.ChannelID {
		return domain.ChannelID(s)
	})
}

func (c Config) Policy() domain.ChannelPolicy {
	return domain.ChannelPolicy{
		Designated: c.Channels(),
		Admin:      domain.Identity(c.AdminUserID),
		PinBot:     domain.Identity(c.PinBotID),
		Self:       domain.Identity(c.BotID),
	}
}

func (c Config) Options() runtime.Options {
	return runtime.Options{
		Settings: runtime.Settings{
			Capacity:          c.MaxPlayers,
			MinPlayers:        c.MinPlayers,
			InactivityTimeout: c.InactivityTimeout,
			AutoEndDelay:      c.AutoEndDelay,
			RefreshInterval:   c.RefreshInterval,
			ConfirmationTTL:   c.ConfirmationTTL,
			OperationTimeout:  c.OperationTimeout,
			AnnounceAutoEnd:   c.AnnounceAutoEnd,
			PingOnUpdate:      c.PingOnUpdate,
			SweepHistory:      c.SweepHistory,
			HistoryLimit:      c.HistoryLimit,
			TestMode:          c.TestMode,
			MentionGroup:      c.MentionGroup,
		},
		Retry: runtime.RetryPolicy{
			MaxAttempts:     c.DeleteAttempts,
			InitialInterval: c.DeleteInitialInterval,
			MaxInterval:     c.DeleteMaxInterval,
			Multiplier:      2,
		},
		Policy:               c.Policy(),
		NotifyConcurrency:    c.NotifyConcurrency,
		DeliveryTimeout:      c.DeliveryTimeout,
		BufferSize:           c.BufferSize,
		SinkTimeout:          c.SinkTimeout,
		RestartInterval:      c.RestartInterval,
		MetricInterval:       c.MetricInterval,
		LowCapacityThreshold: c.LowCapacityThreshold,
		ReaperInterval:       c.ReaperInterval,
		ReaperGrace:          c.ReaperGrace,
	}
}

func (c Config) SurfaceOptions() websocket.SurfaceOptions {
	return websocket.SurfaceOptions{
		Self:            domain.Identity(c.BotID),
		InteractionTTL:  c.InteractionTTL,
		ManagedChannels: c.Channels(),
	}
}
