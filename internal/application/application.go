package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/confenv/confenv"
	"github.com/confenv/confenv/internal/api"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Settings are the daemon's own knobs. They come from the same resolved
// snapshot the daemon serves, under reserved option names, so operators can
// tune the daemon through any of the three configuration tiers.
type Settings struct {
	Port              string
	ShutdownGrace     time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestLogging    bool
	RateLimitRPS      float64
	RateLimitBurst    int
	Debug             bool
}

// DefaultSettings returns the settings used when the snapshot leaves a knob unset.
func DefaultSettings() Settings {
	return Settings{
		Port:              defaultPort,
		ShutdownGrace:     10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		RequestLogging:    true,
		RateLimitRPS:      defaultRateLimitRPS,
		RateLimitBurst:    defaultRateLimitBurst,
	}
}

// SettingsFromSnapshot derives daemon settings from the reserved option names
// port, request_logging, rate_limit_rps, rate_limit_burst, debug,
// shutdown_grace, read_header_timeout, write_timeout and idle_timeout,
// falling back to defaults for anything unset or unparsable.
func SettingsFromSnapshot(snapshot *confenv.Snapshot) Settings {
	s := DefaultSettings()

	if value, err := snapshot.Get("port"); err == nil {
		s.Port = fmt.Sprintf("%v", value)
	}
	if enabled, ok := snapshot.Bool("request_logging"); ok {
		s.RequestLogging = enabled
	}
	if rps, ok := snapshot.Float("rate_limit_rps"); ok {
		s.RateLimitRPS = rps
	}
	if burst, ok := snapshot.Int("rate_limit_burst"); ok {
		s.RateLimitBurst = burst
	}
	if debug, ok := snapshot.Bool("debug"); ok {
		s.Debug = debug
	}

	applyDuration(snapshot, "shutdown_grace", &s.ShutdownGrace)
	applyDuration(snapshot, "read_header_timeout", &s.ReadHeaderTimeout)
	applyDuration(snapshot, "write_timeout", &s.WriteTimeout)
	applyDuration(snapshot, "idle_timeout", &s.IdleTimeout)

	return s
}

func applyDuration(snapshot *confenv.Snapshot, option string, target *time.Duration) {
	raw, ok := snapshot.String(option)
	if !ok {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil {
		*target = d
	}
}

// App encapsulates the daemon dependencies and HTTP server.
type App struct {
	snapshot *confenv.Snapshot
	settings Settings
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// New initializes the daemon with all dependencies from the resolved snapshot.
func New(snapshot *confenv.Snapshot, settings Settings, logger *zap.Logger) (*App, error) {
	if snapshot == nil {
		return nil, errors.New("snapshot is required")
	}

	handler := api.NewHandler(snapshot)
	router := api.NewRouter(handler, logger,
		api.WithLogging(settings.RequestLogging),
		api.WithRateLimit(settings.RateLimitRPS, settings.RateLimitBurst),
	)

	return &App{
		snapshot: snapshot,
		settings: settings,
		handler:  handler,
		router:   router,
		logger:   logger,
		server:   NewServer(settings, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided settings.
func NewServer(settings Settings, handler http.Handler) *http.Server {
	addr := settings.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: settings.ReadHeaderTimeout,
		WriteTimeout:      settings.WriteTimeout,
		IdleTimeout:       settings.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening",
			zap.String("addr", a.server.Addr),
			zap.String("prefix", a.snapshot.Prefix()),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Settings returns the derived daemon settings.
func (a *App) Settings() Settings {
	return a.settings
}
