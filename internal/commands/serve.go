package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/imgrooty/roi-calculator/client"
	"github.com/imgrooty/roi-calculator/internal/app"
	"github.com/imgrooty/roi-calculator/internal/config"
	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/pkg/health"
	"github.com/imgrooty/roi-calculator/pkg/limits"
	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/metrics"
	"github.com/imgrooty/roi-calculator/pkg/recorder"
	"github.com/imgrooty/roi-calculator/pkg/router"
	"github.com/imgrooty/roi-calculator/pkg/shutdown"
	"github.com/imgrooty/roi-calculator/pkg/transport"
)

const (
	metricsNamespace = "roicalc"
	reapInterval     = time.Minute
	checkTimeout     = 2 * time.Second
	memoryCeiling    = 1 << 30
	bucketIdle       = 10 * time.Minute
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator landing page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, map[string]string{
				"server.address":           "addr",
				"server.insecure_dev_mode": "dev",
				"recorder.kind":            "recorder",
				"recorder.url":             "recorder-url",
			})
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Bool("dev", false, "accept WebSocket connections from any origin")
	cmd.Flags().String("recorder", "", "recorder kind: simulated, http, journal, sqlite, tee")
	cmd.Flags().String("recorder-url", "", "endpoint for the http recorder")
	return cmd
}

// server is everything serve starts, built separately so tests can drive
// the handler without a listener.
type server struct {
	handler  http.Handler
	router   *router.Router
	recorder recorder.Backend
	checker  *health.Checker
	bucket   *limits.TokenBucket
}

func newServer(cfg *config.Config, log logging.Logger) (*server, error) {
	t := cfg.Server.ResolveTimeouts()

	var m *metrics.Metrics
	if cfg.Server.Metrics {
		m = metrics.NewMetrics(metricsNamespace)
	}

	rec, err := recorder.New(cfg.RecorderBackend(), log, m)
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}

	r := router.New(
		router.WithLogger(log),
		router.WithMetrics(m),
		router.WithDefaultCodec(cfg.Server.Codec),
		router.WithTransportConfig(transport.Config{
			ReadTimeout:     t.WebSocketRead,
			WriteTimeout:    t.WebSocketWrite,
			AllowedOrigins:  cfg.Server.AllowedOrigins,
			InsecureDevMode: cfg.Server.InsecureDevMode,
		}),
		router.WithSessionConfig(router.SessionManagerConfig{
			MaxSessions: cfg.Server.MaxSessions,
			SessionTTL:  t.SessionIdle,
		}),
	)
	onReject := func(reason string) {
		if m != nil {
			m.RequestRejected(reason)
		}
	}
	var bucket *limits.TokenBucket
	if cfg.Server.RateLimit > 0 {
		bucket = limits.NewTokenBucket(cfg.Server.RateLimit, cfg.Server.RateBurst, onReject)
	}

	r.Use(router.RequestID())
	r.Use(router.Recovery(nil))
	r.Use(logging.RequestLogger(log))
	if bucket != nil {
		r.Use(bucket.Middleware(limits.ClientIP))
	}
	r.Use(limits.NewConnectionLimiter(cfg.Server.MaxConnsPerIP, onReject).Middleware())
	r.Use(router.SecureHeaders())
	r.Use(router.Compress())

	opts := app.Options{Recorder: rec, Theme: cfg.Theme, Logger: log}
	if m != nil {
		opts.Observer = m
	}
	r.Live("/", app.New(opts), router.WithLayout(app.Layout(website.DefaultPageConfig())))
	r.Handle("/_live/", http.StripPrefix("/_live/", client.Handler()))

	checker := health.NewChecker(version)
	checker.AddCriticalCheck("recorder", func(ctx context.Context) error {
		return recorder.Ping(ctx, rec)
	}, checkTimeout)
	checker.AddCheck("sessions", health.SessionCapacityCheck(r.SessionManager().Count, cfg.Server.MaxSessions), checkTimeout)
	checker.AddCheck("memory", health.MemoryCheck(memoryCeiling), checkTimeout)

	r.Handle("/healthz", checker.LivenessHandler())
	r.Handle("/readyz", checker.ReadinessHandler())
	r.Handle("/health", checker.HealthHandler())
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	return &server{handler: r, router: r, recorder: rec, checker: checker, bucket: bucket}, nil
}

func serve(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	srv, err := newServer(cfg, log)
	if err != nil {
		return err
	}
	t := cfg.Server.ResolveTimeouts()

	// Only the header read is bounded here; live connections are hijacked
	// and the transport enforces its own deadlines.
	httpSrv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           srv.handler,
		ReadHeaderTimeout: t.Read,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	srv.router.StartReaper(ctx, reapInterval)
	if srv.bucket != nil {
		srv.bucket.StartSweeper(ctx, reapInterval, bucketIdle)
	}

	sd := shutdown.NewHandler(shutdown.Config{
		Timeout: t.Shutdown,
		Signals: shutdown.DefaultConfig().Signals,
		Logger:  log,
	})
	sd.Register("http", shutdown.PriorityHTTP, httpSrv.Shutdown)
	sd.Register("sessions", shutdown.PrioritySessions, srv.router.Shutdown)
	sd.RegisterCloser("recorder", shutdown.PriorityRecorder, srv.recorder)

	errc := make(chan error, 1)
	go func() {
		log.Info("listening",
			logging.String("addr", cfg.Server.Address),
			logging.String("recorder", cfg.Recorder.Kind),
			logging.String("theme", cfg.Theme),
			logging.String("version", version),
		)
		err := httpSrv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	waited := make(chan error, 1)
	go func() { waited <- sd.Wait(ctx) }()

	if err := <-errc; err != nil {
		_ = sd.Shutdown()
		<-waited
		return fmt.Errorf("listen %s: %w", cfg.Server.Address, err)
	}
	if err := <-waited; err != nil {
		log.Error("shutdown incomplete", logging.Err(err))
		return err
	}
	log.Info("stopped")
	return nil
}
