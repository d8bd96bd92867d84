package api

import (
	"fmt"
	"time"

	"orarctl/pkg/config"
	"orarctl/pkg/exporter"
	"orarctl/pkg/metrics"
	"orarctl/pkg/scraper"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options tunes the router middleware and the calendar endpoint.
type Options struct {
	RateLimitPerMin int // 0 disables rate limiting
	RateLimitBurst  int
	AllowedOrigins  []string
	TrustedProxies  []string // proxies whose X-Forwarded-For is believed; none by default
	Export          exporter.Options
}

// OptionsFromConfig derives router Options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	export, err := exporter.ParseOptions(cfg.Export.SemesterStart, cfg.Export.Weeks, cfg.Export.Timezone)
	if err != nil {
		return Options{}, fmt.Errorf("invalid export settings: %w", err)
	}
	return Options{
		RateLimitPerMin: cfg.Server.RateLimitPerMin,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		TrustedProxies:  cfg.Server.TrustedProxies,
		Export:          export,
	}, nil
}

type server struct {
	client  *scraper.Client
	metrics *metrics.Metrics
	log     *zap.Logger
	export  exporter.Options
}

// NewRouter wires the timetable endpoints and their middleware on a new gin engine.
// m is served on /metrics and should also be the client's observer
// (scraper.WithObserver) so page cache lookups show up there.
func NewRouter(client *scraper.Client, m *metrics.Metrics, logger *zap.Logger, opts Options) (*gin.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	s := &server{client: client, metrics: m, log: logger, export: opts.Export}

	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(RequestIDMiddleware())
	r.Use(AccessLogMiddleware(logger))
	r.Use(MetricsMiddleware(m))
	r.Use(RecoveryMiddleware(logger))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	if opts.RateLimitPerMin > 0 {
		r.Use(RateLimitMiddleware(opts.RateLimitPerMin, opts.RateLimitBurst))
	}

	r.GET("/", s.catalogHandler)
	r.GET("/schedules", s.allSchedulesHandler)
	r.GET("/schedule", s.scheduleHandler)
	r.GET("/schedule.ics", s.calendarHandler)
	r.GET("/healthz", s.healthHandler)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
