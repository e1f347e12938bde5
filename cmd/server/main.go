// Command server runs the shelfd book catalog server.
//
// Configuration is layered: built-in defaults, a YAML config file
// (-config flag, SHELFD_CONFIG, ./config.yaml, /etc/shelfd/config.yaml),
// then SHELFD_* environment variable overrides:
//
//	SHELFD_PORT                - Listen port (default: 8080)
//	SHELFD_USERS_FILE          - Path of the user store JSON file (default: users.json)
//	SHELFD_BOOTSTRAP_USERNAME  - Account seeded into an empty user store (default: admin)
//	SHELFD_BOOTSTRAP_PASSWORD  - Password of the seeded account (default: admin123)
//	SHELFD_RATE_LIMIT          - Enable per-account rate limiting (default: false)
//	SHELFD_METRICS             - Enable the Prometheus endpoint (default: true)
//	SHELFD_DEBUG               - Comma-separated debug categories (see pkg/debug)
//	SHELFD_LOG_LEVEL           - ERROR, WARN, INFO, DEBUG, or TRACE (default: INFO)
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/shelfd/shelfd/pkg/auth"
	"github.com/shelfd/shelfd/pkg/auth/basic"
	"github.com/shelfd/shelfd/pkg/config"
	"github.com/shelfd/shelfd/pkg/debug"
	"github.com/shelfd/shelfd/pkg/observability"
	"github.com/shelfd/shelfd/pkg/storage/memory"
	transporthttp "github.com/shelfd/shelfd/pkg/transport/http"
	"github.com/shelfd/shelfd/pkg/users"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	debug.Init(cfg.Observability.Debug, cfg.Observability.LogLevel)
	logger := slog.Default()

	// Open the user store; an empty store is seeded with the bootstrap
	// account so the server is usable out of the box.
	userStore, err := users.Open(users.Options{
		Path:              cfg.Users.Path,
		BootstrapUsername: cfg.Users.BootstrapUsername,
		BootstrapPassword: cfg.Users.BootstrapPassword,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("opening user store: %w", err)
	}

	// The catalog starts with a few sample books owned by the bootstrap
	// account.
	catalog := memory.Seed()

	observability.BooksTotal.Set(float64(catalog.Len()))
	observability.UsersTotal.Set(float64(userStore.Len()))

	// Basic auth over the user store. Requests without credentials fall
	// through the chain and are denied.
	chain := &auth.AuthChain{
		Authenticators:  []auth.Authenticator{basic.New(userStore)},
		DefaultDecision: auth.No,
	}

	var limiter auth.RateLimiter
	if cfg.Auth.RateLimit.Enabled {
		limiter = auth.NewInProcessLimiter(cfg.Auth.RateLimit.RPS, cfg.Auth.RateLimit.Burst)
		logger.Info("rate limiting enabled",
			"rps", cfg.Auth.RateLimit.RPS,
			"burst", cfg.Auth.RateLimit.Burst,
		)
	}

	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
	}

	srv := transporthttp.NewServer(catalog, userStore, auth.Require(chain, limiter),
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithMaxBodySize(cfg.Server.MaxBodySize),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithMetricsPath(metricsPath),
		transporthttp.WithLogger(logger),
	)

	logger.Info("shelfd starting",
		"port", cfg.Server.Port,
		"users_file", cfg.Users.Path,
		"books", catalog.Len(),
		"users", userStore.Len(),
	)

	return srv.ListenAndServe()
}
