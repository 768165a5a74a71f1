// Package browser parses browser service configuration and launches the
// service.
package browser

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	entrypoint "github.com/pgconsole/pgconsole/internal/platform/cmd"
	"github.com/pgconsole/pgconsole/internal/platform/config"
	"github.com/pgconsole/pgconsole/internal/platform/logging"
	"github.com/pgconsole/pgconsole/internal/platform/otel"
	server "github.com/pgconsole/pgconsole/internal/services/browser"
)

// Config holds browser command configuration.
type Config struct {
	HTTPAddr              string        `env:"PGCONSOLE_HTTP_ADDR" envDefault:"localhost:5050"`
	DBPath                string        `env:"PGCONSOLE_DB_PATH" envDefault:"data/pgconsole.db"`
	SessionSecret         string        `env:"PGCONSOLE_SESSION_SECRET,required"`
	SessionTTL            time.Duration `env:"PGCONSOLE_SESSION_TTL" envDefault:"12h"`
	Debug                 bool          `env:"PGCONSOLE_DEBUG" envDefault:"false"`
	StaticDir             string        `env:"PGCONSOLE_STATIC_DIR"`
	PluginDir             string        `env:"PGCONSOLE_PLUGIN_DIR"`
	AdminEmail            string        `env:"PGCONSOLE_ADMIN_EMAIL"`
	AdminPassword         string        `env:"PGCONSOLE_ADMIN_PASSWORD"`
	TrustForwardedProto   bool          `env:"PGCONSOLE_TRUST_FORWARDED_PROTO" envDefault:"false"`
	IsolatePluginFailures bool          `env:"PGCONSOLE_ISOLATE_PLUGIN_FAILURES" envDefault:"false"`

	Telemetry otel.Options
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return bindFlags(cfg, fs, args)
}

func parseConfigFromEnvironment(fs *flag.FlagSet, args []string, environment map[string]string) (Config, error) {
	var cfg Config
	if err := config.ParseEnvWithLookup(&cfg, environment); err != nil {
		return Config{}, err
	}
	return bindFlags(cfg, fs, args)
}

func bindFlags(cfg Config, fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, fmt.Errorf("flag parser is required")
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Serve unminified assets and log at debug level")
	fs.StringVar(&cfg.StaticDir, "static-dir", cfg.StaticDir, "Directory served under /static/")
	fs.StringVar(&cfg.PluginDir, "plugin-dir", cfg.PluginDir, "Directory of Lua plugins")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the browser HTTP service.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(entrypoint.ServiceBrowser, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBrowser, entrypoint.RunOptions{
		Telemetry: cfg.Telemetry,
		Logger:    logger,
	}, func(ctx context.Context) error {
		srv, err := server.NewServer(ctx, server.Config{
			HTTPAddr:              cfg.HTTPAddr,
			DBPath:                cfg.DBPath,
			SessionSecret:         cfg.SessionSecret,
			SessionTTL:            cfg.SessionTTL,
			Debug:                 cfg.Debug,
			StaticDir:             cfg.StaticDir,
			PluginDir:             cfg.PluginDir,
			AdminEmail:            cfg.AdminEmail,
			AdminPassword:         cfg.AdminPassword,
			TrustForwardedProto:   cfg.TrustForwardedProto,
			IsolatePluginFailures: cfg.IsolatePluginFailures,
			Logger:                logger,
		})
		if err != nil {
			return fmt.Errorf("init browser server: %w", err)
		}
		defer func() {
			if closeErr := srv.Close(); closeErr != nil {
				logger.Warn("close browser server", zap.Error(closeErr))
			}
		}()
		if err := srv.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve browser: %w", err)
		}
		return nil
	})
}
