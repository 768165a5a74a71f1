package browser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pgconsole/pgconsole/internal/platform/logging"
	"github.com/pgconsole/pgconsole/internal/platform/timeouts"
	"github.com/pgconsole/pgconsole/internal/services/browser/app"
	"github.com/pgconsole/pgconsole/internal/services/browser/assets"
	"github.com/pgconsole/pgconsole/internal/services/browser/module"
	"github.com/pgconsole/pgconsole/internal/services/browser/modules/auth"
	browsermodule "github.com/pgconsole/pgconsole/internal/services/browser/modules/browser"
	"github.com/pgconsole/pgconsole/internal/services/browser/modules/settings"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/httpx"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/modulehandler"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/observability"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/requestmeta"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/weberror"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugin/luaplugin"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugins/servergroup"
	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
	"github.com/pgconsole/pgconsole/internal/services/browser/session"
	"github.com/pgconsole/pgconsole/internal/services/browser/storage"
	"github.com/pgconsole/pgconsole/internal/services/browser/storage/sqlite"
)

// Config defines startup inputs for the browser service.
type Config struct {
	HTTPAddr      string
	DBPath        string
	SessionSecret string
	SessionTTL    time.Duration
	Debug         bool
	// StaticDir serves third-party core assets under /static/ when set.
	StaticDir string
	// PluginDir holds Lua plugins loaded at startup when set.
	PluginDir             string
	AdminEmail            string
	AdminPassword         string
	TrustForwardedProto   bool
	IsolatePluginFailures bool
	Logger                *zap.Logger
}

// Dependencies are the collaborators NewHandler composes.
type Dependencies struct {
	Store    storage.Store
	Sessions *session.Manager
	Registry plugin.Registry
	Metrics  *observability.Metrics
	Logger   *zap.Logger

	Debug                 bool
	StaticDir             string
	SchemePolicy          requestmeta.SchemePolicy
	IsolatePluginFailures bool
}

// Server hosts the browser HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      storage.Store
	logger     *zap.Logger
}

// NewHandler composes the public and protected modules with the shared
// middleware stack.
func NewHandler(deps Dependencies) (http.Handler, error) {
	if deps.Store == nil {
		return nil, errors.New("store is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("session manager is required")
	}
	logger := logging.OrNop(deps.Logger)
	metrics := deps.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	base := modulehandler.NewBase(logger)
	principal := newPrincipalResolver(deps.Sessions, deps.Store, logger)

	var collectorOpts []plugin.CollectorOption
	if deps.IsolatePluginFailures {
		collectorOpts = append(collectorOpts, plugin.WithIsolation(func(_ context.Context, err *plugin.HookError) {
			logger.Warn("plugin hook failed",
				zap.String("plugin", err.PluginID),
				zap.String("hook", string(err.Hook)),
				zap.Error(err.Err),
			)
			metrics.RecordPluginFailure(err.PluginID, string(err.Hook))
		}))
	}

	root := http.NewServeMux()
	root.Handle(http.MethodGet+" "+routepath.Health, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	}))
	root.Handle(http.MethodGet+" "+routepath.Metrics, metrics.Handler())
	if dir := strings.TrimSpace(deps.StaticDir); dir != "" {
		root.Handle(http.MethodGet+" "+routepath.StaticPrefix,
			http.StripPrefix(strings.TrimSuffix(routepath.StaticPrefix, "/"), http.FileServerFS(os.DirFS(dir))))
	}
	root.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteRedirect(w, r, routepath.BrowserIndex)
	})
	root.HandleFunc(routepath.Root, weberror.NotFound)

	publicModules := []module.Module{
		auth.New(
			auth.WithUsers(deps.Store),
			auth.WithSessions(deps.Sessions),
			auth.WithSchemePolicy(deps.SchemePolicy),
			auth.WithBase(base),
		),
	}
	protectedModules := []module.Module{
		browsermodule.New(
			browsermodule.WithRegistry(deps.Registry),
			browsermodule.WithSettings(deps.Store),
			browsermodule.WithAssets(assets.Resolver{}),
			browsermodule.WithDebug(deps.Debug),
			browsermodule.WithCollectorOptions(collectorOpts...),
			browsermodule.WithBase(base),
		),
		settings.New(
			settings.WithStore(deps.Store),
			settings.WithBase(base),
		),
	}
	if _, err := app.Compose(app.ComposeInput{
		Root:                root,
		ResolvePrincipal:    principal.resolve,
		PublicModules:       publicModules,
		ProtectedModules:    protectedModules,
		RequestSchemePolicy: deps.SchemePolicy,
	}); err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	return httpx.Chain(root,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
		metrics.Middleware(),
	), nil
}

// NewServer opens storage, bootstraps the admin account, loads plugins and
// constructs the HTTP server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	logger := logging.OrNop(cfg.Logger)

	sessions, err := session.NewManager(session.Config{Secret: []byte(cfg.SessionSecret), TTL: cfg.SessionTTL})
	if err != nil {
		return nil, fmt.Errorf("init sessions: %w", err)
	}

	scripted := luaplugin.Set{}
	if dir := strings.TrimSpace(cfg.PluginDir); dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("plugin dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("plugin dir %s is not a directory", dir)
		}
		scripted, err = luaplugin.LoadDir(os.DirFS(dir))
		if err != nil {
			return nil, fmt.Errorf("load plugins from %s: %w", dir, err)
		}
		logger.Info("lua plugins loaded",
			zap.String("dir", dir),
			zap.Int("modules", len(scripted.Modules)),
			zap.Int("providers", len(scripted.Providers)),
		)
	}

	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	srv, err := newServer(ctx, cfg, httpAddr, store, sessions, scripted, logger)
	if err != nil {
		return nil, multierr.Append(err, store.Close())
	}
	return srv, nil
}

func newServer(ctx context.Context, cfg Config, httpAddr string, store storage.Store, sessions *session.Manager, scripted luaplugin.Set, logger *zap.Logger) (*Server, error) {
	if err := bootstrapAdmin(ctx, store, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
		return nil, err
	}
	registry, err := DefaultRegistry(store, scripted)
	if err != nil {
		return nil, fmt.Errorf("build plugin registry: %w", err)
	}
	handler, err := NewHandler(Dependencies{
		Store:                 store,
		Sessions:              sessions,
		Registry:              registry,
		Logger:                logger,
		Debug:                 cfg.Debug,
		StaticDir:             cfg.StaticDir,
		SchemePolicy:          requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		IsolatePluginFailures: cfg.IsolatePluginFailures,
	})
	if err != nil {
		return nil, fmt.Errorf("compose browser handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store:  store,
		logger: logger,
	}, nil
}

// bootstrapAdmin creates the configured admin account and its default server
// group. It is a no-op when no admin email is configured.
func bootstrapAdmin(ctx context.Context, store storage.Store, email, password string, logger *zap.Logger) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	user, err := auth.EnsureUser(ctx, store, email, password)
	if err != nil {
		return err
	}
	if _, err := store.EnsureServerGroup(ctx, user.ID, servergroup.DefaultGroup); err != nil {
		return fmt.Errorf("ensure default server group: %w", err)
	}
	logger.Info("admin account ready", zap.String("email", user.Email))
	return nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("browser server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("browser listening", zap.String("addr", s.httpAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown browser http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve browser http: %w", err)
	}
}

// Close releases the HTTP listener and the store.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.httpServer != nil {
		err = multierr.Append(err, s.httpServer.Close())
	}
	if s.store != nil {
		err = multierr.Append(err, s.store.Close())
	}
	return err
}
