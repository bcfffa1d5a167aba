package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devblox/relay/internal/config"
	"github.com/devblox/relay/internal/handler"
	"github.com/devblox/relay/internal/handler/plugin"
	"github.com/devblox/relay/internal/handler/web"
	"github.com/devblox/relay/internal/logging"
	"github.com/devblox/relay/internal/middleware"
	"github.com/devblox/relay/internal/svc"
)

// ServerOptions holds optional dependencies for the server
type ServerOptions struct {
	SvcCtx *svc.ServiceContext // Pre-initialized service context (tests, embedding)
	Quiet  bool                // Suppress startup messages for clean CLI output
}

// Run starts the relay server with the given configuration.
// It blocks until the context is cancelled or an error occurs.
func Run(ctx context.Context, c config.Config, opts ...ServerOptions) error {
	var o ServerOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return run(ctx, c, o)
}

func run(ctx context.Context, c config.Config, opts ServerOptions) error {
	serverPort := c.Port

	// Check if port is available
	if err := checkPortAvailable(serverPort); err != nil {
		return fmt.Errorf("port %d is already in use", serverPort)
	}

	svcCtx := opts.SvcCtx
	if svcCtx == nil {
		var err error
		svcCtx, err = svc.NewServiceContext(ctx, c)
		if err != nil {
			return err
		}
	}

	svcCtx.Start(ctx)
	defer svcCtx.Stop()

	r := NewRouter(svcCtx, opts.Quiet)

	// ReadTimeout/WriteTimeout are intentionally omitted: they would cut off
	// long-poll requests that are legitimately held open. IdleTimeout still
	// reclaims dead keep-alive connections.
	httpServer := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", c.Host, serverPort),
		Handler:     r,
		IdleTimeout: 120 * time.Second,
	}

	if !opts.Quiet {
		logging.Infof("%s listening on http://%s:%d", c.App.Name, c.Host, serverPort)
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Errorf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()

	if !opts.Quiet {
		logging.Infof("Shutting down server gracefully...")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

// NewRouter builds the full route tree. Split out from run so tests can mount
// it on an httptest server.
func NewRouter(svcCtx *svc.ServiceContext, quiet bool) chi.Router {
	r := chi.NewRouter()

	if !quiet {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(corsMiddleware(svcCtx.Config))

	r.Get("/health", handler.HealthCheckHandler(svcCtx))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Dashboard routes carry the per-visitor quota cookie
		r.Group(func(r chi.Router) {
			r.Use(middleware.ClientUID)

			r.Post("/sessions", web.RegisterSessionHandler(svcCtx))
			r.Delete("/sessions/{sessionId}", web.RemoveSessionHandler(svcCtx))
			r.Get("/sessions/{sessionId}/status", web.StatusHandler(svcCtx))
			r.Post("/prompt", web.SubmitPromptHandler(svcCtx))
			r.Get("/usage", web.UsageHandler(svcCtx))
			r.Post("/usage/redeem", web.RedeemCodeHandler(svcCtx))
			r.Get("/projects", web.ListProjectsHandler(svcCtx))
			r.Post("/projects", web.CreateProjectHandler(svcCtx))
		})

		// Studio plugin routes: no cookie, the plugin identifies by session ID
		r.Get("/plugin/poll", plugin.PollCommandsHandler(svcCtx))
		r.Post("/plugin/heartbeat", plugin.HeartbeatHandler(svcCtx))
	})

	return r
}

// corsMiddleware allows the configured dashboard origins. With no origins
// configured every origin is allowed, matching a public free-tier deployment.
func corsMiddleware(c config.Config) func(http.Handler) http.Handler {
	allowed := map[string]bool{}
	for _, o := range strings.Split(c.App.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && (len(allowed) == 0 || allowed[origin]) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkPortAvailable checks if a port is available for binding
func checkPortAvailable(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}
	ln.Close()
	return nil
}
