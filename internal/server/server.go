// Package server exposes the bridge's HTTP surface: message send/fetch,
// the slash-command echo, the OAuth install callback and the Slack Events
// endpoint.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/slackbridge/internal/slackapi"
	"github.com/zulandar/slackbridge/internal/store"
)

// Opts holds everything the HTTP handlers need. It is built once at startup
// and passed by value into every handler factory; there is no package-level
// state.
type Opts struct {
	Store     *store.Store
	NewClient func(botToken string) slackapi.Client
	OAuth     slackapi.OAuthExchanger

	AppID         string // Slack app ID, used for app_redirect URLs
	SigningSecret string // verifies inbound event deliveries
	Port          int
	Out           io.Writer
}

// Start launches the bridge HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts Opts) error {
	if opts.Store == nil {
		return fmt.Errorf("server: store is required")
	}
	if opts.NewClient == nil {
		return fmt.Errorf("server: client factory is required")
	}
	if opts.OAuth == nil {
		return fmt.Errorf("server: oauth exchanger is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	gin.SetMode(gin.ReleaseMode)
	router := newRouter(opts)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Bridge listening on :%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// newRouter builds the gin engine with all routes registered.
func newRouter(opts Opts) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	registerRoutes(router, opts)
	return router
}
