// Package httpapi exposes the account service as a JSON REST API on gin.
// It mirrors the gRPC surface: same validation, same status semantics, same
// masking of internal failures.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/accounts/internal/logging"
	"github.com/dmitrijs2005/accounts/internal/server/auth"
	"github.com/dmitrijs2005/accounts/internal/server/metrics"
	"github.com/dmitrijs2005/accounts/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// AccountService is the subset of services.AccountService the API calls.
type AccountService interface {
	Register(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(ctx context.Context, email, password string) (*services.Session, error)
	GetProfile(ctx context.Context, accountID string) (*services.Profile, error)
	UpdateProfile(ctx context.Context, accountID string, email, password *string) (*services.Profile, error)
	DeleteAccount(ctx context.Context, callerID, targetID string) error
	Logout(ctx context.Context, accountID string) error
}

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Pinger reports whether the account store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HTTPServer struct {
	address  string
	accounts AccountService
	tokens   TokenVerifier
	store    Pinger
	metrics  *metrics.Metrics
	logger   logging.Logger
	now      func() time.Time
}

func NewHTTPServer(a string, l logging.Logger, svc AccountService, tokens TokenVerifier, store Pinger, m *metrics.Metrics) *HTTPServer {
	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		accounts: svc,
		tokens:   tokens,
		store:    store,
		metrics:  m,
		now:      time.Now,
	}
}

// Handler builds the gin engine with every route registered.
func (s *HTTPServer) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe())

	a := r.Group("/auth")
	a.POST("/register", s.register)
	a.POST("/login", s.login)

	protected := a.Group("", s.requireToken())
	protected.GET("/me", s.me)
	protected.PUT("/me", s.updateMe)
	protected.DELETE("/users/:id", s.deleteAccount)
	protected.POST("/logout", s.logout)

	r.GET("/health", s.health)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
