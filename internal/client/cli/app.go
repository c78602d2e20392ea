package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/dmitrijs2005/accounts/internal/api"
	"github.com/dmitrijs2005/accounts/internal/client/client"
	"github.com/dmitrijs2005/accounts/internal/client/config"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in, run 'login' first")
	ErrUnknownCommand = errors.New("unknown command")
	ErrAborted        = errors.New("aborted")
)

// AccountClient is the part of client.GRPCClient the commands use.
type AccountClient interface {
	Register(ctx context.Context, email, password string) (*api.RegisterResponse, error)
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	GetProfile(ctx context.Context) (*api.Account, error)
	UpdateProfile(ctx context.Context, email, password *string) (*api.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	SetToken(token string)
	Token() string
	Close() error
}

type App struct {
	config *config.Config
	client AccountClient
	tokens *TokenFile
	email  string
	reader *bufio.Reader
	out    io.Writer
}

// NewApp connects to the configured server and restores the stored token,
// if any.
func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	app := newApp(c, apiClient, NewTokenFile(c.TokenFile), os.Stdin, os.Stdout)
	if err := app.restoreToken(); err != nil {
		_ = apiClient.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, ac AccountClient, tokens *TokenFile, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: ac, tokens: tokens, reader: bufio.NewReader(in), out: out}
}

func (a *App) restoreToken() error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	a.client.SetToken(token)
	return nil
}

// Run executes args as a single command, or starts the REPL when args is
// empty. The connection is closed on return.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.client.Close()

	if len(args) == 0 {
		a.Root(ctx)
		return nil
	}
	return a.exec(ctx, args)
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}

func (a *App) getStatus() string {
	switch {
	case a.email != "":
		return "(" + a.email + ")"
	case a.isLoggedIn():
		return "(logged in)"
	default:
		return ""
	}
}

// withTimeout bounds one server call by the configured request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
