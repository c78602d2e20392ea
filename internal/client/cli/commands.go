package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/accounts/internal/client/client"
	"github.com/dmitrijs2005/accounts/internal/common"
)

// Prompt hooks, replaced in tests.
var (
	readLine   = ReadLine
	readSecret = ReadSecret
)

func (a *App) exec(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "me":
		return a.Me(ctx)
	case "update":
		return a.Update(ctx)
	case "delete":
		id := ""
		if len(rest) > 0 {
			id = rest[0]
		}
		return a.Delete(ctx, id)
	case "logout":
		return a.Logout(ctx)
	case "ping":
		return a.Ping(ctx)
	case "help":
		a.help()
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func (a *App) help() {
	fmt.Fprintln(a.out, "Available commands: register, login, me, update, delete [id], logout, ping, help, exit")
}

func (a *App) credentials() (string, string, error) {
	email, err := readLine(a.reader, "Enter email", a.out)
	if err != nil {
		return "", "", err
	}

	password, err := readSecret(a.reader, "Password", a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(password)

	return email, string(password), nil
}

// Register creates an account and stores its session token.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := a.client.Register(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(resp.Token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	a.email = resp.Email

	fmt.Fprintf(a.out, "Registered %s (id %s)\n", resp.Email, resp.ID)
	return nil
}

// Login authenticates and stores the session token.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("invalid credentials")
		}
		return err
	}
	if err := a.tokens.Save(resp.Token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	a.email = resp.User.Email

	fmt.Fprintf(a.out, "Logged in as %s\n", resp.User.Email)
	return nil
}

// Me prints the profile of the logged-in account.
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		return ErrNotLoggedIn
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	acc, err := a.client.GetProfile(ctx)
	if err != nil {
		return a.sessionError(err)
	}
	a.email = acc.Email

	fmt.Fprintf(a.out, "id:    %s\nemail: %s\n", acc.ID, acc.Email)
	return nil
}

// Update asks for a new email and password; an empty answer keeps the
// current value.
func (a *App) Update(ctx context.Context) error {
	if !a.isLoggedIn() {
		return ErrNotLoggedIn
	}

	newEmail, err := readLine(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}

	pw, err := readSecret(a.reader, "New password (empty to keep)", a.out)
	if err != nil {
		return err
	}
	newPassword := string(pw)
	common.WipeByteArray(pw)

	var email, password *string
	if newEmail != "" {
		email = &newEmail
	}
	if newPassword != "" {
		password = &newPassword
	}
	if email == nil && password == nil {
		return errors.New("nothing to update")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	acc, err := a.client.UpdateProfile(ctx, email, password)
	if err != nil {
		return a.sessionError(err)
	}
	a.email = acc.Email

	fmt.Fprintf(a.out, "Updated %s\n", acc.Email)
	return nil
}

// Delete removes the account with the given id, or the logged-in account
// when id is empty, after a confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return ErrNotLoggedIn
	}

	answer, err := readLine(a.reader, "Type 'yes' to delete the account permanently", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		return ErrAborted
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.DeleteAccount(ctx, id); err != nil {
		if errors.Is(err, client.ErrForbidden) {
			return errors.New("you can only delete your own account")
		}
		return a.sessionError(err)
	}
	if err := a.forget(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

// Logout discards the stored token. An already invalid token still counts
// as a successful logout.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return ErrNotLoggedIn
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	err := a.client.Logout(ctx)
	if ferr := a.forget(); ferr != nil {
		return ferr
	}
	if err != nil && !errors.Is(err, client.ErrUnauthorized) {
		return err
	}

	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Server is up")
	return nil
}

func (a *App) forget() error {
	a.client.SetToken("")
	a.email = ""
	return a.tokens.Clear()
}

// sessionError drops a token the server no longer accepts.
func (a *App) sessionError(err error) error {
	if !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	if ferr := a.forget(); ferr != nil {
		return ferr
	}
	return fmt.Errorf("%w: session expired or invalid, please log in again", err)
}
