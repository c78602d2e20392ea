// Package services contains server-side business logic. AccountService
// composes the account store, the password hasher and the token issuer into
// the account lifecycle: register, authenticate, read and update the
// profile, delete and log out.
//
// The service never logs. Every failure is returned as one of the sentinel
// errors in package common; store, hasher and signer faults come back
// wrapped in common.ErrorInternal with the cause kept in the chain so the
// boundary can log it and show the caller a masked message.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/dmitrijs2005/accounts/internal/cryptox"
	"github.com/dmitrijs2005/accounts/internal/server/models"
	"github.com/dmitrijs2005/accounts/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/accounts/internal/server/repositories/repomanager"
)

// Profile is the outward view of an account. It never carries the secret.
type Profile struct {
	ID    string
	Email string
}

// Session is returned by Register and Authenticate.
type Session struct {
	Profile
	Token string
}

// TokenIssuer is satisfied by *auth.TokenIssuer.
type TokenIssuer interface {
	Issue(accountID, email string) (string, error)
}

type AccountService struct {
	store  repomanager.RepositoryManager
	hasher cryptox.Hasher
	tokens TokenIssuer

	// dummySecret is verified against when the email is unknown, so a
	// failed login costs one hash verification whether or not the
	// account exists.
	dummySecret string
}

func NewAccountService(store repomanager.RepositoryManager, hasher cryptox.Hasher, tokens TokenIssuer) (*AccountService, error) {
	pw, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("generating dummy password: %w", err)
	}
	dummy, err := hasher.Hash(pw)
	if err != nil {
		return nil, fmt.Errorf("hashing dummy password: %w", err)
	}

	return &AccountService{
		store:       store,
		hasher:      hasher,
		tokens:      tokens,
		dummySecret: dummy,
	}, nil
}

// NormalizeEmail is the canonical form used for storage and uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and opens a session for it. A duplicate
// email yields common.ErrEmailTaken and leaves the store unchanged.
func (s *AccountService) Register(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)

	secret, err := s.hasher.Hash(password)
	if err != nil {
		return nil, internal("hashing password", err)
	}

	account, err := s.store.Accounts().Create(ctx, email, secret)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, internal("creating account", err)
	}

	return s.openSession(account)
}

// Authenticate checks credentials and opens a session. An unknown email and
// a wrong password both yield common.ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)

	account, err := s.store.Accounts().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.hasher.Verify(password, s.dummySecret)
			return nil, common.ErrInvalidCredentials
		}
		return nil, internal("finding account", err)
	}

	ok, err := s.hasher.Verify(password, account.Secret)
	if err != nil {
		return nil, internal("verifying password", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	return s.openSession(account)
}

// GetProfile returns the account's public fields, or common.ErrorNotFound.
func (s *AccountService) GetProfile(ctx context.Context, accountID string) (*Profile, error) {
	account, err := s.store.Accounts().FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, internal("finding account", err)
	}

	return profileOf(account), nil
}

// UpdateProfile changes the email, the password or both. A new password is
// re-hashed; tokens issued before the change stay valid until they expire.
// A nil field is left as is.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, email, password *string) (*Profile, error) {
	var patch models.AccountPatch

	if email != nil {
		normalized := NormalizeEmail(*email)
		patch.Email = &normalized
	}
	if password != nil {
		secret, err := s.hasher.Hash(*password)
		if err != nil {
			return nil, internal("hashing password", err)
		}
		patch.Secret = &secret
	}

	var updated *models.Account
	err := s.store.WithTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		existing, err := repo.FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		if patch.Empty() {
			updated = existing
			return nil
		}
		updated, err = repo.Update(ctx, existing.ID, patch)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorNotFound
		case errors.Is(err, common.ErrEmailTaken):
			return nil, common.ErrEmailTaken
		default:
			return nil, internal("updating account", err)
		}
	}

	return profileOf(updated), nil
}

// DeleteAccount removes targetID. Callers may only delete their own
// account; anything else is common.ErrForbidden.
func (s *AccountService) DeleteAccount(ctx context.Context, callerID, targetID string) error {
	if callerID == "" || callerID != targetID {
		return common.ErrForbidden
	}

	if err := s.store.Accounts().DeleteByID(ctx, targetID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return internal("deleting account", err)
	}

	return nil
}

// Logout acknowledges the end of a session. Tokens are stateless and cannot
// be revoked, so there is nothing to do server-side: the client must discard
// its token, which otherwise stays valid until expiry.
func (s *AccountService) Logout(ctx context.Context, accountID string) error {
	return nil
}

func (s *AccountService) openSession(account *models.Account) (*Session, error) {
	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return nil, internal("issuing token", err)
	}
	return &Session{Profile: *profileOf(account), Token: token}, nil
}

func profileOf(a *models.Account) *Profile {
	return &Profile{ID: a.ID, Email: a.Email}
}

func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrorInternal, op, err)
}
