// Package state holds the mutable application state slices and their
// composition into a single store. Each slice guards its fields with a
// mutex and exposes copy-out snapshots, so callers never observe a
// partially applied transition.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/unideck/unideck/internal/domain/auth"
	"github.com/unideck/unideck/internal/domain/validation"
)

// AuthPhase identifies where the auth slice is in its lifecycle.
type AuthPhase string

const (
	PhaseChecking       AuthPhase = "checking"
	PhaseAnonymous      AuthPhase = "anonymous"
	PhaseAuthenticating AuthPhase = "authenticating"
	PhaseAuthenticated  AuthPhase = "authenticated"
	PhaseError          AuthPhase = "error"
)

// AuthAPI is the remote surface the auth slice needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*auth.Session, error)
}

// SessionStore persists the session and locally registered accounts.
type SessionStore interface {
	LoadSession() *auth.Session
	SaveSession(s *auth.Session) error
	RemoveSession() error
	LoadAccounts() auth.Accounts
	SaveAccounts(accounts auth.Accounts) error
}

// AuthSnapshot is a copy of the auth slice state at one instant.
type AuthSnapshot struct {
	Phase AuthPhase
	User  *auth.User
	Token string
	Err   string
}

// IsAuthenticated reports whether the snapshot carries a usable session.
func (s AuthSnapshot) IsAuthenticated() bool {
	return s.Phase == PhaseAuthenticated && s.User != nil && s.Token != ""
}

// AuthState tracks who is signed in. It starts in PhaseChecking;
// CheckSession resolves the persisted session into authenticated or
// anonymous. Persistence failures after a successful login are logged
// and swallowed so the in-memory session stays live for the run.
type AuthState struct {
	mu     sync.Mutex
	api    AuthAPI
	store  SessionStore
	logger *slog.Logger

	phase AuthPhase
	user  *auth.User
	token string
	err   string
}

// NewAuthState creates the auth slice in the checking phase.
func NewAuthState(api AuthAPI, store SessionStore, logger *slog.Logger) *AuthState {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthState{
		api:    api,
		store:  store,
		logger: logger,
		phase:  PhaseChecking,
	}
}

// Snapshot returns a copy of the current auth state.
func (a *AuthState) Snapshot() AuthSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	snap := AuthSnapshot{Phase: a.phase, Token: a.token, Err: a.err}
	if a.user != nil {
		u := *a.user
		snap.User = &u
	}
	return snap
}

// CheckSession restores the persisted session, moving to authenticated
// when one is found and anonymous otherwise.
func (a *AuthState) CheckSession() AuthSnapshot {
	session := a.store.LoadSession()

	a.mu.Lock()
	defer a.mu.Unlock()
	if session.IsAuthenticated() {
		a.phase = PhaseAuthenticated
		u := *session.User
		a.user = &u
		a.token = session.Token
		a.logger.Debug("session restored", "username", u.Username)
	} else {
		a.phase = PhaseAnonymous
		a.user = nil
		a.token = ""
	}
	a.err = ""
	return a.snapshotLocked()
}

// Login validates the form, then authenticates. Validation failures are
// returned without touching the phase; authentication failures move the
// slice to the error phase with a fixed message.
func (a *AuthState) Login(ctx context.Context, form validation.LoginForm) error {
	if err := validation.ValidateLogin(form); err != nil {
		return err
	}

	a.mu.Lock()
	a.phase = PhaseAuthenticating
	a.err = ""
	a.mu.Unlock()

	session, err := a.api.Login(ctx, form.Username, form.Password)
	if err != nil {
		a.mu.Lock()
		a.phase = PhaseError
		a.err = err.Error()
		a.user = nil
		a.token = ""
		a.mu.Unlock()
		return err
	}

	if saveErr := a.store.SaveSession(session); saveErr != nil {
		a.logger.Warn("failed to persist session", "error", saveErr)
	}

	a.mu.Lock()
	a.phase = PhaseAuthenticated
	u := *session.User
	a.user = &u
	a.token = session.Token
	a.err = ""
	a.mu.Unlock()
	return nil
}

// Register validates the form, creates a local account, and signs the
// new user straight in. Duplicate usernames surface as a field error.
func (a *AuthState) Register(form validation.RegisterForm) error {
	if err := validation.ValidateRegister(form); err != nil {
		return err
	}

	user := auth.User{
		ID:        uuid.NewString(),
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}
	account, err := auth.NewAccount(user, form.Password)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	accounts := a.store.LoadAccounts()
	accounts, err = accounts.Add(account)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			return &validation.Error{Fields: map[string]string{
				"username": "username is already registered",
			}}
		}
		return err
	}
	if saveErr := a.store.SaveAccounts(accounts); saveErr != nil {
		a.logger.Warn("failed to persist accounts", "error", saveErr)
	}

	session := &auth.Session{
		User:  &user,
		Token: fmt.Sprintf("local-%s", uuid.NewString()),
	}
	if saveErr := a.store.SaveSession(session); saveErr != nil {
		a.logger.Warn("failed to persist session", "error", saveErr)
	}

	a.mu.Lock()
	a.phase = PhaseAuthenticated
	a.user = &user
	a.token = session.Token
	a.err = ""
	a.mu.Unlock()
	return nil
}

// Logout removes the persisted session and returns to anonymous.
func (a *AuthState) Logout() {
	if err := a.store.RemoveSession(); err != nil {
		a.logger.Warn("failed to remove persisted session", "error", err)
	}

	a.mu.Lock()
	a.phase = PhaseAnonymous
	a.user = nil
	a.token = ""
	a.err = ""
	a.mu.Unlock()
}

// ClearError drops a login failure and returns to anonymous.
func (a *AuthState) ClearError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase == PhaseError {
		a.phase = PhaseAnonymous
	}
	a.err = ""
}

func (a *AuthState) snapshotLocked() AuthSnapshot {
	snap := AuthSnapshot{Phase: a.phase, Token: a.token, Err: a.err}
	if a.user != nil {
		u := *a.user
		snap.User = &u
	}
	return snap
}
