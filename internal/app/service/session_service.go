package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Shrawan0701/webanalytics/internal/app/model"
	"github.com/Shrawan0701/webanalytics/internal/app/repository"
	"github.com/Shrawan0701/webanalytics/internal/http/client"
	"go.uber.org/zap"
)

// SessionState is the session manager's lifecycle state.
type SessionState int

const (
	StateInitializing SessionState = iota
	StateLoggedOut
	StateLoggedIn
)

func (s SessionState) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateLoggedOut:
		return "logged_out"
	case StateLoggedIn:
		return "logged_in"
	default:
		return "unknown"
	}
}

// ErrNotLoggedIn signals an operation that requires an active session.
var ErrNotLoggedIn = errors.New("not logged in")

// SessionService owns the authentication lifecycle: rehydration at startup,
// login/logout, and the current in-memory session. Token and user are always
// set or cleared together; no state ever holds one without the other.
type SessionService struct {
	gateway *client.Gateway
	creds   repository.CredentialRepository
	logger  *zap.Logger

	mu      sync.RWMutex
	state   SessionState
	session model.Session
}

// NewSessionService returns a session manager in the Initializing state.
// Initialize must complete before session-dependent views run.
func NewSessionService(gw *client.Gateway, creds repository.CredentialRepository, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		gateway: gw,
		creds:   creds,
		logger:  logger,
		state:   StateInitializing,
	}
}

// Initialize rehydrates a persisted session. Both token and user present
// restores LoggedIn; anything else (including unreadable storage) lands in
// LoggedOut. The Initializing state is left exactly once.
func (s *SessionService) Initialize(ctx context.Context) error {
	token, user, err := s.creds.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNoCredentials) {
			s.logger.Warn("stored session unreadable, starting logged out", zap.Error(err))
			_ = s.creds.Clear(ctx)
		}
		s.set(StateLoggedOut, model.Session{})
		return nil
	}

	s.set(StateLoggedIn, model.Session{Token: token, User: user})
	s.logger.Debug("session restored", zap.String("username", user.Username))
	return nil
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signinResponse struct {
	AccessToken string `json:"accessToken"`
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

// Login authenticates against the remote endpoint, then stores the session in
// memory and durable storage. A failed login leaves any prior session
// untouched.
func (s *SessionService) Login(ctx context.Context, username, password string) (*model.User, error) {
	var resp signinResponse
	if err := s.gateway.Post(ctx, "/auth/signin", signinRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}

	user := model.User{ID: resp.ID, Username: resp.Username, Email: resp.Email}
	if err := s.creds.Save(ctx, resp.AccessToken, user); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.set(StateLoggedIn, model.Session{Token: resp.AccessToken, User: &user})
	return &user, nil
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. It never establishes a session; the caller
// logs in separately afterwards.
func (s *SessionService) Register(ctx context.Context, username, email, password string) error {
	return s.gateway.Post(ctx, "/auth/signup", signupRequest{Username: username, Email: email, Password: password}, nil)
}

// Logout clears the in-memory session and the persisted credentials. Safe to
// call when already logged out.
func (s *SessionService) Logout(ctx context.Context) error {
	s.set(StateLoggedOut, model.Session{})
	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("clear stored session: %w", err)
	}
	return nil
}

// UpdateUser replaces the user identity in memory and storage without
// touching the token.
func (s *SessionService) UpdateUser(ctx context.Context, user model.User) error {
	s.mu.Lock()
	if s.state != StateLoggedIn {
		s.mu.Unlock()
		return ErrNotLoggedIn
	}
	s.session.User = &user
	s.mu.Unlock()

	if err := s.creds.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// Validate probes token liveness against the remote endpoint.
func (s *SessionService) Validate(ctx context.Context) error {
	return s.gateway.Get(ctx, "/auth/validate", nil, nil)
}

// Token implements the gateway's token source. It returns "" while logged
// out, so requests made without a session carry no authorization header.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// CurrentUser returns the authenticated user, or nil.
func (s *SessionService) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.User
}

// State returns the current lifecycle state.
func (s *SessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SessionService) set(state SessionState, session model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.session = session
}
