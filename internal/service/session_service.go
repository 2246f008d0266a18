package service

import (
	"context"
	"sync"
	"time"

	"storefront/internal/account"
	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is the handle of the authenticated account. Cart and order
// operations take it explicitly and are refused once it is no longer the
// active session.
type Session struct {
	id        string
	account   *account.Account
	startedAt time.Time
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Account returns the public view of the session's account
func (s *Session) Account() models.AccountInfo {
	return s.account.Info()
}

// StartedAt returns the login time
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// LoginResponse is the outcome of a successful login
type LoginResponse struct {
	Session *Session
	// Existing is set when a session was already active. The call changed
	// nothing and Session is that active session.
	Existing bool
}

// SessionService is the account gate: zero or one active session per
// system instance.
type SessionService struct {
	mu             sync.Mutex
	accounts       *account.Directory
	current        *Session
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewSessionService creates a new session gate
func NewSessionService(accounts *account.Directory, eventPublisher *broker.EventPublisher) *SessionService {
	return &SessionService{
		accounts:       accounts,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// Login authenticates username and credential. While a session is active it
// succeeds without checking anything and keeps the current account.
func (s *SessionService) Login(ctx context.Context, username, credential string) (*LoginResponse, error) {
	ctx, span := util.StartSpan(ctx, "SessionService.Login")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		util.LoginAttemptsTotal.WithLabelValues("existing").Inc()
		s.logger.Info("Login while logged in",
			zap.String("current", s.current.account.Username),
			zap.String("requested", username))
		return &LoginResponse{Session: s.current, Existing: true}, nil
	}

	acc, err := s.accounts.Authenticate(username, credential)
	if err != nil {
		util.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		s.logger.Info("Login failed", zap.String("username", username))
		return nil, err
	}

	s.current = &Session{
		id:        uuid.New().String(),
		account:   acc,
		startedAt: time.Now(),
	}
	util.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info("Logged in",
		zap.Int64("account_id", acc.ID),
		zap.String("session_id", s.current.id))

	event := &models.SessionStartedEvent{
		BaseEvent: models.NewBaseEvent(models.EventTypeSessionStarted),
		AccountID: acc.ID,
		Username:  acc.Username,
	}
	if err := s.eventPublisher.PublishSessionStarted(ctx, event); err != nil {
		s.logger.Error("Failed to publish SessionStarted event", zap.Error(err))
	}

	return &LoginResponse{Session: s.current}, nil
}

// Logout ends the active session
func (s *SessionService) Logout(ctx context.Context) (models.AccountInfo, error) {
	ctx, span := util.StartSpan(ctx, "SessionService.Logout")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.AccountInfo{}, models.ErrNotAuthenticated
	}

	acc := s.current.account
	s.current = nil
	s.logger.Info("Logged out", zap.Int64("account_id", acc.ID))

	event := &models.SessionEndedEvent{
		BaseEvent: models.NewBaseEvent(models.EventTypeSessionEnded),
		AccountID: acc.ID,
		Username:  acc.Username,
	}
	if err := s.eventPublisher.PublishSessionEnded(ctx, event); err != nil {
		s.logger.Error("Failed to publish SessionEnded event", zap.Error(err))
	}

	return acc.Info(), nil
}

// Current returns the active session
func (s *SessionService) Current() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, models.ErrNotAuthenticated
	}
	return s.current, nil
}

// authorize resolves the account behind sess, refusing stale or nil handles
func (s *SessionService) authorize(sess *Session) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess == nil || s.current == nil || sess != s.current {
		return nil, models.ErrNotAuthenticated
	}
	return sess.account, nil
}

// Lookup returns the active session when id names it, nil otherwise. A nil
// result is refused by every gated operation.
func (s *SessionService) Lookup(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" || s.current == nil || s.current.id != id {
		return nil
	}
	return s.current
}
