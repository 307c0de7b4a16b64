package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/cricket-live/internal/domain/session"
	"github.com/riskibarqy/cricket-live/internal/platform/id"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
)

type LoginInput struct {
	UserID   string `validate:"omitempty,max=64"`
	Username string `validate:"required,max=64"`
	Role     string `validate:"required,oneof=ADMIN COACH VIEWER"`
}

// SessionService holds the signed-in user for one process. It is passed explicitly to
// whatever needs it and mirrors every change to its store.
type SessionService struct {
	store     session.Store
	ids       id.Generator
	validator *validator.Validate
	logger    *logging.Logger

	mu      sync.RWMutex
	current *session.User
}

func NewSessionService(store session.Store, logger *logging.Logger) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionService{
		store:     store,
		ids:       id.NewUUIDGenerator("usr_"),
		validator: validator.New(),
		logger:    logger,
	}
}

// Init restores the user saved by a previous run, if any.
func (s *SessionService) Init(ctx context.Context) error {
	user, ok, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.current = nil
		return nil
	}
	s.current = &user
	s.logger.DebugContext(ctx, "session restored", "username", user.Username, "role", string(user.Role))
	return nil
}

func (s *SessionService) Login(ctx context.Context, input LoginInput) (session.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.UserID = strings.TrimSpace(input.UserID)
	input.Role = string(session.NormalizeRole(input.Role))
	if err := s.validator.StructCtx(ctx, input); err != nil {
		return session.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if input.UserID == "" {
		input.UserID = s.ids.NewID()
	}
	user := session.User{
		ID:       input.UserID,
		Username: input.Username,
		Role:     session.Role(input.Role),
	}
	if err := s.store.Save(ctx, user); err != nil {
		return session.User{}, fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session started", "username", user.Username, "role", string(user.Role))
	return user, nil
}

func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

func (s *SessionService) Current() (session.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return session.User{}, false
	}
	return *s.current, true
}

// RequireRole fails with ErrUnauthorized unless the signed-in user has role.
func (s *SessionService) RequireRole(role session.Role) (session.User, error) {
	user, ok := s.Current()
	if !ok {
		return session.User{}, fmt.Errorf("%w: no active session", ErrUnauthorized)
	}
	if user.Role != role {
		return session.User{}, fmt.Errorf("%w: role %s required", ErrUnauthorized, role)
	}
	return user, nil
}

func (s *SessionService) HasRole(role session.Role) bool {
	_, err := s.RequireRole(role)
	return err == nil
}
