package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/cricket-live/internal/domain/session"
	sessionmock "github.com/riskibarqy/cricket-live/internal/mocks/domain/session"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionService_InitRestoresSavedUser(t *testing.T) {
	t.Parallel()

	store := sessionmock.NewStore(t)
	store.On("Load", mock.Anything).Return(session.User{ID: "u-1", Username: "coach.kim", Role: session.RoleCoach}, true, nil).Once()

	svc := NewSessionService(store, logging.NewNop())
	require.NoError(t, svc.Init(context.Background()))

	user, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "coach.kim", user.Username)

	_, err := svc.RequireRole(session.RoleCoach)
	assert.NoError(t, err)
	_, err = svc.RequireRole(session.RoleAdmin)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, svc.HasRole(session.RoleCoach))
	assert.False(t, svc.HasRole(session.RoleViewer))
}

func TestSessionService_InitWithoutSavedUser(t *testing.T) {
	t.Parallel()

	store := sessionmock.NewStore(t)
	store.On("Load", mock.Anything).Return(session.User{}, false, nil).Once()

	svc := NewSessionService(store, logging.NewNop())
	require.NoError(t, svc.Init(context.Background()))

	_, ok := svc.Current()
	assert.False(t, ok)
	_, err := svc.RequireRole(session.RoleViewer)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSessionService_InitPropagatesStoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("permission denied")
	store := sessionmock.NewStore(t)
	store.On("Load", mock.Anything).Return(session.User{}, false, storeErr).Once()

	svc := NewSessionService(store, logging.NewNop())
	assert.ErrorIs(t, svc.Init(context.Background()), storeErr)
}

func TestSessionService_LoginAndLogout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionmock.NewStore(t)
	want := session.User{ID: "u-7", Username: "admin", Role: session.RoleAdmin}
	store.On("Save", mock.Anything, want).Return(nil).Once()
	store.On("Clear", mock.Anything).Return(nil).Once()

	svc := NewSessionService(store, logging.NewNop())

	user, err := svc.Login(ctx, LoginInput{UserID: " u-7 ", Username: " admin ", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, want, user)

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, want, current)

	require.NoError(t, svc.Logout(ctx))
	_, ok = svc.Current()
	assert.False(t, ok)
}

func TestSessionService_LoginAssignsMissingUserID(t *testing.T) {
	t.Parallel()

	store := sessionmock.NewStore(t)
	store.On("Save", mock.Anything, mock.MatchedBy(func(u session.User) bool {
		return strings.HasPrefix(u.ID, "usr_") && u.Username == "guest" && u.Role == session.RoleViewer
	})).Return(nil).Once()

	svc := NewSessionService(store, logging.NewNop())
	user, err := svc.Login(context.Background(), LoginInput{Username: "guest", Role: "viewer"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.ID, "usr_"), "got id %q", user.ID)
}

func TestSessionService_LoginValidation(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(sessionmock.NewStore(t), logging.NewNop())

	cases := []LoginInput{
		{Username: "", Role: "ADMIN"},
		{Username: "kim", Role: "OWNER"},
		{Username: "kim"},
	}
	for _, input := range cases {
		_, err := svc.Login(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidInput, "input=%+v", input)
	}
	_, ok := svc.Current()
	assert.False(t, ok)
}
