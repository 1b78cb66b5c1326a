package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Profile(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockLoader) GetDay(ctx context.Context, userID string, date domain.DateKey) (*domain.DaySession, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySession), args.Error(1)
}

func (m *MockLoader) History(ctx context.Context, userID string) (domain.CompletionHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.CompletionHistory), args.Error(1)
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
}

func TestController_SignInLoadsSession(t *testing.T) {
	ctx := context.Background()
	loader := new(MockLoader)

	user := &domain.User{ID: "u-1", Email: "a@b.co"}
	today := domain.NewDaySession("u-1", "2024-03-05", nil)
	history := domain.CompletionHistory{"2024-03-04": domain.DayProgress{}}

	loader.On("Profile", ctx, "u-1").Return(user, nil).Once()
	loader.On("GetDay", ctx, "u-1", domain.DateKey("2024-03-05")).Return(today, nil).Once()
	loader.On("History", ctx, "u-1").Return(history, nil).Once()

	c := NewController(loader, fixedNow)
	state, err := c.Dispatch(ctx, domain.AuthEvent{Type: domain.EventSignedIn, UserID: "u-1"})

	require.NoError(t, err)
	assert.True(t, state.Auth.Authenticated())
	assert.Equal(t, user, state.Profile)
	assert.Equal(t, today, state.Today)
	assert.Equal(t, history, state.History)
	loader.AssertExpectations(t)
}

func TestController_FailedEffectDoesNotStopOthers(t *testing.T) {
	ctx := context.Background()
	loader := new(MockLoader)

	history := domain.CompletionHistory{"2024-03-01": domain.DayProgress{}}
	loader.On("Profile", ctx, "u-1").Return(nil, errors.New("db down")).Once()
	loader.On("GetDay", ctx, "u-1", mock.Anything).Return(nil, nil).Once()
	loader.On("History", ctx, "u-1").Return(history, nil).Once()

	c := NewController(loader, fixedNow)
	state, err := c.Dispatch(ctx, domain.AuthEvent{Type: domain.EventInitialSession, UserID: "u-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load profile")
	assert.Nil(t, state.Profile)
	assert.Nil(t, state.Today)
	assert.Equal(t, history, state.History)
}

func TestController_SignOutClearsState(t *testing.T) {
	ctx := context.Background()
	loader := new(MockLoader)
	loader.On("Profile", ctx, "u-1").Return(&domain.User{ID: "u-1"}, nil)
	loader.On("GetDay", ctx, "u-1", mock.Anything).Return(nil, nil)
	loader.On("History", ctx, "u-1").Return(domain.CompletionHistory{}, nil)

	c := NewController(loader, fixedNow)
	_, err := c.Dispatch(ctx, domain.AuthEvent{Type: domain.EventSignedIn, UserID: "u-1"})
	require.NoError(t, err)

	state, err := c.Dispatch(ctx, domain.AuthEvent{Type: domain.EventSignedOut})
	require.NoError(t, err)

	assert.Equal(t, AppState{Auth: domain.AuthState{Status: domain.AuthUnauthenticated}}, state)
	assert.Equal(t, state, c.State())
}

func TestController_SwitchingUserDropsPreviousData(t *testing.T) {
	ctx := context.Background()
	loader := new(MockLoader)

	loader.On("Profile", ctx, "u-1").Return(&domain.User{ID: "u-1"}, nil).Once()
	loader.On("GetDay", ctx, "u-1", mock.Anything).Return(domain.NewDaySession("u-1", "2024-03-05", nil), nil).Once()
	loader.On("History", ctx, "u-1").Return(domain.CompletionHistory{"2024-03-04": domain.DayProgress{}}, nil).Once()

	loader.On("Profile", ctx, "u-2").Return(&domain.User{ID: "u-2"}, nil).Once()
	loader.On("GetDay", ctx, "u-2", mock.Anything).Return(nil, errors.New("timeout")).Once()
	loader.On("History", ctx, "u-2").Return(nil, errors.New("timeout")).Once()

	c := NewController(loader, fixedNow)
	_, err := c.Dispatch(ctx, domain.AuthEvent{Type: domain.EventSignedIn, UserID: "u-1"})
	require.NoError(t, err)

	state, err := c.Dispatch(ctx, domain.AuthEvent{Type: domain.EventSignedIn, UserID: "u-2"})
	require.Error(t, err)

	assert.Equal(t, "u-2", state.Auth.UserID)
	assert.Equal(t, "u-2", state.Profile.ID)
	assert.Nil(t, state.Today)
	assert.Nil(t, state.History)
	loader.AssertExpectations(t)
}

func TestController_TokenRefreshRunsNoEffects(t *testing.T) {
	ctx := context.Background()
	loader := new(MockLoader)

	c := NewController(loader, fixedNow)
	state, err := c.Dispatch(ctx, domain.AuthEvent{Type: domain.EventTokenRefreshed, UserID: "u-1"})

	require.NoError(t, err)
	assert.Equal(t, domain.AuthUnauthenticated, state.Auth.Status)
	loader.AssertNotCalled(t, "Profile", mock.Anything, mock.Anything)
}
