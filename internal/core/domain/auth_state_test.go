package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduceAuth(t *testing.T) {
	guest := AuthState{Status: AuthUnauthenticated}
	signedIn := AuthState{Status: AuthAuthenticated, UserID: "u-1"}
	loadAll := []Effect{EffectLoadProfile, EffectLoadToday, EffectLoadHistory}

	tests := []struct {
		name    string
		state   AuthState
		event   AuthEvent
		want    AuthState
		effects []Effect
	}{
		{"Sign in loads everything", guest, AuthEvent{Type: EventSignedIn, UserID: "u-1"}, signedIn, loadAll},
		{"Sign in without session is ignored", guest, AuthEvent{Type: EventSignedIn}, guest, nil},
		{"Sign out clears state", signedIn, AuthEvent{Type: EventSignedOut}, guest, []Effect{EffectClearState}},
		{"Initial session with user", guest, AuthEvent{Type: EventInitialSession, UserID: "u-1"}, signedIn, loadAll},
		{"Initial session without user", signedIn, AuthEvent{Type: EventInitialSession}, guest, []Effect{EffectClearState}},
		{"Token refresh keeps views", signedIn, AuthEvent{Type: EventTokenRefreshed, UserID: "u-1"}, signedIn, nil},
		{"Token refresh while signed out", guest, AuthEvent{Type: EventTokenRefreshed, UserID: "u-1"}, guest, nil},
		{"User update reloads profile", signedIn, AuthEvent{Type: EventUserUpdated, UserID: "u-1"}, signedIn, []Effect{EffectLoadProfile}},
		{"Unknown event", signedIn, AuthEvent{Type: "PASSWORD_RECOVERY"}, signedIn, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects := ReduceAuth(tt.state, tt.event)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.effects, effects)
		})
	}
}

func TestReduceAuth_DoesNotShareEffectSlices(t *testing.T) {
	_, first := ReduceAuth(AuthState{}, AuthEvent{Type: EventSignedIn, UserID: "a"})
	first[0] = EffectClearState

	_, second := ReduceAuth(AuthState{}, AuthEvent{Type: EventSignedIn, UserID: "b"})
	assert.Equal(t, EffectLoadProfile, second[0])
}
