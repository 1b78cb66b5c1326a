package domain

type AuthStatus string

const (
	AuthUnauthenticated AuthStatus = "unauthenticated"
	AuthAuthenticated   AuthStatus = "authenticated"
)

type AuthEventType string

const (
	EventSignedIn       AuthEventType = "SIGNED_IN"
	EventSignedOut      AuthEventType = "SIGNED_OUT"
	EventInitialSession AuthEventType = "INITIAL_SESSION"
	EventTokenRefreshed AuthEventType = "TOKEN_REFRESHED"
	EventUserUpdated    AuthEventType = "USER_UPDATED"
)

// AuthEvent is a change reported by the identity layer. UserID is empty when
// the event carries no session.
type AuthEvent struct {
	Type   AuthEventType
	UserID string
}

type AuthState struct {
	Status AuthStatus `json:"status"`
	UserID string     `json:"user_id,omitempty"`
}

func (s AuthState) Authenticated() bool {
	return s.Status == AuthAuthenticated && s.UserID != ""
}

type Effect string

const (
	EffectLoadProfile Effect = "load_profile"
	EffectLoadToday   Effect = "load_today"
	EffectLoadHistory Effect = "load_history"
	EffectClearState  Effect = "clear_state"
)

var signInEffects = []Effect{EffectLoadProfile, EffectLoadToday, EffectLoadHistory}

// ReduceAuth is the session state machine. It returns the next state and the
// side effects the caller must run after the transition, in order. Events that
// do not apply leave the state untouched and produce no effects.
func ReduceAuth(state AuthState, event AuthEvent) (AuthState, []Effect) {
	switch event.Type {
	case EventSignedIn:
		if event.UserID == "" {
			return state, nil
		}
		return AuthState{Status: AuthAuthenticated, UserID: event.UserID}, append([]Effect(nil), signInEffects...)

	case EventInitialSession:
		if event.UserID == "" {
			return AuthState{Status: AuthUnauthenticated}, []Effect{EffectClearState}
		}
		return AuthState{Status: AuthAuthenticated, UserID: event.UserID}, append([]Effect(nil), signInEffects...)

	case EventSignedOut:
		return AuthState{Status: AuthUnauthenticated}, []Effect{EffectClearState}

	case EventTokenRefreshed:
		if event.UserID == "" || !state.Authenticated() {
			return state, nil
		}
		state.UserID = event.UserID
		return state, nil

	case EventUserUpdated:
		if event.UserID == "" || !state.Authenticated() {
			return state, nil
		}
		state.UserID = event.UserID
		return state, []Effect{EffectLoadProfile}
	}

	return state, nil
}
