package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

// Loader fetches the data a signed-in session needs.
type Loader interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	GetDay(ctx context.Context, userID string, date domain.DateKey) (*domain.DaySession, error)
	History(ctx context.Context, userID string) (domain.CompletionHistory, error)
}

// AppState is everything a client session holds between events.
type AppState struct {
	Auth    domain.AuthState         `json:"auth"`
	Profile *domain.User             `json:"profile"`
	Today   *domain.DaySession       `json:"today"`
	History domain.CompletionHistory `json:"history"`
}

// Controller owns one session's AppState. Auth events go through
// domain.ReduceAuth and the resulting effects run after the transition.
type Controller struct {
	loader Loader
	now    func() time.Time

	mu    sync.Mutex
	state AppState
}

func NewController(loader Loader, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{
		loader: loader,
		now:    now,
		state:  AppState{Auth: domain.AuthState{Status: domain.AuthUnauthenticated}},
	}
}

func (c *Controller) State() AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies the event and runs its effects. A failing effect does not
// stop the others; their errors are combined and the state keeps whatever
// loaded successfully.
func (c *Controller) Dispatch(ctx context.Context, event domain.AuthEvent) (AppState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, effects := domain.ReduceAuth(c.state.Auth, event)
	if next.UserID != c.state.Auth.UserID {
		// data loaded for another user must not survive a failed reload
		c.state = AppState{Auth: next}
	} else {
		c.state.Auth = next
	}

	var errs error
	for _, effect := range effects {
		errs = multierr.Append(errs, c.run(ctx, effect))
	}

	return c.state, errs
}

func (c *Controller) run(ctx context.Context, effect domain.Effect) error {
	userID := c.state.Auth.UserID

	switch effect {
	case domain.EffectLoadProfile:
		user, err := c.loader.Profile(ctx, userID)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		c.state.Profile = user

	case domain.EffectLoadToday:
		today, err := c.loader.GetDay(ctx, userID, domain.NewDateKey(c.now()))
		if err != nil {
			return fmt.Errorf("load today session: %w", err)
		}
		c.state.Today = today

	case domain.EffectLoadHistory:
		history, err := c.loader.History(ctx, userID)
		if err != nil {
			return fmt.Errorf("load completion history: %w", err)
		}
		c.state.History = history

	case domain.EffectClearState:
		c.state = AppState{Auth: c.state.Auth}
	}

	return nil
}
