package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
	"github.com/comitanigiacomo/kanso-fit/internal/core/session"
)

type sessionLoader struct {
	auth     *services.AuthService
	sessions *services.SessionService
}

func (l sessionLoader) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return l.auth.Profile(ctx, userID)
}

func (l sessionLoader) GetDay(ctx context.Context, userID string, date domain.DateKey) (*domain.DaySession, error) {
	return l.sessions.GetDay(ctx, userID, date)
}

func (l sessionLoader) History(ctx context.Context, userID string) (domain.CompletionHistory, error) {
	return l.sessions.History(ctx, userID)
}

// BootstrapHandler replays the sign-in flow for the caller so a client can
// hydrate its profile, today's session and history in one round trip.
type BootstrapHandler struct {
	loader session.Loader
	clock  Clock
}

func NewBootstrapHandler(auth *services.AuthService, sessions *services.SessionService, clock Clock) *BootstrapHandler {
	return &BootstrapHandler{
		loader: sessionLoader{auth: auth, sessions: sessions},
		clock:  clock,
	}
}

type bootstrapResponse struct {
	session.AppState
	Errors []string `json:"errors,omitempty"`
}

func (h *BootstrapHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/me/bootstrap", h.Bootstrap)
}

// Bootstrap godoc
// @Summary  Initial client state for the signed-in user
// @Description Partial results are returned with the failed loads listed in errors.
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Param    date query string false "Client calendar day (YYYY-MM-DD)"
// @Success  200 {object} bootstrapResponse
// @Router   /me/bootstrap [get]
func (h *BootstrapHandler) Bootstrap(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	today, err := h.clock.today(c)
	if err != nil {
		handleError(c, err)
		return
	}

	ctrl := session.NewController(h.loader, func() time.Time { return today })
	state, err := ctrl.Dispatch(c.Request.Context(), domain.AuthEvent{
		Type:   domain.EventInitialSession,
		UserID: userID,
	})

	resp := bootstrapResponse{AppState: state}
	for _, e := range multierr.Errors(err) {
		_ = c.Error(e)
		resp.Errors = append(resp.Errors, e.Error())
	}

	c.JSON(http.StatusOK, resp)
}
