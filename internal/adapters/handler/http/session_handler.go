package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

type SessionHandler struct {
	svc     *services.SessionService
	clock   Clock
	metrics *metrics.Manager
}

func NewSessionHandler(svc *services.SessionService, clock Clock, m *metrics.Manager) *SessionHandler {
	return &SessionHandler{
		svc:     svc,
		clock:   clock,
		metrics: m,
	}
}

type saveProgressRequest struct {
	Progress domain.DayProgress `json:"progress" binding:"required"`
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	{
		sessions.GET("/today", h.Today)
		sessions.GET("/history", h.History)
		sessions.GET("/:date", h.GetDay)
		sessions.PUT("/:date", h.Save)
	}
}

// Today godoc
// @Summary  Session for the current day, or an empty one
// @Tags     sessions
// @Produce  json
// @Security BearerAuth
// @Param    date query string false "Client calendar day (YYYY-MM-DD)"
// @Success  200 {object} domain.DaySession
// @Router   /sessions/today [get]
func (h *SessionHandler) Today(c *gin.Context) {
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

	h.respondDay(c, userID, domain.NewDateKey(today))
}

// GetDay godoc
// @Summary  Session recorded for one date
// @Tags     sessions
// @Produce  json
// @Security BearerAuth
// @Param    date path string true "YYYY-MM-DD"
// @Success  200 {object} domain.DaySession
// @Router   /sessions/{date} [get]
func (h *SessionHandler) GetDay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	date, err := domain.ParseDateKey(c.Param("date"))
	if err != nil {
		handleError(c, err)
		return
	}

	h.respondDay(c, userID, date)
}

func (h *SessionHandler) respondDay(c *gin.Context, userID string, date domain.DateKey) {
	session, err := h.svc.GetDay(c.Request.Context(), userID, date)
	if err != nil {
		handleError(c, err)
		return
	}

	if session == nil {
		c.JSON(http.StatusOK, gin.H{
			"user_id":      userID,
			"session_date": date,
			"progress":     domain.DayProgress{},
		})
		return
	}

	c.JSON(http.StatusOK, session)
}

// Save godoc
// @Summary  Record exercise progress for a date
// @Description Exercises in the body replace their stored progress; others are kept.
// @Tags     sessions
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    date path string true "YYYY-MM-DD"
// @Param    body body saveProgressRequest true "Progress keyed by playlist then exercise"
// @Success  200 {object} domain.DaySession
// @Failure  400 {object} errorResponse
// @Failure  404 {object} errorResponse
// @Router   /sessions/{date} [put]
func (h *SessionHandler) Save(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	date, err := domain.ParseDateKey(c.Param("date"))
	if err != nil {
		handleError(c, err)
		return
	}

	var req saveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	session, err := h.svc.SaveProgress(c.Request.Context(), services.SaveProgressInput{
		UserID:   userID,
		Date:     date,
		Progress: req.Progress,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.CounterSessionsSaved.Inc()
	}

	c.JSON(http.StatusOK, session)
}

// History godoc
// @Summary  Every recorded day keyed by date
// @Tags     sessions
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} map[string]domain.DayProgress
// @Router   /sessions/history [get]
func (h *SessionHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	history, err := h.svc.History(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
