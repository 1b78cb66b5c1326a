package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type ProgressHandler struct {
	svc   *services.ProgressService
	clock Clock
}

func NewProgressHandler(svc *services.ProgressService, clock Clock) *ProgressHandler {
	return &ProgressHandler{
		svc:   svc,
		clock: clock,
	}
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	p := router.Group("/progress")
	{
		p.GET("/dashboard", h.Dashboard)
		p.GET("/overview", h.Overview)
		p.GET("/calendar", h.Calendar)
		p.GET("/snapshot", h.Snapshot)
	}
}

// Dashboard godoc
// @Summary  Program week, streaks, suggested playlist and per-playlist cards
// @Tags     progress
// @Produce  json
// @Security BearerAuth
// @Param    date query string false "Client calendar day (YYYY-MM-DD)"
// @Success  200 {object} domain.Dashboard
// @Router   /progress/dashboard [get]
func (h *ProgressHandler) Dashboard(c *gin.Context) {
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

	d, err := h.svc.Dashboard(c.Request.Context(), userID, today)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Overview godoc
// @Summary  Totals, streaks and recent activity
// @Tags     progress
// @Produce  json
// @Security BearerAuth
// @Param    date query string false "Client calendar day (YYYY-MM-DD)"
// @Success  200 {object} domain.Overview
// @Router   /progress/overview [get]
func (h *ProgressHandler) Overview(c *gin.Context) {
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

	o, err := h.svc.Overview(c.Request.Context(), userID, today)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Calendar godoc
// @Summary  Workout dates within a month
// @Tags     progress
// @Produce  json
// @Security BearerAuth
// @Param    month query string false "YYYY-MM, defaults to the current month"
// @Success  200 {object} domain.MonthCalendar
// @Router   /progress/calendar [get]
func (h *ProgressHandler) Calendar(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	year, month, err := parseMonth(c.Query("month"), h.clock.Current())
	if err != nil {
		handleError(c, err)
		return
	}

	cal, err := h.svc.Calendar(c.Request.Context(), userID, year, month)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

// Snapshot godoc
// @Summary  Progress snapshot as of the client's day
// @Tags     progress
// @Produce  json
// @Security BearerAuth
// @Param    date query string false "Client calendar day (YYYY-MM-DD)"
// @Success  200 {object} domain.ProgressSnapshot
// @Router   /progress/snapshot [get]
func (h *ProgressHandler) Snapshot(c *gin.Context) {
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

	s, err := h.svc.Snapshot(c.Request.Context(), userID, today)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
