package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type CatalogHandler struct {
	catalog  *services.CatalogService
	progress *services.ProgressService
}

func NewCatalogHandler(catalog *services.CatalogService, progress *services.ProgressService) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		progress: progress,
	}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	playlists := router.Group("/playlists")
	{
		playlists.GET("", h.List)
		playlists.GET("/:id", h.Get)
		playlists.GET("/:id/progress", h.Progress)
	}
}

// List godoc
// @Summary  Available playlists
// @Tags     playlists
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} domain.Playlist
// @Router   /playlists [get]
func (h *CatalogHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.ListPlaylists())
}

// Get godoc
// @Summary  One playlist with its exercises
// @Tags     playlists
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Playlist id"
// @Success  200 {object} domain.Playlist
// @Failure  404 {object} errorResponse
// @Router   /playlists/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	p, err := h.catalog.GetPlaylist(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Progress godoc
// @Summary  Completion figures for a playlist
// @Tags     playlists
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Playlist id"
// @Success  200 {object} domain.PlaylistCard
// @Failure  404 {object} errorResponse
// @Router   /playlists/{id}/progress [get]
func (h *CatalogHandler) Progress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "user context missing"})
		return
	}

	card, err := h.progress.PlaylistProgress(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}
