package services

import (
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

type CatalogService struct {
	catalog *domain.Catalog
}

func NewCatalogService(catalog *domain.Catalog) *CatalogService {
	return &CatalogService{
		catalog: catalog,
	}
}

func (s *CatalogService) ListPlaylists() []domain.Playlist {
	return s.catalog.Playlists()
}

func (s *CatalogService) GetPlaylist(id string) (domain.Playlist, error) {
	return s.catalog.Find(id)
}
