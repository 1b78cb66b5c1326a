package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

type catalogFile struct {
	Playlists []domain.Playlist `toml:"playlists"`
}

// LoadCatalog reads playlists from a TOML file. Without a path the built-in
// catalog is used.
func LoadCatalog(path string) (*domain.Catalog, error) {
	if path == "" {
		return domain.DefaultCatalog(), nil
	}

	var f catalogFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	return domain.NewCatalog(f.Playlists)
}
