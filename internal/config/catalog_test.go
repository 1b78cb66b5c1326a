package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

const sampleCatalog = `
[[playlists]]
id = "mobility"
title = "Mobility"

  [[playlists.exercises]]
  id = "vid-1"
  title = "Hip Opener"
  sets = 2
  reps = 10
  order = 1

  [[playlists.exercises]]
  id = "vid-2"
  title = "Thoracic Rotation"
  sets = 3
  seconds = 30
  equipment = ["mat"]
  order = 2
`

func TestLoadCatalog_FromFile(t *testing.T) {
	path := writeFile(t, "catalog.toml", sampleCatalog)

	c, err := LoadCatalog(path)
	require.NoError(t, err)

	p, err := c.Find("mobility")
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalExercises())

	ex, ok := p.Exercise("vid-2")
	require.True(t, ok)
	assert.Equal(t, 30, ex.Seconds)
	assert.Equal(t, []string{"mat"}, ex.Equipment)
}

func TestLoadCatalog_Default(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)

	_, err = c.Find(domain.BeginnerPlaylistID)
	assert.NoError(t, err)
}

func TestLoadCatalog_Invalid(t *testing.T) {
	path := writeFile(t, "catalog.toml", "[[playlists]]\nid = \"empty\"\n")

	_, err := LoadCatalog(path)
	assert.ErrorIs(t, err, domain.ErrPlaylistWithoutSteps)
}
