package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPlaylistNotFound     = errors.New("playlist not found")
	ErrExerciseNotFound     = errors.New("exercise not found in playlist")
	ErrInvalidCatalog       = errors.New("invalid playlist catalog")
	ErrDuplicatePlaylistID  = errors.New("duplicate playlist id")
	ErrDuplicateExerciseID  = errors.New("duplicate exercise id")
	ErrPlaylistWithoutSteps = errors.New("playlist has no exercises")
)

const (
	BeginnerPlaylistID = "beginner-0-3"
	AdvancedPlaylistID = "advanced-4-6"
)

type Exercise struct {
	ID        string   `json:"id" toml:"id"`
	Title     string   `json:"title" toml:"title"`
	Sets      int      `json:"sets" toml:"sets"`
	Reps      int      `json:"reps" toml:"reps"`
	Seconds   int      `json:"seconds" toml:"seconds"`
	Equipment []string `json:"equipment,omitempty" toml:"equipment"`
	Thumbnail string   `json:"thumbnail,omitempty" toml:"thumbnail"`
	Order     int      `json:"order" toml:"order"`
}

type Playlist struct {
	ID          string     `json:"id" toml:"id"`
	Title       string     `json:"title" toml:"title"`
	Description string     `json:"description,omitempty" toml:"description"`
	Thumbnail   string     `json:"thumbnail,omitempty" toml:"thumbnail"`
	Exercises   []Exercise `json:"exercises" toml:"exercises"`
}

func (p Playlist) TotalExercises() int {
	return len(p.Exercises)
}

func (p Playlist) Exercise(id string) (Exercise, bool) {
	for _, e := range p.Exercises {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}

// Catalog is the read-only set of playlists a user can train with.
type Catalog struct {
	playlists []Playlist
	byID      map[string]int
}

func NewCatalog(playlists []Playlist) (*Catalog, error) {
	if len(playlists) == 0 {
		return nil, fmt.Errorf("%w: no playlists", ErrInvalidCatalog)
	}

	c := &Catalog{
		playlists: make([]Playlist, 0, len(playlists)),
		byID:      make(map[string]int, len(playlists)),
	}

	for _, p := range playlists {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("%w: playlist without id", ErrInvalidCatalog)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlaylistID, p.ID)
		}
		if len(p.Exercises) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrPlaylistWithoutSteps, p.ID)
		}

		seen := make(map[string]bool, len(p.Exercises))
		exercises := make([]Exercise, len(p.Exercises))
		for i, e := range p.Exercises {
			if e.ID == "" {
				return nil, fmt.Errorf("%w: exercise without id in %s", ErrInvalidCatalog, p.ID)
			}
			if seen[e.ID] {
				return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateExerciseID, e.ID, p.ID)
			}
			if e.Sets < 1 {
				return nil, fmt.Errorf("%w: exercise %s in %s needs at least one set", ErrInvalidCatalog, e.ID, p.ID)
			}
			seen[e.ID] = true
			e.Equipment = append([]string(nil), e.Equipment...)
			exercises[i] = e
		}
		p.Exercises = exercises

		c.byID[p.ID] = len(c.playlists)
		c.playlists = append(c.playlists, p)
	}

	return c, nil
}

// Playlists returns the playlists in catalog order. The slice is a copy.
func (c *Catalog) Playlists() []Playlist {
	out := make([]Playlist, len(c.playlists))
	copy(out, c.playlists)
	return out
}

func (c *Catalog) Find(id string) (Playlist, error) {
	i, ok := c.byID[id]
	if !ok {
		return Playlist{}, ErrPlaylistNotFound
	}
	return c.playlists[i], nil
}

func DefaultPlaylists() []Playlist {
	return []Playlist{
		{
			ID:          BeginnerPlaylistID,
			Title:       "Beginner Weeks 0-3",
			Description: "Workout playlist for Week 0 to 3",
			Thumbnail:   youtubeThumbnail("hq60J8wfNZY"),
			Exercises: []Exercise{
				{
					ID: "hq60J8wfNZY", Title: "Reverse Lunge", Sets: 3, Reps: 8, Order: 1,
					Equipment: []string{"Chair (Easier)", "No Chair (More Challenging)"},
					Thumbnail: youtubeThumbnail("hq60J8wfNZY"),
				},
				{
					ID: "bcEDTtncUD0", Title: "Squat", Sets: 3, Reps: 8, Order: 2,
					Equipment: []string{"Chair (Easier)", "No Chair (More Challenging)", "Weight (Challenging)"},
					Thumbnail: youtubeThumbnail("bcEDTtncUD0"),
				},
			},
		},
		{
			ID:          AdvancedPlaylistID,
			Title:       "Advanced Weeks 4-6",
			Description: "Workout playlist for Week 4 to 6",
			Thumbnail:   youtubeThumbnail("6a3qaXho5Q4"),
			Exercises: []Exercise{
				{
					ID: "6a3qaXho5Q4", Title: "Single Leg Deadlift", Sets: 3, Reps: 8, Order: 1,
					Equipment: []string{"Chair (Easier)", "No Chair (More Challenging)"},
					Thumbnail: youtubeThumbnail("6a3qaXho5Q4"),
				},
				{
					ID: "2bRnmaLAS7o", Title: "Hip Hinge", Sets: 3, Reps: 8, Order: 2,
					Equipment: []string{"Dowel (Easier)", "Weights (More Challenging)"},
					Thumbnail: youtubeThumbnail("2bRnmaLAS7o"),
				},
				{
					ID: "gqzZ0ExlyMc", Title: "Band External Rotation", Sets: 3, Reps: 8, Order: 3,
					Equipment: []string{"Resistance Band"},
					Thumbnail: youtubeThumbnail("gqzZ0ExlyMc"),
				},
			},
		},
	}
}

func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultPlaylists())
	if err != nil {
		panic(err)
	}
	return c
}

func youtubeThumbnail(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
}
