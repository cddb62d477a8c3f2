package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCatalog = errors.New("catalog has no tracks")
	ErrMissingID    = errors.New("track without id")
)

// Catalog is the read-only list of tracks available to a session
type Catalog struct {
	Tracks []*Track `json:"tracks" yaml:"tracks"`
}

// New builds a catalog from tracks, rejecting empty lists and tracks without IDs
func New(tracks []*Track) (*Catalog, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i, t := range tracks {
		if t == nil || t.ID == "" {
			return nil, fmt.Errorf("track %d: %w", i, ErrMissingID)
		}
	}
	return &Catalog{Tracks: tracks}, nil
}

// Load reads a catalog from a .json, .yaml or .yml file. Both a bare list of
// tracks and an object with a "tracks" key are accepted.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parse(data, yaml.Unmarshal)
	default:
		return parse(data, json.Unmarshal)
	}
}

func parse(data []byte, unmarshal func([]byte, any) error) (*Catalog, error) {
	var wrapped Catalog
	if err := unmarshal(data, &wrapped); err == nil && len(wrapped.Tracks) > 0 {
		return New(wrapped.Tracks)
	}

	var tracks []*Track
	if err := unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(tracks)
}

// Len returns the number of tracks
func (c *Catalog) Len() int {
	return len(c.Tracks)
}

// First returns the first track
func (c *Catalog) First() *Track {
	if len(c.Tracks) == 0 {
		return nil
	}
	return c.Tracks[0]
}

// Draw picks a track uniformly at random. When the pick equals avoid and the
// catalog holds more than one track, the following catalog entry is taken
// instead, so the result always differs from avoid.
func (c *Catalog) Draw(r *rand.Rand, avoid *Track) *Track {
	if len(c.Tracks) == 0 {
		return nil
	}
	idx := r.Intn(len(c.Tracks))
	if avoid != nil && c.Tracks[idx].Same(avoid) && len(c.Tracks) > 1 {
		idx = (idx + 1) % len(c.Tracks)
	}
	return c.Tracks[idx]
}

// URLs returns every artwork and preview URL, for cache warm-up
func (c *Catalog) URLs() []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	for _, t := range c.Tracks {
		add(t.Thumbnail())
		add(t.Cover())
		add(t.PreviewURL)
	}
	return urls
}
