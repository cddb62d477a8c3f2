package catalog

// Artist is a credited performer
type Artist struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
}

// Image is one artwork rendition. Catalogs list them largest first.
type Image struct {
	URL    string `json:"url" yaml:"url"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// Album groups the artwork of a track
type Album struct {
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Images []Image `json:"images" yaml:"images"`
}

// Track is a catalog entry
type Track struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Artists    []Artist `json:"artists" yaml:"artists"`
	Album      Album    `json:"album" yaml:"album"`
	PreviewURL string   `json:"preview_url,omitempty" yaml:"preview_url,omitempty"`
	URI        string   `json:"uri,omitempty" yaml:"uri,omitempty"`
}

// Artist returns the first credited artist, or "Unknown Artist"
func (t *Track) Artist() string {
	if t == nil || len(t.Artists) == 0 {
		return "Unknown Artist"
	}
	return t.Artists[0].Name
}

// Thumbnail returns the URL of the last artwork entry
func (t *Track) Thumbnail() string {
	if t == nil || len(t.Album.Images) == 0 {
		return ""
	}
	return t.Album.Images[len(t.Album.Images)-1].URL
}

// Cover returns the URL of the first artwork entry
func (t *Track) Cover() string {
	if t == nil || len(t.Album.Images) == 0 {
		return ""
	}
	return t.Album.Images[0].URL
}

// Playable reports whether the track has a preview to play
func (t *Track) Playable() bool {
	return t != nil && t.PreviewURL != ""
}

// Same compares tracks by ID
func (t *Track) Same(o *Track) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.ID == o.ID
}

func (t *Track) String() string {
	if t == nil {
		return "<none>"
	}
	return t.Artist() + " - " + t.Name
}
