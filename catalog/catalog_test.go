package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func track(id string) *Track {
	return &Track{
		ID:      id,
		Name:    "Song " + id,
		Artists: []Artist{{Name: "Artist " + id}},
		Album: Album{Images: []Image{
			{URL: "https://img/" + id + "/640", Width: 640},
			{URL: "https://img/" + id + "/64", Width: 64},
		}},
		PreviewURL: "https://audio/" + id + ".mp3",
		URI:        "spotify:track:" + id,
	}
}

func TestTrackAccessors(t *testing.T) {
	tr := track("a")
	assert.Equal(t, "Artist a", tr.Artist())
	assert.Equal(t, "https://img/a/64", tr.Thumbnail())
	assert.Equal(t, "https://img/a/640", tr.Cover())
	assert.True(t, tr.Playable())

	var none *Track
	assert.Equal(t, "Unknown Artist", none.Artist())
	assert.Empty(t, none.Thumbnail())
	assert.False(t, none.Playable())
	assert.True(t, none.Same(nil))
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `[
  {"id": "1", "name": "One", "artists": [{"name": "A"}], "album": {"images": [{"url": "u1"}]}, "preview_url": "p1", "uri": "spotify:track:1"},
  {"id": "2", "name": "Two", "artists": [{"name": "B"}], "album": {"images": []}}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, "p1", cat.First().PreviewURL)
	assert.False(t, cat.Tracks[1].Playable())
}

func TestLoadYAMLWrapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
tracks:
  - id: "x"
    name: Ex
    artists:
      - name: Someone
    album:
      images:
        - url: https://img/x
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Someone", cat.First().Artist())
}

func TestLoadRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = New([]*Track{{Name: "no id"}})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestDrawAvoidsImmediateRepeat(t *testing.T) {
	cat, err := New([]*Track{track("a"), track("b")})
	require.NoError(t, err)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		got := cat.Draw(r, cat.Tracks[0])
		assert.Equal(t, "b", got.ID)
	}
}

func TestDrawSingleTrackRepeats(t *testing.T) {
	cat, err := New([]*Track{track("only")})
	require.NoError(t, err)

	got := cat.Draw(rand.New(rand.NewSource(1)), cat.First())
	assert.Equal(t, "only", got.ID)
}

func TestURLsDeduplicated(t *testing.T) {
	a := track("a")
	b := track("b")
	b.Album.Images = a.Album.Images
	cat, err := New([]*Track{a, b})
	require.NoError(t, err)

	assert.Len(t, cat.URLs(), 4)
}
