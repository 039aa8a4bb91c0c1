package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMeta struct {
	Format    string `json:"format"`
	Documents int    `json:"documents"`
	Terms     int    `json:"terms"`
	SavedAt   string `json:"saved_at"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
	_, ok = ByName("")
	assert.False(t, ok)
}

func TestCodec_RoundTrip(t *testing.T) {
	meta := testMeta{
		Format:    "positional-inverted-index",
		Documents: 3,
		Terms:     6,
		SavedAt:   "2026-08-25T10:00:00Z",
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(meta)
			require.NoError(t, err)

			var got testMeta
			require.NoError(t, c.Unmarshal(data, &got))
			assert.Equal(t, meta, got)
		})
	}
}

func TestCodec_CrossDecode(t *testing.T) {
	// Both codecs speak JSON, so files written by one must open with the
	// other even though the header normally pins the writer's codec.
	meta := testMeta{Format: "positional-inverted-index", Documents: 1, Terms: 2}

	data := MustMarshal(GoJSON{}, meta)

	var got testMeta
	require.NoError(t, JSON{}.Unmarshal(data, &got))
	assert.Equal(t, meta, got)
}

func TestDefault(t *testing.T) {
	require.NotNil(t, Default)

	c, ok := ByName(Default.Name())
	require.True(t, ok)
	assert.Equal(t, Default.Name(), c.Name())
}
