package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"basic", "San Mateo", "san-mateo"},
		{"whitespace runs", "  I-80   at  Donner  Summit ", "i-80-at-donner-summit"},
		{"punctuation stripped", "US-101 (N/O Broadway)", "us-101-no-broadway"},
		{"arrow joined names", "Oakland → Berkeley", "oakland-berkeley"},
		{"repeated hyphens collapse", "a -- b", "a-b"},
		{"empty", "", ""},
		{"only punctuation", "†‡•", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"San Luis Obispo",
		"I-80 at Gilman St.",
		"Oakland → Berkeley",
		"  mixed   CASE  & symbols!  ",
		"",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "slug of %q not idempotent", in)
	}
}

func TestItemSlug(t *testing.T) {
	t.Run("camera with name", func(t *testing.T) {
		it := cameraItem(PointLocation{LocationName: ReportedValue("I-80 at Gilman St")})
		assert.Equal(t, "i-80-at-gilman-st-cctv", ItemSlug(it))
	})

	t.Run("nameless item falls back to unknown", func(t *testing.T) {
		it := cameraItem(PointLocation{})
		assert.Equal(t, "unknown-cctv", ItemSlug(it))
	})

	t.Run("type display name is used", func(t *testing.T) {
		it := Item{Type: TypeChainControl, CC: &ChainControlPayload{
			Index:    "1",
			Location: PointLocation{LocationName: ReportedValue("SR-89 Summit")},
		}}
		assert.Equal(t, "sr-89-summit-chain-controls", ItemSlug(it))
	})

	t.Run("nameless line feature", func(t *testing.T) {
		it := Item{Type: TypeTravelTime, TT: &TravelTimePayload{Index: "1"}}
		assert.Equal(t, "unknown-travel-times", ItemSlug(it))
	})

	t.Run("unregistered type uses its code", func(t *testing.T) {
		assert.Equal(t, "unknown-xyz", ItemSlug(Item{Type: DataType("xyz")}))
	})
}

func TestItemID(t *testing.T) {
	t.Run("basic composition", func(t *testing.T) {
		it := Item{Type: TypeCamera, CCTV: &CameraPayload{Index: "123"}}
		id, ok := ItemID(it, 4)
		require.True(t, ok)
		assert.Equal(t, "cctv-d04-i123", id)
	})

	t.Run("index sanitization", func(t *testing.T) {
		it := Item{Type: TypeLaneClosure, LCS: &LaneClosurePayload{Index: "C 123/45.6"}}
		id, ok := ItemID(it, 11)
		require.True(t, ok)
		assert.Equal(t, "lcs-d11-iC-12345.6", id)
	})

	t.Run("multi-image suffix preserved", func(t *testing.T) {
		it := Item{Type: TypeCamera, CCTV: &CameraPayload{Index: "402-2"}}
		id, ok := ItemID(it, 4)
		require.True(t, ok)
		assert.Equal(t, "cctv-d04-i402-2", id)
	})

	t.Run("missing index yields no id", func(t *testing.T) {
		it := Item{Type: TypeCamera, CCTV: &CameraPayload{}}
		_, ok := ItemID(it, 4)
		assert.False(t, ok)
	})

	t.Run("stable across pulls", func(t *testing.T) {
		it := Item{Type: TypeWeatherStation, RWIS: &WeatherStationPayload{Index: "ST-9"}}
		id1, ok1 := ItemID(it, 9)
		id2, ok2 := ItemID(it, 9)
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, id1, id2)
	})
}
