package codec

import (
	"math"
	"testing"
	"time"

	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cbodonnell/savestate/pkg/kinematic"
	"github.com/cbodonnell/savestate/pkg/slot"
	"github.com/cbodonnell/savestate/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() slot.Document {
	player := ident.FromName("player")
	chest := ident.FromName("chest-03")

	return slot.Document{
		ID:         3,
		PrettyName: "Before the bridge",
		SavedAt:    time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		Version:    2,
		Variables: []slot.SavedVariable{
			slot.NewSavedVariable(player, "health", variant.Wrap("health", variant.New(100))),
			slot.NewSavedVariable(player, "position", variant.Wrap("position", variant.New(kinematic.Vector{X: 12.5, Y: -4}))),
			slot.NewSavedVariable(player, "inventory", variant.Wrap("inventory", variant.New([]string{"sword", "rope"}))),
			slot.NewSavedVariable(player, "seed", variant.Wrap("seed", variant.New([]byte{0xde, 0xad}))),
			slot.NewSavedVariable(chest, "opened", variant.Wrap("opened", variant.New(true))),
			slot.NewSavedVariable(chest, "opened_by", variant.Wrap("opened_by", variant.New(player))),
			slot.NewSavedVariable(chest, "weight", variant.Wrap("weight", variant.New(0.75))),
			slot.NewSavedVariable(chest, "label", variant.Wrap("label", variant.New("Old chest"))),
			// duplicates must survive decoding
			slot.NewSavedVariable(player, "health", variant.Wrap("health", variant.New(1))),
		},
	}
}

func assertDocumentsEqual(t *testing.T, want, got slot.Document) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.PrettyName, got.PrettyName)
	assert.True(t, want.SavedAt.Equal(got.SavedAt), "savedAt %v != %v", want.SavedAt, got.SavedAt)
	assert.Equal(t, want.Version, got.Version)
	require.Len(t, got.Variables, len(want.Variables))
	for i := range want.Variables {
		assert.True(t, want.Variables[i].Equal(got.Variables[i]), "variable %d: want %+v got %+v", i, want.Variables[i], got.Variables[i])
	}
}

func TestCodecs_roundTrip(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML, FormatFlatbuffers} {
		t.Run(format, func(t *testing.T) {
			c, err := ForFormat(format)
			require.NoError(t, err)
			assert.Equal(t, format, c.Format())

			doc := testDocument()
			b, err := c.Encode(doc)
			require.NoError(t, err)

			got, err := c.Decode(b)
			require.NoError(t, err)
			assertDocumentsEqual(t, doc, got)
		})
	}
}

func TestCodecs_emptySlot(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML, FormatFlatbuffers} {
		t.Run(format, func(t *testing.T) {
			c, err := ForFormat(format)
			require.NoError(t, err)

			b, err := c.Encode(slot.New(0, 1).Document())
			require.NoError(t, err)

			got, err := c.Decode(b)
			require.NoError(t, err)
			assert.Equal(t, 1, got.Version)
			assert.True(t, got.SavedAt.IsZero())
			assert.Empty(t, got.Variables)
		})
	}
}

func TestCodecs_decodeGarbage(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML, FormatFlatbuffers} {
		t.Run(format, func(t *testing.T) {
			c, err := ForFormat(format)
			require.NoError(t, err)

			_, err = c.Decode([]byte("\x00\x01not a slot: ["))
			assert.Error(t, err)
		})
	}
}

func TestFlatbuffers_truncated(t *testing.T) {
	b, err := SerializeGameSlotFlatbuffer(testDocument())
	require.NoError(t, err)

	_, err = DeserializeGameSlotFlatbuffer(b[:len(b)/3])
	assert.Error(t, err)

	_, err = DeserializeGameSlotFlatbuffer([]byte{1})
	assert.Error(t, err)
}

func TestForFormat_unknown(t *testing.T) {
	_, err := ForFormat("xml")
	assert.Error(t, err)
}

func TestCodecs_rebuildAfterDecode(t *testing.T) {
	c := NewJSONCodec()
	b, err := c.Encode(testDocument())
	require.NoError(t, err)

	doc, err := c.Decode(b)
	require.NoError(t, err)

	s := slot.New(doc.ID, doc.Version)
	duplicates := s.RebuildFromSerialization(doc.Variables)
	require.Len(t, duplicates, 1)

	v, ok := s.Get(slot.NewSaveKey(ident.FromName("player"), "health"))
	require.True(t, ok)
	health, err := variant.Value[int](v.Container)
	require.NoError(t, err)
	assert.Equal(t, 100, health)
}

func TestCodecs_nonFiniteFloats(t *testing.T) {
	owner := ident.FromName("ship")
	doc := slot.Document{
		ID:      1,
		Version: 1,
		Variables: []slot.SavedVariable{
			slot.NewSavedVariable(owner, "drift", variant.Wrap("drift", variant.New(math.NaN()))),
			slot.NewSavedVariable(owner, "range", variant.Wrap("range", variant.New(math.Inf(1)))),
			slot.NewSavedVariable(owner, "floor", variant.Wrap("floor", variant.New(math.Inf(-1)))),
		},
	}

	for _, format := range []string{FormatJSON, FormatYAML, FormatFlatbuffers} {
		t.Run(format, func(t *testing.T) {
			c, err := ForFormat(format)
			require.NoError(t, err)

			b, err := c.Encode(doc)
			require.NoError(t, err)
			got, err := c.Decode(b)
			require.NoError(t, err)
			require.Len(t, got.Variables, 3)

			drift, err := variant.Value[float64](got.Variables[0].Container)
			require.NoError(t, err)
			assert.True(t, math.IsNaN(drift))

			rng, err := variant.Value[float64](got.Variables[1].Container)
			require.NoError(t, err)
			assert.True(t, math.IsInf(rng, 1))

			floor, err := variant.Value[float64](got.Variables[2].Container)
			require.NoError(t, err)
			assert.True(t, math.IsInf(floor, -1))
		})
	}
}
