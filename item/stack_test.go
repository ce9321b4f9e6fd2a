package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rj-helpers/nbtpatch/nbt"
)

func TestStackAttachment(t *testing.T) {
	s := NewStack("minecraft:stick", 1)
	assert.Nil(t, s.Nbt())

	c := s.GetOrCreateNbt()
	require.NotNil(t, c)
	assert.Same(t, c, s.Nbt())
	assert.Same(t, c, s.GetOrCreateNbt())

	s.SetNbt(nil)
	assert.Nil(t, s.Nbt())
}

func TestStackCopy(t *testing.T) {
	s := NewStack("minecraft:stick", 3)
	s.GetOrCreateNbt().PutInt("Damage", 1)

	cp := s.Copy()
	s.Nbt().PutInt("Damage", 2)

	v, _ := cp.Nbt().Get("Damage")
	assert.Equal(t, nbt.Int(1), v)
	assert.Equal(t, "3 minecraft:stick{Damage:1}", cp.String())
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		doc     map[string]any
		wantErr error
		check   func(t *testing.T, s *Stack)
	}{
		{
			name: "full document",
			doc: map[string]any{
				"id":    "minecraft:diamond_sword",
				"Count": int64(2),
				"tag":   map[string]any{"Damage": int64(5)},
			},
			check: func(t *testing.T, s *Stack) {
				assert.Equal(t, "minecraft:diamond_sword", s.ID)
				assert.Equal(t, 2, s.Count)
				require.NotNil(t, s.Nbt())
				assert.True(t, s.Nbt().ContainsKind("Damage", nbt.KindInt))
			},
		},
		{
			name: "defaults",
			doc:  map[string]any{"id": "minecraft:stick"},
			check: func(t *testing.T, s *Stack) {
				assert.Equal(t, 1, s.Count)
				assert.Nil(t, s.Nbt())
			},
		},
		{name: "missing id", doc: map[string]any{}, wantErr: ErrMissingID},
		{name: "non-string id", doc: map[string]any{"id": 3}, wantErr: ErrBadField},
		{name: "string count", doc: map[string]any{"id": "a", "Count": "x"}, wantErr: ErrBadField},
		{name: "scalar tag", doc: map[string]any{"id": "a", "tag": 1}, wantErr: ErrBadField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode(tt.doc)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	doc := map[string]any{
		"id":    "minecraft:diamond_sword",
		"Count": int64(1),
		"tag": map[string]any{
			"display": map[string]any{"Name": "Sword"},
		},
	}
	s, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, doc, s.Encode())
}
