package ids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewShape(t *testing.T) {
	id := New()
	assert.Len(t, id, 24)
	assert.True(t, IsHex(id))
	assert.False(t, IsLocal(id))

	assert.NotEqual(t, New(), New())
}

func TestNewLocalShape(t *testing.T) {
	id := NewLocal()
	assert.True(t, strings.HasPrefix(id, LocalPrefix))
	assert.True(t, IsLocal(id))
	assert.False(t, IsHex(id))
}

func TestEqualTolerance(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same string", "65a000000000000000000001", "65a000000000000000000001", true},
		{"hex casing", "65a000000000000000000001", "65A000000000000000000001", true},
		{"number vs string", 42, "42", true},
		{"whitespace", " abc ", "abc", true},
		{"different", "abc", "abd", false},
		{"both empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestIsHex(t *testing.T) {
	assert.True(t, IsHex("65a000000000000000000001"))
	assert.False(t, IsHex("65a0000000000000000001"))   // too short
	assert.False(t, IsHex("zza000000000000000000001")) // not hex
	assert.False(t, IsHex(NewLocal()))
}
