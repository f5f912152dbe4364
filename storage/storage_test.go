package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateName(t *testing.T) {
	name := GenerateName("a.png")

	assert.True(t, strings.HasSuffix(name, "_a.png"), "generated name should end in the original filename")
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "\\")

	// Two uploads of the same file must never collide.
	assert.NotEqual(t, name, GenerateName("a.png"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.png", "a.png"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\boot.ini", "boot.ini"},
		{"photo of cat.jpeg", "photo_of_cat.jpeg"},
		{"weird$chars%.gif", "weird_chars_.gif"},
		{"...", "file"},
		{"", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SanitizeFilename(tt.in)
			require.Equal(t, tt.want, got)
			assert.NotContains(t, got, "/")
		})
	}
}
