package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://event.example.com/?join=true", JoinURL("https://event.example.com"))
	assert.Equal(t, "https://event.example.com/?join=true", JoinURL("https://event.example.com/"))
}

func TestJoinPNG(t *testing.T) {
	png, err := JoinPNG("https://event.example.com", 128)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, "\x89PNG", string(png[:4]))
}

func TestJoinPNG_EmptyURL(t *testing.T) {
	_, err := JoinPNG("", 128)
	assert.Error(t, err)
}

func TestJoinPNG_DefaultSize(t *testing.T) {
	png, err := JoinPNG("https://event.example.com", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
