package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Load(ctx, "attendees")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "attendees", []byte(`[{"id":"1"}]`)))
	data, err := s.Load(ctx, "attendees")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(data))

	// Overwrite wins wholesale.
	require.NoError(t, s.Save(ctx, "attendees", []byte(`[]`)))
	data, err = s.Load(ctx, "attendees")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestMemory_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Save(ctx, "k", []byte("abc")))

	data, err := s.Load(ctx, "k")
	require.NoError(t, err)
	data[0] = 'x'

	again, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)

	_, err = s.Load(ctx, "schedule")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "schedule", []byte(`[{"time":"9:00 AM"}]`)))
	data, err := s.Load(ctx, "schedule")
	require.NoError(t, err)
	assert.Equal(t, `[{"time":"9:00 AM"}]`, string(data))

	// Snapshot lands in a plain json file.
	_, err = os.Stat(filepath.Join(dir, "schedule.json"))
	assert.NoError(t, err)
}

func TestFile_KeyWithSeparator(t *testing.T) {
	ctx := context.Background()
	s, err := NewFile(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "a/b", []byte("1")))
	data, err := s.Load(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))
}

func TestNewFile_EmptyDir(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}
