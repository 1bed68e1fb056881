package container

import (
	"context"
	"testing"

	"ibraflix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFileStorage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("R_HOST", "")
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("DATA_DIR", dir)

	c, err := New(context.Background())
	require.NoError(t, err)

	c.Watchlist.Insert(context.Background(), models.MediaItem{ID: 7, Title: "Seven"})
	c.Close()

	reopened, err := New(context.Background())
	require.NoError(t, err)
	defer reopened.Close()

	assert.True(t, reopened.Watchlist.Contains(7))
	assert.Same(t, reopened.Watchlist, reopened.MediaService.Watchlist())
}

func TestNewRejectsUnusableDrivers(t *testing.T) {
	t.Setenv("R_HOST", "")

	t.Setenv("STORAGE_DRIVER", "redis")
	_, err := New(context.Background())
	assert.ErrorContains(t, err, "R_HOST")

	t.Setenv("STORAGE_DRIVER", "floppy")
	_, err = New(context.Background())
	assert.ErrorContains(t, err, "unknown storage driver")
}
