package db

import (
	"context"
	"testing"
	"time"

	"github.com/jonathan/internship-finder/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ session.Store  = (*SessionStore)(nil)
	_ session.Purger = (*SessionStore)(nil)
)

func TestConnect_InvalidURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Connect(ctx, "not a url://")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}

func TestPurgeExpired_NoTTL(t *testing.T) {
	store := NewSessionStore(&DB{}, 0)
	removed, err := store.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)
}
