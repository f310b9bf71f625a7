package tokenstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RevokeUntilExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	require.NoError(t, m.Revoke(ctx, "jti-1", base.Add(time.Minute)))

	ok, err := m.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = m.IsRevoked(ctx, "jti-2")
	assert.False(t, ok)

	m.now = func() time.Time { return base.Add(2 * time.Minute) }
	ok, _ = m.IsRevoked(ctx, "jti-1")
	assert.False(t, ok)
	assert.Empty(t, m.revoked)
}

// Integración; se salta si no hay Redis.
func TestRedis_Integration(t *testing.T) {
	addr := os.Getenv("GUIDEDOG_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("GUIDEDOG_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	r, err := DialRedis(ctx, addr, "", 0)
	require.NoError(t, err)
	defer r.Close()

	id := uuid.NewString()
	ok, err := r.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Revoke(ctx, id, time.Now().Add(time.Minute)))
	ok, err = r.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	// ya expirado: no se guarda
	past := uuid.NewString()
	require.NoError(t, r.Revoke(ctx, past, time.Now().Add(-time.Second)))
	ok, _ = r.IsRevoked(ctx, past)
	assert.False(t, ok)
}
