package memory

import (
	"bytes"
	"context"
	"io"
	"testing"

	"guidedog-records/internal/ports/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, _, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, blob.ErrNotFound)

	info, err := s.Put(ctx, "medical/r1/p1.png", bytes.NewBufferString("png"), blob.PutOptions{
		ContentType: "image/png",
		Metadata:    map[string]string{"record_id": "r1"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, info.Size)

	_, err = s.Put(ctx, "medical/r1/p1.png", bytes.NewBufferString("again"), blob.PutOptions{})
	assert.ErrorIs(t, err, blob.ErrExists)

	got, rc, err := s.Get(ctx, "medical/r1/p1.png")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "png", string(b))
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, "r1", got.Metadata["record_id"])

	ok, err := s.Delete(ctx, "medical/r1/p1.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete(ctx, "medical/r1/p1.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ListByPrefixSorted(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, k := range []string{"medical/r2/b", "medical/r1/b", "medical/r1/a", "other/x"} {
		_, err := s.Put(ctx, k, bytes.NewBufferString("x"), blob.PutOptions{})
		require.NoError(t, err)
	}

	items, err := s.List(ctx, "medical/r1/")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "medical/r1/a", items[0].Key)
	assert.Equal(t, "medical/r1/b", items[1].Key)
	assert.Equal(t, blob.DriverMemory, s.Driver())
}
