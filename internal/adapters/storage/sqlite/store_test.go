package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidedog-records/internal/adapters/storage/memory"
	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/domain/medical"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "guidedog_dogs", Key(memory.CollectionDogs))
	assert.Equal(t, "guidedog_medical", Key(memory.CollectionMedicalRecords))
	assert.Equal(t, "guidedog_push_subscriptions", Key(memory.CollectionPushSubscriptions))
}

func TestStore_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "guidedog.db")

	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Dogs().Save(ctx, dogs.Dog{ID: "d-1", Name: "Lucky", Category: dogs.CategoryGuideDog}))
	require.NoError(t, s.Dogs().Save(ctx, dogs.Dog{ID: "d-2", Name: "Bella", Category: dogs.CategoryPuppy}))
	require.NoError(t, s.MedicalRecords().Save(ctx, medical.Record{ID: "m-1", DogID: "d-1", DogName: "Lucky", Category: medical.CategoryGeneral}))
	require.NoError(t, s.Dogs().Delete(ctx, "d-2"))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	list, err := reopened.Dogs().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Lucky", list[0].Name)

	rec, err := reopened.MedicalRecords().GetByID(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, "d-1", rec.DogID)
}

func TestStore_WritesOneRowPerCollection(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "guidedog.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.MedicalRecords().Save(ctx, medical.Record{ID: "m-1", DogName: "Lucky"}))
	require.NoError(t, s.MedicalRecords().Save(ctx, medical.Record{ID: "m-2", DogName: "Lucky"}))
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var keys []string
	rows, err := db.Query(`SELECT key FROM state ORDER BY key`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var k string
		require.NoError(t, rows.Scan(&k))
		keys = append(keys, k)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"guidedog_medical"}, keys)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}
