package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesai/models"
	"mesai/store"
)

type failingStore struct {
	store.Store
	failSave bool
}

func (f *failingStore) Save(ctx context.Context, doc store.Document) error {
	if f.failSave {
		return errors.New("storage unavailable")
	}
	return f.Store.Save(ctx, doc)
}

func TestOpenLoadsDocument(t *testing.T) {
	c, err := Open(context.Background(), store.NewMemoryStore(store.SeedDocument()))
	require.NoError(t, err)
	assert.Len(t, c.Snapshot().Users, 5)
}

func TestSnapshotIsACopy(t *testing.T) {
	c, err := Open(context.Background(), store.NewMemoryStore(store.SeedDocument()))
	require.NoError(t, err)

	snap := c.Snapshot()
	snap.Users[0].Name = "mutated"
	assert.Equal(t, "Ahmet Yilmaz", c.Snapshot().Users[0].Name)
}

func TestReplacePersists(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMemoryStore(store.SeedDocument())
	c, err := Open(ctx, backing)
	require.NoError(t, err)

	doc := c.Snapshot()
	doc.Records = append(doc.Records, models.OvertimeEntry{ID: "e1"})
	require.NoError(t, c.Replace(ctx, doc))

	persisted, err := backing.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted.Records, 1)
}

func TestReplaceKeepsLocalUpdateOnSaveFailure(t *testing.T) {
	ctx := context.Background()
	st := &failingStore{Store: store.NewMemoryStore(store.SeedDocument())}
	c, err := Open(ctx, st)
	require.NoError(t, err)

	st.failSave = true
	doc := c.Snapshot()
	doc.Records = append(doc.Records, models.OvertimeEntry{ID: "e1"})

	err = c.Replace(ctx, doc)
	require.Error(t, err)
	assert.Len(t, c.Snapshot().Records, 1, "optimistic local update stands")
}
