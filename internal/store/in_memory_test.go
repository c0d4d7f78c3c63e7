package store

import (
	"context"
	"testing"

	ierrors "inventory-service/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T, s ProductStore, names ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		saved, err := s.Save(context.Background(), &Product{Name: name, Picture: []byte{}, CategoryID: 1})
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}
	return ids
}

func Test_InMemoryProductStore_FindByName(t *testing.T) {
	// given
	s := NewInMemoryProductStore()
	seedProducts(t, s, "Widget", "WIDGET-2", "a widget here", "gadget")

	// when
	found, err := s.FindByName(context.Background(), "widget")

	// then
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, "Widget", found[0].Name)
	assert.Equal(t, "WIDGET-2", found[1].Name)
	assert.Equal(t, "a widget here", found[2].Name)
}

func Test_InMemoryProductStore_FindAllPreservesInsertionOrder(t *testing.T) {
	// given
	s := NewInMemoryProductStore()
	ids := seedProducts(t, s, "third", "first", "second")

	// when
	all, err := s.FindAll(context.Background())

	// then
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, p := range all {
		assert.Equal(t, ids[i], p.ID)
	}
}

func Test_InMemoryProductStore_SaveAssignsAndPreservesIdentity(t *testing.T) {
	// given
	s := NewInMemoryProductStore()
	saved, err := s.Save(context.Background(), &Product{Name: "Widget", CategoryID: 1})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	// when: updating through the same upsert path
	saved.Name = "Widget v2"
	updated, err := s.Save(context.Background(), saved)

	// then
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	fetched, err := s.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", fetched.Name)
}

func Test_InMemoryProductStore_SaveMissingID(t *testing.T) {
	s := NewInMemoryProductStore()

	_, err := s.Save(context.Background(), &Product{ID: 42, Name: "ghost"})

	assert.ErrorIs(t, err, ierrors.ErrProductNotFound)
}

func Test_InMemoryProductStore_DeleteByID(t *testing.T) {
	// given
	s := NewInMemoryProductStore()
	ids := seedProducts(t, s, "Widget")

	// when
	err := s.DeleteByID(context.Background(), ids[0])

	// then
	require.NoError(t, err)
	_, err = s.FindByID(context.Background(), ids[0])
	assert.ErrorIs(t, err, ierrors.ErrProductNotFound)
	assert.ErrorIs(t, s.DeleteByID(context.Background(), ids[0]), ierrors.ErrProductNotFound)
}

func Test_InMemoryCategoryStore_FindByID(t *testing.T) {
	s := NewInMemoryCategoryStore(Category{ID: 1, Name: "tools"})

	found, err := s.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "tools", found.Name)

	_, err = s.FindByID(context.Background(), 2)
	assert.ErrorIs(t, err, ierrors.ErrCategoryNotFound)
}
