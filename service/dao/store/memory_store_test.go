package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gridgate/service/dao"
)

type record struct {
	ID    string
	Value int
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	srv := NewMemoryStore[string, record](func(r *record) string { return r.ID }, nil).
		WithCopier(func(r *record) *record { clone := *r; return &clone })

	assert.True(t, errors.Is(srv.Save(ctx, nil), dao.ErrNilEntity))
	assert.True(t, errors.Is(srv.Save(ctx, &record{}), dao.ErrInvalidID))

	original := &record{ID: "r1", Value: 1}
	assert.NoError(t, srv.Save(ctx, original))
	original.Value = 100

	loaded, err := srv.Load(ctx, "r1")
	assert.NoError(t, err)
	assert.Equal(t, 1, loaded.Value)

	updated, err := srv.Update(ctx, "r1", func(r *record) error { r.Value++; return nil })
	assert.NoError(t, err)
	assert.Equal(t, 2, updated.Value)

	_, err = srv.Update(ctx, "r2", func(r *record) error { return nil })
	assert.True(t, errors.Is(err, dao.ErrNotFound))

	list, err := srv.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	assert.NoError(t, srv.Delete(ctx, "r1"))
	assert.True(t, errors.Is(srv.Delete(ctx, "r1"), dao.ErrNotFound))
	_, err = srv.Load(ctx, "r1")
	assert.True(t, errors.Is(err, dao.ErrNotFound))
}
