package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
)

func TestServiceCreateRejectsDuplicateSlug(t *testing.T) {
	db := setupProductsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Create(ctx, UpsertInput{Slug: "Argan-Oil", Name: "Argan Oil", Price: 189, InStock: true})
	require.NoError(t, err)

	_, err = svc.Create(ctx, UpsertInput{Slug: "argan-oil", Name: "Argan Oil Again", Price: 200})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestServiceCreateNormalizesSlug(t *testing.T) {
	db := setupProductsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), UpsertInput{Slug: "  Rose-Water ", Name: "Rose Water", Price: 99})
	require.NoError(t, err)
	assert.Equal(t, "rose-water", created.Slug)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestServiceValidation(t *testing.T) {
	db := setupProductsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	cases := []UpsertInput{
		{Name: "No Slug", Price: 10},
		{Slug: "no-name", Price: 10},
		{Slug: "bad-price", Name: "Bad Price", Price: -1},
	}
	for _, input := range cases {
		_, err := svc.Create(ctx, input)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "input %+v should be rejected", input)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}

func TestServiceGetBySlugNotFound(t *testing.T) {
	db := setupProductsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	_, err = svc.GetBySlug(context.Background(), "ghost")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
