package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
)

func TestListTags(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCatalogService(db)

	testhelpers.CreateTag(t, db, "lunch")
	breakfast := testhelpers.CreateTag(t, db, "breakfast")

	tags, err := svc.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Name)

	got, err := svc.GetTag(context.Background(), breakfast.ID)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", got.Slug)

	_, err = svc.GetTag(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrTagNotFound)
}

func TestListIngredientsPrefix(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCatalogService(db)
	ctx := context.Background()

	testhelpers.CreateIngredient(t, db, "Flour", "g")
	testhelpers.CreateIngredient(t, db, "flax seed", "g")
	testhelpers.CreateIngredient(t, db, "sugar", "g")

	all, err := svc.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Prefix matching ignores case on both sides.
	matched, err := svc.ListIngredients(ctx, "FL")
	require.NoError(t, err)
	require.Len(t, matched, 2)

	none, err := svc.ListIngredients(ctx, "lour")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetIngredient(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCatalogService(db)

	flour := testhelpers.CreateIngredient(t, db, "flour", "g")

	got, err := svc.GetIngredient(context.Background(), flour.ID)
	require.NoError(t, err)
	assert.Equal(t, "g", got.MeasurementUnit)

	_, err = svc.GetIngredient(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrIngredientNotFound)
}
