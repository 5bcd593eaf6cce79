package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogadmin/backend/internal/models"
	"github.com/catalogadmin/backend/internal/repository"
	"github.com/catalogadmin/backend/internal/testutil"
)

func TestListAdmins(t *testing.T) {
	store := testutil.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Admins().Create(ctx, &models.Admin{Name: "Ann", Email: "ann@x.com"}))
	require.NoError(t, store.Admins().Create(ctx, &models.Admin{Name: "Bob", Email: "bob@x.com"}))

	var out bytes.Buffer
	require.NoError(t, listAdmins(ctx, store.Admins(), &out))

	assert.Contains(t, out.String(), "EMAIL")
	assert.Contains(t, out.String(), "ann@x.com")
	assert.Contains(t, out.String(), "bob@x.com")
}

func TestDeleteAdminCascades(t *testing.T) {
	store := testutil.NewStore()
	ctx := context.Background()

	ann := &models.Admin{Name: "Ann", Email: "ann@x.com"}
	require.NoError(t, store.Admins().Create(ctx, ann))
	product := &models.Product{AdminID: ann.ID, SKU: "A1", Name: "Shoe"}
	require.NoError(t, store.Products().Create(ctx, product))
	require.NoError(t, store.Products().AddImage(ctx, &models.ProductImage{ProductID: product.ID, URL: "https://images.test/a.jpg"}))

	require.NoError(t, deleteAdmin(ctx, store.Admins(), "ann@x.com"))

	assert.Equal(t, 0, store.ProductCount())
	assert.Equal(t, 0, store.ImageCount(product.ID))
	_, err := store.Admins().GetByID(ctx, ann.ID)
	assert.ErrorIs(t, err, repository.ErrAdminNotFound)
}

func TestDeleteAdminErrors(t *testing.T) {
	store := testutil.NewStore()

	assert.Error(t, deleteAdmin(context.Background(), store.Admins(), ""))

	err := deleteAdmin(context.Background(), store.Admins(), "ghost@x.com")
	assert.ErrorIs(t, err, repository.ErrAdminNotFound)
}
