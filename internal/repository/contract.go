// internal/repository/contract.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/catalogadmin/backend/internal/models"
)

var (
	// ErrAdminNotFound is returned when no admin matches the lookup.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrProductNotFound is returned when no product owned by the caller matches the id.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateEmail is returned when an admin with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// AdminRepository is the credential store.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
	// Delete removes the admin together with its products and their images.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository is the catalog store. Every read and write is scoped to an owning admin.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	AddImage(ctx context.Context, image *models.ProductImage) error
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]models.Product, int64, error)
	GetOwned(ctx context.Context, adminID, productID uuid.UUID) (*models.Product, error)
	UpdateFields(ctx context.Context, product *models.Product) error
	DeleteImages(ctx context.Context, productID uuid.UUID) error
	// Delete removes the product and its image rows. Remote image bytes are left untouched.
	Delete(ctx context.Context, adminID, productID uuid.UUID) error
}
