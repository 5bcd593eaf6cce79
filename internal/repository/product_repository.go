// internal/repository/product_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/catalogadmin/backend/internal/database"
	"github.com/catalogadmin/backend/internal/models"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{db: db}
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Order("product_images.created_at")
}

func (r *ProductsRepository) Create(ctx context.Context, product *models.Product) error {
	// images are attached one by one as uploads complete
	if err := r.db.WithContext(ctx).Omit("Images").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductsRepository) AddImage(ctx context.Context, image *models.ProductImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return fmt.Errorf("failed to create product image: %w", err)
	}
	return nil
}

func (r *ProductsRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("admin_id = ?", adminID).
		Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	if err := query.
		Preload("Images", preloadImages).
		Order("created_at").
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	return products, total, nil
}

func (r *ProductsRepository) GetOwned(ctx context.Context, adminID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		Where("id = ? AND admin_id = ?", productID, adminID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// UpdateFields writes sku, name and price and refreshes product.UpdatedAt.
func (r *ProductsRepository) UpdateFields(ctx context.Context, product *models.Product) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND admin_id = ?", product.ID, product.AdminID).
		Updates(map[string]interface{}{
			"sku":        product.SKU,
			"name":       product.Name,
			"price":      product.Price,
			"updated_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	product.UpdatedAt = now
	return nil
}

func (r *ProductsRepository) DeleteImages(ctx context.Context, productID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		return fmt.Errorf("failed to delete product images: %w", err)
	}
	return nil
}

func (r *ProductsRepository) Delete(ctx context.Context, adminID, productID uuid.UUID) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		owned := tx.Model(&models.Product{}).Select("id").Where("id = ? AND admin_id = ?", productID, adminID)

		if err := tx.Where("product_id IN (?)", owned).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}

		result := tx.Where("id = ? AND admin_id = ?", productID, adminID).Delete(&models.Product{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}
