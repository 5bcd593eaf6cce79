// internal/repository/admin_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/catalogadmin/backend/internal/database"
	"github.com/catalogadmin/backend/internal/models"
)

type AdminsRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminsRepository {
	return &AdminsRepository{db: db}
}

func (r *AdminsRepository) Create(ctx context.Context, admin *models.Admin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *AdminsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &admin, nil
}

func (r *AdminsRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &admin, nil
}

func (r *AdminsRepository) List(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.db.WithContext(ctx).Order("created_at").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return admins, nil
}

func (r *AdminsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		owned := tx.Model(&models.Product{}).Select("id").Where("admin_id = ?", id)

		if err := tx.Where("product_id IN (?)", owned).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}
		if err := tx.Where("admin_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("failed to delete products: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Admin{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete admin: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAdminNotFound
		}
		return nil
	})
}
