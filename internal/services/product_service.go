// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/catalogadmin/backend/internal/errs"
	"github.com/catalogadmin/backend/internal/i18n"
	"github.com/catalogadmin/backend/internal/models"
	"github.com/catalogadmin/backend/internal/repository"
	"github.com/catalogadmin/backend/internal/utils"
)

type ProductService struct {
	products repository.ProductRepository
	admins   repository.AdminRepository
	images   ImageHost
}

type CreateProductRequest struct {
	SKU   string `form:"sku" json:"sku" validate:"required"`
	Name  string `form:"name" json:"name" validate:"required"`
	Price string `form:"price" json:"price" validate:"required,decimal"`
}

// UpdateProductRequest fields left empty keep their stored value.
type UpdateProductRequest struct {
	SKU   string `form:"sku" json:"sku,omitempty"`
	Name  string `form:"name" json:"name,omitempty"`
	Price string `form:"price" json:"price,omitempty" validate:"omitempty,decimal"`
	// RemovedImages is sent by the admin frontend but has no effect: an update always
	// replaces the whole image set.
	RemovedImages []string `form:"removedImages" json:"removedImages,omitempty"`
}

type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Images    []string        `json:"images"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ImageResponse struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

// ProductListItem is a listed product. Its images carry their ids so the edit screen
// can address them.
type ProductListItem struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Images    []ImageResponse `json:"images"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ProductListResponse struct {
	Products      []ProductListItem `json:"products"`
	TotalProducts int64             `json:"totalProducts"`
}

// maxPrice is the first value a decimal(10,2) column cannot hold.
var maxPrice = decimal.New(1, 8)

func NewProductService(products repository.ProductRepository, admins repository.AdminRepository, images ImageHost) *ProductService {
	return &ProductService{
		products: products,
		admins:   admins,
		images:   images,
	}
}

// Create stores the product and uploads its images. An upload failure fails the call but
// leaves the product row and any images that were already uploaded in storage.
func (s *ProductService) Create(ctx context.Context, ownerID string, req *CreateProductRequest, files []ImageFile) (*ProductResponse, error) {
	adminID, err := parseOwner(ownerID)
	if err != nil {
		return nil, err
	}

	req.SKU = strings.TrimSpace(req.SKU)
	req.Name = strings.TrimSpace(req.Name)
	req.Price = strings.TrimSpace(req.Price)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, productValidationError(err)
	}
	if len(files) == 0 {
		return nil, errs.Validation(i18n.KeyProductFieldsMissing, []utils.ValidationError{{
			Field:   "images",
			Tag:     "required",
			Message: "images is required",
		}})
	}

	if _, err := s.admins.GetByID(ctx, adminID); err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, errs.NotFound(i18n.KeyAdminNotFound)
		}
		return nil, errs.Internal(fmt.Errorf("failed to get admin: %w", err))
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		AdminID: adminID,
		SKU:     req.SKU,
		Name:    req.Name,
		Price:   price,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to create product: %w", err))
	}

	urls, err := s.uploadImages(ctx, product, files)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"admin_id":   adminID,
		"product_id": product.ID,
		"images":     len(urls),
	}).Info("Product created")

	return toProductResponse(product, urls), nil
}

func (s *ProductService) List(ctx context.Context, ownerID string) (*ProductListResponse, error) {
	adminID, err := parseOwner(ownerID)
	if err != nil {
		return nil, err
	}

	products, total, err := s.products.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to list products: %w", err))
	}

	resp := &ProductListResponse{
		Products:      make([]ProductListItem, 0, len(products)),
		TotalProducts: total,
	}
	for i := range products {
		resp.Products = append(resp.Products, toProductListItem(&products[i]))
	}
	return resp, nil
}

// Update overwrites the supplied fields and replaces every stored image with files,
// even when files is empty.
func (s *ProductService) Update(ctx context.Context, ownerID, productID string, req *UpdateProductRequest, files []ImageFile) (*ProductResponse, error) {
	adminID, err := parseOwner(ownerID)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, errs.NotFound(i18n.KeyProductNotFound)
	}

	req.SKU = strings.TrimSpace(req.SKU)
	req.Name = strings.TrimSpace(req.Name)
	req.Price = strings.TrimSpace(req.Price)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, productValidationError(err)
	}

	product, err := s.products.GetOwned(ctx, adminID, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errs.NotFound(i18n.KeyProductNotFound)
		}
		return nil, errs.Internal(fmt.Errorf("failed to get product: %w", err))
	}

	if req.SKU != "" {
		product.SKU = req.SKU
	}
	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Price != "" {
		if product.Price, err = parsePrice(req.Price); err != nil {
			return nil, err
		}
	}
	if len(req.RemovedImages) > 0 {
		logrus.WithField("product_id", product.ID).Debug("Ignoring removedImages, image set is replaced on update")
	}

	if err := s.products.UpdateFields(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errs.NotFound(i18n.KeyProductNotFound)
		}
		return nil, errs.Internal(fmt.Errorf("failed to update product: %w", err))
	}

	if err := s.products.DeleteImages(ctx, product.ID); err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to delete product images: %w", err))
	}
	if len(product.Images) > 0 {
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,
			"urls":       product.ImageURLs(),
		}).Debug("Detached hosted images")
	}

	urls, err := s.uploadImages(ctx, product, files)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"admin_id":   adminID,
		"product_id": product.ID,
		"images":     len(urls),
	}).Info("Product updated")

	return toProductResponse(product, urls), nil
}

// Delete removes the product and its image rows. Hosted image bytes are not deleted.
func (s *ProductService) Delete(ctx context.Context, ownerID, productID string) error {
	adminID, err := parseOwner(ownerID)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(productID)
	if err != nil {
		return errs.NotFound(i18n.KeyProductNotFound)
	}

	if err := s.products.Delete(ctx, adminID, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return errs.NotFound(i18n.KeyProductNotFound)
		}
		return errs.Internal(fmt.Errorf("failed to delete product: %w", err))
	}

	logrus.WithFields(logrus.Fields{
		"admin_id":   adminID,
		"product_id": id,
	}).Info("Product deleted")
	return nil
}

// uploadImages uploads every file concurrently and records each image as soon as its
// upload succeeds. The returned URLs follow the order of files.
func (s *ProductService) uploadImages(ctx context.Context, product *models.Product, files []ImageFile) ([]string, error) {
	urls := make([]string, len(files))

	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			url, err := s.images.Upload(ctx, file.Data)
			if err != nil {
				return fmt.Errorf("upload %q: %w", file.Filename, err)
			}

			image := &models.ProductImage{ProductID: product.ID, URL: url}
			if err := s.products.AddImage(ctx, image); err != nil {
				return errs.Internal(fmt.Errorf("failed to save image: %w", err))
			}

			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"admin_id":   product.AdminID,
			"product_id": product.ID,
		}).Warn("Image upload failed, product keeps the images stored so far")

		var classified *errs.Error
		if errors.As(err, &classified) {
			return nil, err
		}
		return nil, errs.Upload(i18n.KeyFileUploadFailed, err)
	}

	return urls, nil
}

func parseOwner(ownerID string) (uuid.UUID, error) {
	id, err := uuid.Parse(ownerID)
	if err != nil {
		return uuid.Nil, errs.Unauthorized(i18n.KeyAuthRequired)
	}
	return id, nil
}

func parsePrice(value string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(value)
	if err != nil || price.IsNegative() {
		return decimal.Zero, errs.Validation(i18n.KeyProductInvalidPrice, []utils.ValidationError{{
			Field:   "price",
			Tag:     "decimal",
			Message: "price must be a non-negative number",
		}})
	}

	price = price.Round(2)
	if price.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, errs.Validation(i18n.KeyProductInvalidPrice, []utils.ValidationError{{
			Field:   "price",
			Tag:     "max",
			Message: "price must be less than " + maxPrice.String(),
		}})
	}
	return price, nil
}

func productValidationError(err error) *errs.Error {
	details := utils.GetValidationErrors(err)

	switch {
	case utils.HasTag(details, "required"):
		return errs.Validation(i18n.KeyProductFieldsMissing, details)
	case utils.HasTag(details, "decimal"):
		return errs.Validation(i18n.KeyProductInvalidPrice, details)
	default:
		return validationError(err)
	}
}

func toProductResponse(product *models.Product, urls []string) *ProductResponse {
	if urls == nil {
		urls = []string{}
	}
	return &ProductResponse{
		ID:        product.ID,
		SKU:       product.SKU,
		Name:      product.Name,
		Price:     product.Price,
		Images:    urls,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

func toProductListItem(product *models.Product) ProductListItem {
	images := make([]ImageResponse, 0, len(product.Images))
	for _, image := range product.Images {
		images = append(images, ImageResponse{ID: image.ID, URL: image.URL})
	}
	return ProductListItem{
		ID:        product.ID,
		SKU:       product.SKU,
		Name:      product.Name,
		Price:     product.Price,
		Images:    images,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
