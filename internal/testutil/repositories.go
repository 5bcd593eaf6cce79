// internal/testutil/repositories.go

// Package testutil provides in-memory stand-ins for the catalog store, the credential
// store and the remote image host.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/catalogadmin/backend/internal/models"
	"github.com/catalogadmin/backend/internal/repository"
)

// Store backs both fake repositories so admin deletion can cascade into products.
type Store struct {
	mu       sync.Mutex
	admins   map[uuid.UUID]models.Admin
	products map[uuid.UUID]models.Product
	images   map[uuid.UUID]models.ProductImage
	seq      int64
}

func NewStore() *Store {
	return &Store{
		admins:   make(map[uuid.UUID]models.Admin),
		products: make(map[uuid.UUID]models.Product),
		images:   make(map[uuid.UUID]models.ProductImage),
	}
}

// stamp gives rows strictly increasing timestamps so ordering is deterministic.
func (s *Store) stamp(b *models.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.seq++
	now := time.Unix(0, 0).Add(time.Duration(s.seq) * time.Millisecond)
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Admins returns the credential store view of s.
func (s *Store) Admins() *AdminRepo {
	return &AdminRepo{s: s}
}

// Products returns the catalog store view of s.
func (s *Store) Products() *ProductRepo {
	return &ProductRepo{s: s}
}

// ImageCount returns the number of image rows attached to productID.
func (s *Store) ImageCount(productID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, img := range s.images {
		if img.ProductID == productID {
			n++
		}
	}
	return n
}

// ProductCount returns the number of stored products across all admins.
func (s *Store) ProductCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

type AdminRepo struct {
	s *Store
}

var _ repository.AdminRepository = (*AdminRepo)(nil)

func (r *AdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if a.Email == admin.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.s.stamp(&admin.BaseModel)
	r.s.admins[admin.ID] = *admin
	return nil
}

func (r *AdminRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return nil, repository.ErrAdminNotFound
	}
	return &a, nil
}

func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, repository.ErrAdminNotFound
}

func (r *AdminRepo) List(ctx context.Context) ([]models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	admins := make([]models.Admin, 0, len(r.s.admins))
	for _, a := range r.s.admins {
		admins = append(admins, a)
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].CreatedAt.Before(admins[j].CreatedAt) })
	return admins, nil
}

func (r *AdminRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.admins[id]; !ok {
		return repository.ErrAdminNotFound
	}
	for pid, p := range r.s.products {
		if p.AdminID == id {
			r.s.deleteImagesLocked(pid)
			delete(r.s.products, pid)
		}
	}
	delete(r.s.admins, id)
	return nil
}

type ProductRepo struct {
	s *Store
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&product.BaseModel)
	stored := *product
	stored.Images = nil
	r.s.products[product.ID] = stored
	return nil
}

func (r *ProductRepo) AddImage(ctx context.Context, image *models.ProductImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&image.BaseModel)
	r.s.images[image.ID] = *image
	return nil
}

func (r *ProductRepo) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]models.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var products []models.Product
	for _, p := range r.s.products {
		if p.AdminID == adminID {
			p.Images = r.s.imagesLocked(p.ID)
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.Before(products[j].CreatedAt) })
	return products, int64(len(products)), nil
}

func (r *ProductRepo) GetOwned(ctx context.Context, adminID, productID uuid.UUID) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok || p.AdminID != adminID {
		return nil, repository.ErrProductNotFound
	}
	p.Images = r.s.imagesLocked(p.ID)
	return &p, nil
}

func (r *ProductRepo) UpdateFields(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[product.ID]
	if !ok || p.AdminID != product.AdminID {
		return repository.ErrProductNotFound
	}
	p.SKU = product.SKU
	p.Name = product.Name
	p.Price = product.Price
	r.s.seq++
	p.UpdatedAt = time.Unix(0, 0).Add(time.Duration(r.s.seq) * time.Millisecond)
	product.UpdatedAt = p.UpdatedAt
	r.s.products[p.ID] = p
	return nil
}

func (r *ProductRepo) DeleteImages(ctx context.Context, productID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deleteImagesLocked(productID)
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, adminID, productID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok || p.AdminID != adminID {
		return repository.ErrProductNotFound
	}
	r.s.deleteImagesLocked(productID)
	delete(r.s.products, productID)
	return nil
}

func (s *Store) imagesLocked(productID uuid.UUID) []models.ProductImage {
	var images []models.ProductImage
	for _, img := range s.images {
		if img.ProductID == productID {
			images = append(images, img)
		}
	}
	sort.Slice(images, func(i, j int) bool { return images[i].CreatedAt.Before(images[j].CreatedAt) })
	return images
}

func (s *Store) deleteImagesLocked(productID uuid.UUID) {
	for id, img := range s.images {
		if img.ProductID == productID {
			delete(s.images, id)
		}
	}
}
