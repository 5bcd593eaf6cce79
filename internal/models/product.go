// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product belongs to exactly one Admin. Relationship rows are removed explicitly by the
// repository layer, so no cascade constraints are declared here.
type Product struct {
	BaseModel
	AdminID uuid.UUID       `json:"admin_id" gorm:"type:uuid;not null;index"`
	SKU     string          `json:"sku" gorm:"size:100;not null"`
	Name    string          `json:"name" gorm:"size:255;not null"`
	Price   decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Images []ProductImage `json:"images" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// ImageURLs returns the image URLs in stored order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

// ProductImage references image bytes held by the remote image host.
type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"type:text;not null"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
