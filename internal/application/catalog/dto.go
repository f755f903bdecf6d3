package catalog

import (
	"time"

	"github.com/promoflow/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Description    string           `json:"description" binding:"max=2000"`
	Category       string           `json:"category" binding:"max=100"`
	TargetAudience string           `json:"target_audience" binding:"max=200"`
	ImageURL       string           `json:"image_url" binding:"omitempty,url"`
	LinkURL        string           `json:"link_url" binding:"omitempty,url"`
	Price          *decimal.Decimal `json:"price"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string          `json:"description" binding:"omitempty,max=2000"`
	Category       *string          `json:"category" binding:"omitempty,max=100"`
	TargetAudience *string          `json:"target_audience" binding:"omitempty,max=200"`
	ImageURL       *string          `json:"image_url" binding:"omitempty,url"`
	LinkURL        *string          `json:"link_url" binding:"omitempty,url"`
	Price          *decimal.Decimal `json:"price"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	TargetAudience string          `json:"target_audience"`
	ImageURL       string          `json:"image_url"`
	LinkURL        string          `json:"link_url"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to its API shape
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		TargetAudience: p.TargetAudience,
		ImageURL:       p.ImageURL,
		LinkURL:        p.LinkURL,
		Price:          p.Price,
		Currency:       p.Currency,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
