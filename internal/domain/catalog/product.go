package catalog

import (
	"strings"
	"time"

	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an item or service being promoted by campaigns. Products are
// the subject matter for content generation: name, description, category
// and target audience feed the prompt.
type Product struct {
	shared.OwnedAggregateRoot
	Name           string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	Category       string          `gorm:"type:varchar(100);index"`
	TargetAudience string          `gorm:"type:varchar(200)"`
	ImageURL       string          `gorm:"type:text"`
	LinkURL        string          `gorm:"type:text"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Currency       string          `gorm:"type:varchar(3);not null;default:'USD'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(userID uuid.UUID, name, description string, price decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product price cannot be negative")
	}

	return &Product{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               strings.TrimSpace(name),
		Description:        description,
		Price:              price,
		Currency:           "USD",
	}, nil
}

// UpdateDetails updates the product's descriptive fields
func (p *Product) UpdateDetails(name, description, category, targetAudience, imageURL, linkURL string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product name is required")
	}
	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Category = category
	p.TargetAudience = targetAudience
	p.ImageURL = imageURL
	p.LinkURL = linkURL
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// UpdatePrice changes the product price
func (p *Product) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRODUCT", "Product price cannot be negative")
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// PromptSummary renders the product as a short text block for content
// generation prompts.
func (p *Product) PromptSummary() string {
	var b strings.Builder
	b.WriteString("Product: " + p.Name)
	if p.Description != "" {
		b.WriteString("\nDescription: " + p.Description)
	}
	if p.Category != "" {
		b.WriteString("\nCategory: " + p.Category)
	}
	if p.TargetAudience != "" {
		b.WriteString("\nTarget audience: " + p.TargetAudience)
	}
	return b.String()
}
