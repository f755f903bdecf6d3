package catalog

import (
	"context"

	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	// FindByID loads a product owned by the given user.
	// Returns shared.ErrNotFound when no such product exists.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Product, error)

	// FindByIDs loads multiple products owned by the given user.
	// Missing IDs are silently omitted from the result.
	FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*Product, error)

	// FindAll lists products owned by the given user
	FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Product], error)

	// Save persists a new or updated product
	Save(ctx context.Context, p *Product) error

	// Delete removes a product
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
