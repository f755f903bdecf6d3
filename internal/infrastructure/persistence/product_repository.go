package persistence

import (
	"context"
	"errors"

	"github.com/promoflow/backend/internal/domain/catalog"
	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var productOrderColumns = map[string]bool{
	"name":       true,
	"category":   true,
	"price":      true,
	"created_at": true,
}

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by ID scoped to its owner
func (r *GormProductRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	err := r.db.WithContext(ctx).
		First(&product, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs finds multiple products by ID. IDs that do not resolve to a
// product owned by the user are omitted from the result.
func (r *GormProductRepository) FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}

	var products []*catalog.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll lists products owned by the user with pagination
func (r *GormProductRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[*catalog.Product], error) {
	base := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("user_id = ?", userID)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ? OR category ILIKE ?", pattern, pattern)
	}
	if category, ok := filter.Filters["category"]; ok {
		base = base.Where("category = ?", category)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	query := applyOrdering(base, filter, productOrderColumns, "created_at DESC")
	query = applyPagination(query, filter)

	var products []*catalog.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a product scoped to its owner
func (r *GormProductRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&catalog.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
