package catalog

import (
	"context"

	"github.com/promoflow/backend/internal/domain/catalog"
	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related business operations
type ProductService struct {
	products catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	price := decimal.Zero
	if req.Price != nil {
		price = *req.Price
	}

	product, err := catalog.NewProduct(userID, req.Name, req.Description, price)
	if err != nil {
		return nil, err
	}
	product.Category = req.Category
	product.TargetAudience = req.TargetAudience
	product.ImageURL = req.ImageURL
	product.LinkURL = req.LinkURL

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Get loads one product owned by the user
func (s *ProductService) Get(ctx context.Context, userID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns the user's products
func (s *ProductService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ProductResponse], error) {
	page, err := s.products.FindAll(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*ProductResponse, len(page.Items))
	for i, p := range page.Items {
		items[i] = ToProductResponse(p)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// Update applies partial changes to a product
func (s *ProductService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}
	audience := product.TargetAudience
	if req.TargetAudience != nil {
		audience = *req.TargetAudience
	}
	imageURL := product.ImageURL
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	linkURL := product.LinkURL
	if req.LinkURL != nil {
		linkURL = *req.LinkURL
	}
	if err := product.UpdateDetails(name, description, category, audience, imageURL, linkURL); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.UpdatePrice(*req.Price); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, userID, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, userID, id)
}
