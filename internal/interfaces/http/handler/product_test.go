package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appcatalog "github.com/promoflow/backend/internal/application/catalog"
	"github.com/promoflow/backend/internal/domain/catalog"
	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductRouter(userID uuid.UUID) (*gin.Engine, *MockProductRepository) {
	products := &MockProductRepository{}
	h := NewProductHandler(appcatalog.NewProductService(products))

	r := newProtectedTestRouter(userID)
	r.POST("/products", h.Create)
	r.GET("/products", h.List)
	r.GET("/products/:id", h.GetByID)
	r.PUT("/products/:id", h.Update)
	r.DELETE("/products/:id", h.Delete)
	return r, products
}

func TestProductHandlerCreate(t *testing.T) {
	userID := uuid.New()
	r, products := newProductRouter(userID)

	products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	body, _ := json.Marshal(gin.H{
		"name":        "Espresso Beans",
		"description": "Dark roast",
		"category":    "coffee",
		"price":       "12.50",
	})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Espresso Beans")
	products.AssertExpectations(t)
}

func TestProductHandlerGetNotFound(t *testing.T) {
	userID := uuid.New()
	r, products := newProductRouter(userID)

	id := uuid.New()
	products.On("FindByID", mock.Anything, userID, id).Return(nil, shared.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/products/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestProductHandlerGetInvalidID(t *testing.T) {
	r, _ := newProductRouter(uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandlerList(t *testing.T) {
	userID := uuid.New()
	r, products := newProductRouter(userID)

	p1, err := catalog.NewProduct(userID, "Beans", "", decimal.NewFromInt(10))
	require.NoError(t, err)
	p2, err := catalog.NewProduct(userID, "Grinder", "", decimal.NewFromInt(90))
	require.NoError(t, err)

	products.On("FindAll", mock.Anything, userID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.Filters["category"] == "coffee"
	})).Return(shared.NewPaginated([]*catalog.Product{p1, p2}, 2, 1, 20), nil)

	req := httptest.NewRequest(http.MethodGet, "/products?category=coffee", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Meta    struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(2), resp.Meta.Total)
}

func TestProductHandlerUpdate(t *testing.T) {
	userID := uuid.New()
	r, products := newProductRouter(userID)

	product, err := catalog.NewProduct(userID, "Old Name", "", decimal.NewFromInt(5))
	require.NoError(t, err)
	products.On("FindByID", mock.Anything, userID, product.ID).Return(product, nil)
	products.On("Save", mock.Anything, product).Return(nil)

	body, _ := json.Marshal(gin.H{"name": "New Name"})
	req := httptest.NewRequest(http.MethodPut, "/products/"+product.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Name")
}

func TestProductHandlerDelete(t *testing.T) {
	userID := uuid.New()
	r, products := newProductRouter(userID)

	product, err := catalog.NewProduct(userID, "Doomed", "", decimal.NewFromInt(1))
	require.NoError(t, err)
	products.On("FindByID", mock.Anything, userID, product.ID).Return(product, nil)
	products.On("Delete", mock.Anything, userID, product.ID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/products/"+product.ID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	products.AssertExpectations(t)
}

func TestProductHandlerRequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	products := &MockProductRepository{}
	h := NewProductHandler(appcatalog.NewProductService(products))
	r := gin.New()
	r.GET("/products", h.List)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
