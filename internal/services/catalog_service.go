package services

import (
	"gelirgider/internal/catalog"
	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/models"
)

type catalogService struct{}

// NewCatalogService creates a new CatalogServicer.
func NewCatalogService() CatalogServicer {
	return catalogService{}
}

// ListCategories returns the categories of t, or of both types when t is nil.
func (catalogService) ListCategories(t *models.TransactionType) []models.Category {
	if t == nil {
		return catalog.All()
	}
	return catalog.List(*t)
}

// GetCategory resolves id within t. Unknown ids resolve to the fallback
// category.
func (catalogService) GetCategory(t models.TransactionType, id string) (*models.Category, error) {
	if !t.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	c := catalog.Lookup(id, t)
	return &c, nil
}

// ListStatuses returns every status with its label.
func (catalogService) ListStatuses() []StatusOption {
	out := make([]StatusOption, len(models.Statuses))
	for i, s := range models.Statuses {
		out[i] = StatusOption{Value: s, Label: catalog.StatusLabel(s)}
	}
	return out
}
