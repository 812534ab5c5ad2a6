package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/models"
	"gelirgider/internal/services"
)

// CatalogHandler serves the built-in categories and statuses.
type CatalogHandler struct {
	catalogService services.CatalogServicer
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService services.CatalogServicer) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategories handles the category listing
// @Summary     List categories
// @Tags        catalog
// @Produce     json
// @Security    ApiKeyAuth
// @Param       type query string false "income or expense (default both)"
// @Success     200 {object} map[string]interface{} "Categories"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Router      /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var filter *models.TransactionType
	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		if !t.IsValid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be income or expense"))
			return
		}
		filter = &t
	}

	c.JSON(http.StatusOK, gin.H{"categories": h.catalogService.ListCategories(filter)})
}

// GetCategory handles a single category lookup
// @Summary     Get category
// @Description Resolve a category id. Unknown ids return generic metadata with the id preserved.
// @Tags        catalog
// @Produce     json
// @Security    ApiKeyAuth
// @Param       type path string true "income or expense"
// @Param       id   path string true "Category ID"
// @Success     200 {object} models.Category "Category"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Router      /categories/{type}/{id} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.catalogService.GetCategory(models.TransactionType(c.Param("type")), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// ListStatuses handles the status listing
// @Summary     List statuses
// @Tags        catalog
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} map[string]interface{} "Statuses"
// @Router      /statuses [get]
func (h *CatalogHandler) ListStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"statuses": h.catalogService.ListStatuses()})
}
