package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/models"
	"gelirgider/internal/services"
)

// RateHandler handles exchange rate requests.
type RateHandler struct {
	rateService services.RateServicer
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateService services.RateServicer) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// UpdateRateRequest carries a new rate. It accepts a JSON number or a numeric string.
type UpdateRateRequest struct {
	Rate models.FormAmount `json:"rate" swaggertype:"number"`
}

// GetRates handles the retrieval of the rate table
// @Summary     Get exchange rates
// @Description Get the TRY rate of every supported currency
// @Tags        rates
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} map[string]interface{} "Rate table"
// @Router      /rates [get]
func (h *RateHandler) GetRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"exchange_rates": h.rateService.GetRates(c.Request.Context())})
}

// UpdateRate handles setting the rate of one currency
// @Summary     Update exchange rate
// @Description Set the TRY rate of a currency and recompute every stored transaction in that currency
// @Tags        rates
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       currency path string            true "Currency code (USD, EUR, GBP)"
// @Param       request  body UpdateRateRequest true "New rate"
// @Success     200 {object} map[string]interface{} "Updated rate table"
// @Failure     400 {object} ErrorResponse "Invalid currency or rate"
// @Router      /rates/{currency} [put]
func (h *RateHandler) UpdateRate(c *gin.Context) {
	var req UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	currency := models.Currency(strings.ToUpper(c.Param("currency")))
	rates, err := h.rateService.UpdateRate(c.Request.Context(), currency, req.Rate.Decimal)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exchange_rates": rates})
}

// ResetRates handles restoring the default rates
// @Summary     Reset exchange rates
// @Description Restore the built-in rate table. Stored transactions keep their amounts.
// @Tags        rates
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} map[string]interface{} "Default rate table"
// @Router      /rates/reset [post]
func (h *RateHandler) ResetRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"exchange_rates": h.rateService.ResetRates(c.Request.Context())})
}

// RefreshRates handles pulling rates from the configured source
// @Summary     Refresh exchange rates
// @Tags        rates
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} map[string]interface{} "Refreshed rate table"
// @Failure     502 {object} ErrorResponse "Rate source unavailable"
// @Router      /rates/refresh [post]
func (h *RateHandler) RefreshRates(c *gin.Context) {
	rates, err := h.rateService.RefreshRates(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exchange_rates": rates})
}
