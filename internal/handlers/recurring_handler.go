package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/models"
	"gelirgider/internal/services"
)

// RecurringHandler handles recurring template requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// CreateRecurringItemRequest represents the request payload for creating a recurring template.
type CreateRecurringItemRequest struct {
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	CompanyName string                 `json:"company_name" binding:"max=200"`
	Amount      models.FormAmount      `json:"amount" swaggertype:"number"`
	Currency    models.Currency        `json:"currency" binding:"required,currency"`
	CategoryID  string                 `json:"category_id" binding:"max=64"`
	Frequency   models.Frequency       `json:"frequency" binding:"required,frequency"`
	DayOfMonth  *int                   `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	StartDate   string                 `json:"start_date" binding:"required,iso_date"`
	EndDate     string                 `json:"end_date" binding:"omitempty,iso_date"`
	IsActive    *bool                  `json:"is_active"`
	Notes       string                 `json:"notes" binding:"max=1000"`
}

func (r CreateRecurringItemRequest) input() models.RecurringItemInput {
	return models.RecurringItemInput{
		Type:        r.Type,
		CompanyName: r.CompanyName,
		Amount:      r.Amount,
		Currency:    r.Currency,
		CategoryID:  r.CategoryID,
		Frequency:   r.Frequency,
		DayOfMonth:  r.DayOfMonth,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IsActive:    r.IsActive,
		Notes:       r.Notes,
	}
}

// UpdateRecurringItemRequest represents the request payload for updating a recurring template.
// An empty end_date clears it.
type UpdateRecurringItemRequest struct {
	Type        *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	CompanyName *string                 `json:"company_name" binding:"omitempty,max=200"`
	Amount      *models.FormAmount      `json:"amount" swaggertype:"number"`
	Currency    *models.Currency        `json:"currency" binding:"omitempty,currency"`
	CategoryID  *string                 `json:"category_id" binding:"omitempty,max=64"`
	Frequency   *models.Frequency       `json:"frequency" binding:"omitempty,frequency"`
	DayOfMonth  *int                    `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	StartDate   *string                 `json:"start_date" binding:"omitempty,iso_date"`
	EndDate     *string                 `json:"end_date" binding:"omitempty,max=0|iso_date"`
	IsActive    *bool                   `json:"is_active"`
	Notes       *string                 `json:"notes" binding:"omitempty,max=1000"`
}

func (r UpdateRecurringItemRequest) patch() models.RecurringItemPatch {
	return models.RecurringItemPatch{
		Type:        r.Type,
		CompanyName: r.CompanyName,
		Amount:      r.Amount,
		Currency:    r.Currency,
		CategoryID:  r.CategoryID,
		Frequency:   r.Frequency,
		DayOfMonth:  r.DayOfMonth,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IsActive:    r.IsActive,
		Notes:       r.Notes,
	}
}

// GenerateRecurringRequest selects the month to materialize.
type GenerateRecurringRequest struct {
	Year  int `json:"year" binding:"required,min=1,max=9999"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// ListRecurringItems handles the recurring template listing
// @Summary     List recurring templates
// @Description Get every recurring template with its amount at live rates, plus the totals of the active ones
// @Tags        recurring
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} services.RecurringList "Recurring templates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /recurring [get]
func (h *RecurringHandler) ListRecurringItems(c *gin.Context) {
	list, err := h.recurringService.ListRecurringItems(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// CreateRecurringItem handles the creation of a recurring template
// @Summary     Create a recurring template
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateRecurringItemRequest true "Template details"
// @Success     201 {object} models.RecurringItem "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /recurring [post]
func (h *RecurringHandler) CreateRecurringItem(c *gin.Context) {
	var req CreateRecurringItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.recurringService.CreateRecurringItem(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recurring_item": item})
}

// UpdateRecurringItem handles updating a recurring template
// @Summary     Update recurring template
// @Description Merge the supplied fields into a template. Already generated transactions are not changed.
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string                     true "Template ID"
// @Param       request body UpdateRecurringItemRequest true "Fields to update"
// @Success     200 {object} models.RecurringItem "Updated template"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Router      /recurring/{id} [patch]
func (h *RecurringHandler) UpdateRecurringItem(c *gin.Context) {
	var req UpdateRecurringItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.recurringService.UpdateRecurringItem(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_item": item})
}

// DeleteRecurringItem handles the deletion of a recurring template
// @Summary     Delete recurring template
// @Description Remove a template. Its generated transactions are kept.
// @Tags        recurring
// @Security    ApiKeyAuth
// @Param       id path string true "Template ID"
// @Success     204 "Template deleted"
// @Router      /recurring/{id} [delete]
func (h *RecurringHandler) DeleteRecurringItem(c *gin.Context) {
	if err := h.recurringService.DeleteRecurringItem(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleRecurringItem handles pausing and resuming a template
// @Summary     Toggle recurring template
// @Tags        recurring
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Template ID"
// @Success     200 {object} models.RecurringItem "Toggled template"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Router      /recurring/{id}/toggle [post]
func (h *RecurringHandler) ToggleRecurringItem(c *gin.Context) {
	item, err := h.recurringService.ToggleRecurringItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_item": item})
}

// GenerateRecurring handles materializing the due templates of a month
// @Summary     Generate recurring transactions
// @Description Create the pending transactions due in the month. Occurrences that already exist are skipped, so repeated calls are safe.
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body GenerateRecurringRequest true "Target month"
// @Success     200 {object} map[string]interface{} "Generated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /recurring/generate [post]
func (h *RecurringHandler) GenerateRecurring(c *gin.Context) {
	var req GenerateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	generated, err := h.recurringService.GenerateRecurring(c.Request.Context(), req.Year, time.Month(req.Month))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": generated, "count": len(generated)})
}
