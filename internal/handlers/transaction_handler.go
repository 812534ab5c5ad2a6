package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/models"
	"gelirgider/internal/pagination"
	"gelirgider/internal/report"
	"gelirgider/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	now                func() time.Time
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, now: time.Now}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Amount accepts a JSON number or a numeric string.
type CreateTransactionRequest struct {
	Type            models.TransactionType   `json:"type" binding:"required,transaction_type"`
	CompanyName     string                   `json:"company_name" binding:"max=200"`
	Amount          models.FormAmount        `json:"amount" swaggertype:"number"`
	Currency        models.Currency          `json:"currency" binding:"required,currency"`
	CategoryID      string                   `json:"category_id" binding:"max=64"`
	TransactionDate string                   `json:"transaction_date" binding:"required,iso_date"`
	Status          models.TransactionStatus `json:"status" binding:"omitempty,transaction_status"`
	IsRecurring     bool                     `json:"is_recurring"`
	Frequency       models.Frequency         `json:"frequency" binding:"omitempty,frequency"`
	DayOfMonth      *int                     `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	Notes           string                   `json:"notes" binding:"max=1000"`
}

func (r CreateTransactionRequest) form() models.TransactionFormData {
	return models.TransactionFormData{
		Type:            r.Type,
		CompanyName:     r.CompanyName,
		Amount:          r.Amount,
		Currency:        r.Currency,
		CategoryID:      r.CategoryID,
		TransactionDate: r.TransactionDate,
		Status:          r.Status,
		IsRecurring:     r.IsRecurring,
		Frequency:       r.Frequency,
		DayOfMonth:      r.DayOfMonth,
		Notes:           r.Notes,
	}
}

// UpdateTransactionRequest represents the request payload for updating a transaction.
// Omitted fields are left unchanged.
type UpdateTransactionRequest struct {
	Type            *models.TransactionType   `json:"type" binding:"omitempty,transaction_type"`
	CompanyName     *string                   `json:"company_name" binding:"omitempty,max=200"`
	Amount          *models.FormAmount        `json:"amount" swaggertype:"number"`
	Currency        *models.Currency          `json:"currency" binding:"omitempty,currency"`
	CategoryID      *string                   `json:"category_id" binding:"omitempty,max=64"`
	TransactionDate *string                   `json:"transaction_date" binding:"omitempty,iso_date"`
	Status          *models.TransactionStatus `json:"status" binding:"omitempty,transaction_status"`
	IsRecurring     *bool                     `json:"is_recurring"`
	RecurringID     *string                   `json:"recurring_id"`
	Notes           *string                   `json:"notes" binding:"omitempty,max=1000"`
}

func (r UpdateTransactionRequest) patch() models.TransactionPatch {
	return models.TransactionPatch{
		Type:            r.Type,
		CompanyName:     r.CompanyName,
		Amount:          r.Amount,
		Currency:        r.Currency,
		CategoryID:      r.CategoryID,
		TransactionDate: r.TransactionDate,
		Status:          r.Status,
		IsRecurring:     r.IsRecurring,
		RecurringID:     r.RecurringID,
		Notes:           r.Notes,
	}
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an income or expense. The amount is normalized to TRY at the current rate. With is_recurring and a frequency, a recurring template is created too.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), req.form())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions handles the filtered transaction listing
// @Summary     List transactions
// @Description Get a paginated list of the transactions of a month, optionally narrowed by type and a company name search
// @Tags        transactions
// @Produce     json
// @Security    ApiKeyAuth
// @Param       year      query int    false "Year (default current)"
// @Param       month     query int    false "Month 1-12 (default current)"
// @Param       type      query string false "all, income or expense (default all)"
// @Param       search    query string false "Case-insensitive search over company name"
// @Param       generate  query bool   false "Materialize due recurring items of the month first"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 50, max 500)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context, now time.Time) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	year, month, err := parsePeriod(c, now)
	if err != nil {
		return filter, err
	}
	filter.Year, filter.Month = year, month

	filter.Type = c.DefaultQuery("type", report.FilterAll)
	switch filter.Type {
	case report.FilterAll, string(models.TransactionTypeIncome), string(models.TransactionTypeExpense):
	default:
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be all, income, or expense")
	}

	filter.Search = c.Query("search")

	if filter.Generate, err = parseBoolQuery(c, "generate"); err != nil {
		return filter, err
	}

	return filter, nil
}

// GetTransaction handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transaction, err := h.transactionService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating an existing transaction
// @Summary     Update transaction
// @Description Merge the supplied fields into a transaction. The TRY amount is recomputed at the current rate.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [patch]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles the deletion of a transaction
// @Summary     Delete transaction
// @Description Remove a transaction. Deleting an unknown id succeeds.
// @Tags        transactions
// @Security    ApiKeyAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
