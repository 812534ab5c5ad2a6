package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/services"
)

// ReportHandler handles aggregated report requests.
type ReportHandler struct {
	reportService services.ReportServicer
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: time.Now}
}

// MonthlyReport handles the monthly dashboard
// @Summary     Monthly report
// @Description Totals, counts, pending amount and margin of the filtered month
// @Tags        reports
// @Produce     json
// @Security    ApiKeyAuth
// @Param       year     query int    false "Year (default current)"
// @Param       month    query int    false "Month 1-12 (default current)"
// @Param       type     query string false "all, income or expense (default all)"
// @Param       search   query string false "Case-insensitive search over company name"
// @Param       generate query bool   false "Materialize due recurring items of the month first"
// @Success     200 {object} services.MonthlyReport "Monthly report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/monthly [get]
func (h *ReportHandler) MonthlyReport(c *gin.Context) {
	filter, err := parseTransactionFilter(c, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	rep, err := h.reportService.MonthlyReport(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rep)
}

// YearlyReport handles the month-by-month view of a year
// @Summary     Yearly report
// @Tags        reports
// @Produce     json
// @Security    ApiKeyAuth
// @Param       year query int false "Year (default current)"
// @Success     200 {object} services.YearlyReport "Yearly report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/yearly [get]
func (h *ReportHandler) YearlyReport(c *gin.Context) {
	year := h.now().Year()
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year"))
			return
		}
		year = y
	}

	rep, err := h.reportService.YearlyReport(c.Request.Context(), year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rep)
}
