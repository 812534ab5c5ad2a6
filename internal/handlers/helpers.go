package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/logger"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// respondWithError writes a consistent JSON error response for an *AppError
// using its status code, code, and message. Any other error is attached to the
// context and the request aborted; middleware.ErrorHandler logs it and answers
// with a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		_ = c.Error(err)
		c.Abort()
		return
	}

	if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}
	c.JSON(appErr.StatusCode, ErrorResponse{
		Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message},
	})
}

// parsePeriod reads the year and month query parameters. Missing values
// default to the current period.
func parsePeriod(c *gin.Context, now time.Time) (int, time.Month, error) {
	year, month := now.Year(), now.Month()

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year")
		}
		year = y
	}

	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month, must be between 1 and 12")
		}
		month = time.Month(m)
	}

	return year, month, nil
}

// parseBoolQuery reads an optional boolean query parameter.
func parseBoolQuery(c *gin.Context, key string) (bool, error) {
	v := c.Query(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+key)
	}
	return b, nil
}
