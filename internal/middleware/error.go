package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/logger"
)

// ErrorHandler renders errors that handlers and middleware attached with
// c.Error instead of answering themselves. Only the last error is rendered,
// and nothing is done once a response has been written.
//
// AppErrors keep their status, code and message. Anything else is logged
// with the request id and answered with a generic internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := logger.Named("http").With(
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			log.Errorw("unhandled error", "error", err.Error())
			appErr = apperrors.ErrInternalServer
		} else if appErr.Internal != nil {
			log.Errorw("ledger error", "code", appErr.Code, "internal", appErr.Internal.Error())
		}

		c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
			"error": gin.H{"code": appErr.Code, "message": appErr.Message},
		})
	}
}
