// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"gelirgider/internal/models"
)

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("currency", validateCurrency)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("transaction_status", validateTransactionStatus)
	_ = v.RegisterValidation("frequency", validateFrequency)
	_ = v.RegisterValidation("filter_type", validateFilterType)
	_ = v.RegisterValidation("iso_date", validateISODate)
}

func validateCurrency(fl validator.FieldLevel) bool {
	return models.Currency(fl.Field().String()).IsValid()
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).IsValid()
}

func validateTransactionStatus(fl validator.FieldLevel) bool {
	return models.TransactionStatus(fl.Field().String()).IsValid()
}

func validateFrequency(fl validator.FieldLevel) bool {
	return models.Frequency(fl.Field().String()).IsValid()
}

func validateFilterType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "all", "income", "expense":
		return true
	}
	return false
}

// validateISODate accepts values starting with a YYYY-MM-DD calendar date.
func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !isoDateRegex.MatchString(s) {
		return false
	}
	_, ok := models.ParseDate(s)
	return ok
}
