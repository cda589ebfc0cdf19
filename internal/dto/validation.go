package dto

import (
	"fmt"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by the request DTOs
// to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("invoicestatus", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseInvoiceStatus(fl.Field().String())
		return err == nil
	})
}
