package dto_test

import (
	"testing"

	"github.com/SscSPs/invoice_ai_app/internal/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators_InvoiceStatus(t *testing.T) {
	require.NoError(t, dto.RegisterValidators())

	assert.NoError(t, binding.Validator.ValidateStruct(dto.UpdateInvoiceStatusRequest{Status: "Overdue"}))
	assert.Error(t, binding.Validator.ValidateStruct(dto.UpdateInvoiceStatusRequest{Status: "overdue"}))
	assert.Error(t, binding.Validator.ValidateStruct(dto.UpdateInvoiceStatusRequest{}))

	assert.NoError(t, binding.Validator.ValidateStruct(dto.InvoiceRequest{}), "status is optional on invoices")
	assert.Error(t, binding.Validator.ValidateStruct(dto.InvoiceRequest{Status: "Void"}))
}
