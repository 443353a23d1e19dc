package deductionerrors

import (
	"net/http"

	"workflowhr/internal/shared/apperror"
)

var (
	ErrDeductionNotFound = apperror.New(
		apperror.CodeNotFound,
		"deduction not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee_id",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"kind must be FLAT or PERCENT",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a non-negative decimal, and at most 100 for PERCENT",
		http.StatusBadRequest,
	)
)
