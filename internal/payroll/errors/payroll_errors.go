package payrollerrors

import (
	"net/http"

	"workflowhr/internal/shared/apperror"
)

var (
	ErrSlipNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary slip not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrSlipAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a salary slip for this employee and period already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee_id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year a four digit year",
		http.StatusBadRequest,
	)
)
