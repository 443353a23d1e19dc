package calendareventerrors

import (
	"net/http"

	"workflowhr/internal/shared/apperror"
)

var (
	ErrEventNotFound = apperror.New(
		apperror.CodeNotFound,
		"calendar event not found",
		http.StatusNotFound,
	)
	ErrInvalidEventDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid event_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
