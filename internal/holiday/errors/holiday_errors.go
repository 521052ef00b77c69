package holidayerrors

import (
	"net/http"

	"github.com/control-room-cisa/server-planillero-sub000/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"date_from must be before or equal date_to",
		http.StatusBadRequest,
	)
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
)
