package attendanceerrors

import (
	"net/http"

	"github.com/control-room-cisa/server-planillero-sub000/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timestamp, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrExtraRequiresInterval = apperror.New(
		apperror.CodeInvalidInput,
		"extra activities require an explicit start/end interval",
		http.StatusBadRequest,
	)
	ErrEntryExitRequired = apperror.New(
		apperror.CodeInvalidInput,
		"entry_at and exit_at must both be set or both be empty",
		http.StatusBadRequest,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrConcurrentUpsert = apperror.New(
		apperror.CodeConflict,
		"attendance record was modified concurrently, retry",
		http.StatusConflict,
	)
)
