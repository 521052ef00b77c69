package scheduleerrors

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
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrMissingRange = apperror.New(
		apperror.CodeInvalidInput,
		"from and to query parameters are required",
		http.StatusBadRequest,
	)
)
