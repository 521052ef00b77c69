package employeeerrors

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
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"email is already registered",
		http.StatusConflict,
	)
	ErrUnknownPolicyCode = apperror.New(
		apperror.CodeUnknownPolicy,
		"unknown schedule policy code",
		http.StatusBadRequest,
	)
)
