package classifyerrors

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
	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidRange,
		"date_to must be on or after date_from",
		http.StatusBadRequest,
	)
	ErrUnknownPolicy = apperror.New(
		apperror.CodeUnknownPolicy,
		"unknown or unsupported schedule policy code",
		http.StatusUnprocessableEntity,
	)
	ErrPolicyNotAssigned = apperror.New(
		apperror.CodePolicyNotAssigned,
		"employee has no schedule policy assigned",
		http.StatusUnprocessableEntity,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrUnbalancedDay = apperror.New(
		apperror.CodeUnbalancedDay,
		"day buckets do not sum to 1440 minutes",
		http.StatusUnprocessableEntity,
	)
	ErrExtraWithinNormal = apperror.New(
		apperror.CodeExtraWithinNormal,
		"extra activity overlaps the entry/exit window",
		http.StatusUnprocessableEntity,
	)
	ErrLunchNotPermitted = apperror.New(
		apperror.CodeLunchNotPermitted,
		"lunch is not permitted under the rotating shift policy",
		http.StatusUnprocessableEntity,
	)
	ErrNormalMinutesMismatch = apperror.New(
		apperror.CodeNormalMinutesMismatch,
		"normal minutes do not match the expected shift minutes",
		http.StatusUnprocessableEntity,
	)
)

// UnbalancedDayDetail is attached to ErrUnbalancedDay so callers can render
// exactly which date broke the 1440-minute invariant and how.
type UnbalancedDayDetail struct {
	Date         string         `json:"date"`
	TotalMinutes int            `json:"total_minutes"`
	Buckets      map[string]int `json:"buckets"`
}

// MinuteRangeDetail pinpoints an offending minute range within a date.
type MinuteRangeDetail struct {
	Date  string `json:"date"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// MinutesMismatchDetail reports an expected/found minute discrepancy.
type MinutesMismatchDetail struct {
	Date     string `json:"date"`
	Expected int    `json:"expected_minutes"`
	Found    int    `json:"found_minutes"`
}
