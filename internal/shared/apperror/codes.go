package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Classification hard failures. These travel to the caller unchanged so
	// reporting clients can match on them.
	CodeInvalidRange          = "INVALID_RANGE"
	CodeUnbalancedDay         = "UNBALANCED_DAY"
	CodeUnknownPolicy         = "UNKNOWN_POLICY"
	CodePolicyNotAssigned     = "POLICY_NOT_ASSIGNED"
	CodeExtraWithinNormal     = "EXTRA_WITHIN_NORMAL"
	CodeLunchNotPermitted     = "LUNCH_NOT_PERMITTED"
	CodeNormalMinutesMismatch = "NORMAL_MINUTES_MISMATCH"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
