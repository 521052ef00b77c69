package classify

import (
	"context"
	"time"

	classifyerrors "github.com/control-room-cisa/server-planillero-sub000/internal/classify/errors"
)

// Schedule policy codes as stored on the employee.
const (
	PolicyFlexible = "FLEX9" // fixed 9h day with lunch, multi-day streaks
	PolicyRotating = "ROT12" // 12h rotating shift, day-local rules
)

// Config carries the engine tunables.
type Config struct {
	// LookbackDays bounds the backward walk when seeding a streak that was
	// already running at the start of a requested range.
	LookbackDays int
	// RolloverWeekday is the weekday whose night shift is shortened to six
	// hours under the rotating policy.
	RolloverWeekday time.Weekday
}

func DefaultConfig() Config {
	return Config{
		LookbackDays:    30,
		RolloverWeekday: time.Saturday,
	}
}

// Deps are the external collaborators every classifier consumes. The engine
// only ever reads through them; it owns no storage.
type Deps struct {
	Records  RecordSource
	Holidays HolidayCalendar
	Config   Config
}

// Classifier turns recorded attendance into pay-rate buckets for one policy.
type Classifier interface {
	SegmentDay(ctx context.Context, employeeID, date string) (DayDetail, error)
	ClassifyRange(ctx context.Context, employeeID, dateFrom, dateTo string) (RangeResult, error)
}

var policyBuilders = map[string]func(Deps) Classifier{
	PolicyFlexible: func(d Deps) Classifier { return NewFlexible(d) },
	PolicyRotating: func(d Deps) Classifier { return NewRotating(d) },
}

// KnownPolicy reports whether a policy code resolves to a classifier.
func KnownPolicy(code string) bool {
	_, ok := policyBuilders[code]
	return ok
}

// ForPolicy resolves an employee's policy code to a classifier instance.
func ForPolicy(code string, deps Deps) (Classifier, error) {
	if code == "" {
		return nil, classifyerrors.ErrPolicyNotAssigned
	}
	build, ok := policyBuilders[code]
	if !ok {
		return nil, classifyerrors.ErrUnknownPolicy.WithDetails(map[string]string{"policy_code": code})
	}
	return build(deps), nil
}
