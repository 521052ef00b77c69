package classify

import "github.com/control-room-cisa/server-planillero-sub000/internal/segment"

// Tier is the pay bucket an extra slot resolves to.
type Tier int

const (
	Tier25 Tier = iota
	Tier50
	Tier75
	Tier100
)

// Floor is the minimum surcharge multiplier locked in for the current streak,
// in basis points over 100 (0, 125 or 150). It never decreases while the
// streak lives.
type Floor int

const (
	FloorNone  Floor = 0
	FloorDay   Floor = 125
	FloorNight Floor = 150
)

// MixedTierThresholdMinutes is how many 50%-tier minutes a streak must have
// accumulated before the 75% mixed tier can open.
const MixedTierThresholdMinutes = 180

// StreakState is the carry-over between extra slots, threaded as a value from
// day to day so midnight never interrupts a running streak. A FREE segment is
// the only thing that resets it.
type StreakState struct {
	AccruedMinutes     int   // extra minutes since the last FREE segment
	Tier50Minutes      int   // minutes specifically paid at the 50% tier
	SeenDaytime        bool  // streak has touched the 05:00-19:00 band
	SeenNighttime      bool  // streak has touched the night band
	Floor              Floor // current locked-in floor
	HolidayCarryActive bool  // a holiday-paid slot occurred and no FREE since
	BlockMixedTier     bool  // day has no contractual window; 75% disabled
}

// Reset clears the streak after a FREE segment. BlockMixedTier is a property
// of the calendar day, not of the streak, so it survives.
func (s StreakState) Reset() StreakState {
	return StreakState{BlockMixedTier: s.BlockMixedTier}
}

// mixedEligible is evaluated against the state as it stood before the current
// slot: a streak escalates one slot after crossing the threshold, never on
// the slot that crosses it.
func (s StreakState) mixedEligible() bool {
	return !s.BlockMixedTier && s.SeenDaytime && s.Tier50Minutes >= MixedTierThresholdMinutes
}

func isDaytimeSlot(startMinute int) bool {
	return startMinute >= segment.DayStartMinute && startMinute < segment.NightStartMinute
}

// classifyExtraSlot folds one 15-minute extra slot into the streak and
// returns the successor state plus the tier the slot is paid at.
//
// Holiday and contractual-free-day slots always pay 100%, but still raise the
// floor exactly as an ordinary slot would, so a streak running past midnight
// into a working day keeps the elevated floor (the holiday carry).
func classifyExtraSlot(s StreakState, slotStart int, holidayOrFree bool) (StreakState, Tier) {
	daytime := isDaytimeSlot(slotStart)

	slotFloor := FloorNight
	if daytime {
		slotFloor = FloorDay
	}

	escalate := s.mixedEligible()

	if slotFloor > s.Floor {
		s.Floor = slotFloor
	}
	if daytime {
		s.SeenDaytime = true
	} else {
		s.SeenNighttime = true
	}
	s.AccruedMinutes += segment.SlotMinutes

	if holidayOrFree {
		s.HolidayCarryActive = true
		return s, Tier100
	}

	if escalate {
		return s, Tier75
	}
	if s.Floor == FloorNight {
		s.Tier50Minutes += segment.SlotMinutes
		return s, Tier50
	}
	return s, Tier25
}
