package models

import "time"

// DaySchedule holds the two slot assignments for a single calendar day.
// Each slot carries 0-2 agent IDs; an empty list marks an understaffed slot.
type DaySchedule struct {
	Day       int      `bson:"day" json:"day"`
	Weekday   int      `bson:"weekday" json:"weekday"`
	IsWeekend bool     `bson:"isWeekend" json:"isWeekend"`
	Slot1     []string `bson:"slot1" json:"slot1"`
	Slot2     []string `bson:"slot2" json:"slot2"`
}

// SlotIDs returns the agent IDs assigned to the given slot index.
func (d *DaySchedule) SlotIDs(slot int) []string {
	if slot == SlotEvening {
		return d.Slot2
	}
	return d.Slot1
}

// SetSlot replaces the agent IDs for the given slot index.
func (d *DaySchedule) SetSlot(slot int, ids []string) {
	if slot == SlotEvening {
		d.Slot2 = ids
		return
	}
	d.Slot1 = ids
}

// HasAgent reports whether the agent appears in either slot of the day.
func (d *DaySchedule) HasAgent(agentID string) bool {
	for _, id := range d.Slot1 {
		if id == agentID {
			return true
		}
	}
	for _, id := range d.Slot2 {
		if id == agentID {
			return true
		}
	}
	return false
}

// Timetable is the finished roster for one month: one DaySchedule per
// calendar day, in day order. It is replaced wholesale by a generation run
// and patched in place by direct assignment edits.
type Timetable struct {
	SyncKey     string        `bson:"syncKey" json:"-"`
	Month       string        `bson:"month" json:"month"` // "2006-01"
	Strategy    string        `bson:"strategy,omitempty" json:"strategy,omitempty"`
	Days        []DaySchedule `bson:"days" json:"days"`
	GeneratedAt time.Time     `bson:"generatedAt,omitempty" json:"generatedAt,omitempty"`
}

// DayByNumber returns the schedule entry for a 1-based day-of-month,
// or nil when the day is outside the month.
func (t *Timetable) DayByNumber(day int) *DaySchedule {
	if day < 1 || day > len(t.Days) {
		return nil
	}
	return &t.Days[day-1]
}

// UnderstaffedSlots lists every (day, slot) pair with no assigned agents.
// Understaffing is a reportable condition, not an error.
func (t *Timetable) UnderstaffedSlots() []SlotRef {
	var refs []SlotRef
	for _, d := range t.Days {
		if len(d.Slot1) == 0 {
			refs = append(refs, SlotRef{Day: d.Day, Slot: SlotMorning})
		}
		if len(d.Slot2) == 0 {
			refs = append(refs, SlotRef{Day: d.Day, Slot: SlotEvening})
		}
	}
	return refs
}

// SlotRef identifies a single slot within a month.
type SlotRef struct {
	Day  int `json:"day"`
	Slot int `json:"slot"`
}

// DirectEditRequest replaces the agent IDs of one slot, bypassing the
// availability checks. Admin escape hatch; headcount is deliberately not
// enforced here.
type DirectEditRequest struct {
	Day      int      `json:"day" binding:"required"`
	Slot     int      `json:"slot" binding:"required"`
	AgentIDs []string `json:"agentIds"`
}

// GenerateResponse is returned by the generation endpoint.
type GenerateResponse struct {
	Timetable    Timetable `json:"timetable"`
	Understaffed []SlotRef `json:"understaffed,omitempty"`
	Fallback     bool      `json:"fallback,omitempty"`
}
