package roster

import (
	"fmt"

	"rosterly/models"
)

// Rule names reported by the validator.
const (
	RuleHeadcount     = "headcount"
	RuleDoubleBooking = "double-booking"
	RuleUnavailable   = "unavailable"
	RuleWeeklyCap     = "weekly-cap"
	RuleWeekendOnly   = "weekend-only"
)

// Violation describes one broken scheduling rule in a timetable.
type Violation struct {
	Day     int    `json:"day"`
	Slot    int    `json:"slot,omitempty"`
	AgentID string `json:"agentId,omitempty"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Mandatory reports whether the violation breaks a hard invariant. The
// weekend-only fairness rule is a heuristic and stays advisory.
func (v Violation) Mandatory() bool {
	return v.Rule != RuleWeekendOnly
}

// ValidateTimetable checks a timetable against the scheduling rules:
// headcount bounds, same-day double booking, explicit unavailability, the
// part-time weekly cap, and the advisory weekend-only fairness rule.
// External (AI-produced) timetables must pass every mandatory rule before
// they are accepted.
func ValidateTimetable(agents []models.Agent, calendar []models.CalendarDay, tt models.Timetable) []Violation {
	var violations []Violation

	byID := make(map[string]models.Agent, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}

	firstWeekday := 0
	if len(calendar) > 0 {
		firstWeekday = calendar[0].Weekday
	}

	type windowKey struct {
		agentID string
		window  int
	}
	windowTotals := make(map[windowKey]*windowStats)

	for _, d := range tt.Days {
		window := weekWindow(d.Day, firstWeekday)

		for _, slot := range []int{models.SlotMorning, models.SlotEvening} {
			ids := d.SlotIDs(slot)
			if len(ids) > 2 {
				violations = append(violations, Violation{
					Day:     d.Day,
					Slot:    slot,
					Rule:    RuleHeadcount,
					Message: fmt.Sprintf("slot has %d agents, maximum is 2", len(ids)),
				})
			}
			for _, id := range ids {
				agent, ok := byID[id]
				if !ok {
					violations = append(violations, Violation{
						Day:     d.Day,
						Slot:    slot,
						AgentID: id,
						Rule:    RuleUnavailable,
						Message: "assigned agent is not in the directory",
					})
					continue
				}
				if agent.IsUnavailable(d.Day, slot) {
					violations = append(violations, Violation{
						Day:     d.Day,
						Slot:    slot,
						AgentID: id,
						Rule:    RuleUnavailable,
						Message: fmt.Sprintf("agent marked day %d slot %d unavailable", d.Day, slot),
					})
				}
				if agent.Class == models.PartTime {
					key := windowKey{agentID: id, window: window}
					stats := windowTotals[key]
					if stats == nil {
						stats = &windowStats{}
						windowTotals[key] = stats
					}
					stats.total++
					if d.IsWeekend {
						stats.weekends++
					} else {
						stats.weekdays++
					}
				}
			}
		}

		for _, id := range d.Slot1 {
			for _, other := range d.Slot2 {
				if id == other {
					violations = append(violations, Violation{
						Day:     d.Day,
						AgentID: id,
						Rule:    RuleDoubleBooking,
						Message: fmt.Sprintf("agent assigned to both slots on day %d", d.Day),
					})
				}
			}
		}
	}

	daysByWindow := make(map[int][]models.CalendarDay)
	for _, cd := range calendar {
		w := weekWindow(cd.Day, firstWeekday)
		daysByWindow[w] = append(daysByWindow[w], cd)
	}

	for key, stats := range windowTotals {
		if stats.total > 2 {
			violations = append(violations, Violation{
				AgentID: key.agentID,
				Rule:    RuleWeeklyCap,
				Message: fmt.Sprintf("part-time agent has %d shifts in week window %d, cap is 2", stats.total, key.window),
			})
		}
		// Advisory: flag weekend-only windows, but only when a weekday slot
		// in that window was actually open to the agent.
		if stats.weekdays == 0 && stats.weekends > 0 && hasWeekdayOption(byID[key.agentID], daysByWindow[key.window]) {
			violations = append(violations, Violation{
				AgentID: key.agentID,
				Rule:    RuleWeekendOnly,
				Message: fmt.Sprintf("part-time agent works only weekend shifts in week window %d", key.window),
			})
		}
	}

	return violations
}

// hasWeekdayOption reports whether the agent was not fully unavailable on
// at least one weekday slot among the given days.
func hasWeekdayOption(agent models.Agent, days []models.CalendarDay) bool {
	for _, d := range days {
		if d.IsWeekend {
			continue
		}
		if !agent.IsUnavailable(d.Day, models.SlotMorning) || !agent.IsUnavailable(d.Day, models.SlotEvening) {
			return true
		}
	}
	return false
}

// MandatoryViolations filters the validator output down to hard invariants.
func MandatoryViolations(violations []Violation) []Violation {
	var out []Violation
	for _, v := range violations {
		if v.Mandatory() {
			out = append(out, v)
		}
	}
	return out
}
