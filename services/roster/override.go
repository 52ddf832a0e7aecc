package roster

import (
	"fmt"

	"rosterly/models"
)

// ToggleUnavailability flips membership of slot in the agent's unavailable
// set for the given day and returns the updated directory. Pure: the input
// slice is not mutated. When the day's set empties, the day key is removed
// so the map stays sparse, and an emptied map collapses to nil. Flipping
// twice returns the original directory.
//
// This mutates the directory only; it never retroactively removes the agent
// from an already published timetable. Reconciling the two is a deliberate
// manual step.
func ToggleUnavailability(agents []models.Agent, agentID string, day, slot int) ([]models.Agent, error) {
	if day < 1 || day > 31 || (slot != models.SlotMorning && slot != models.SlotEvening) {
		return nil, fmt.Errorf("%w: day %d slot %d", ErrStaleOverride, day, slot)
	}

	idx := -1
	for i, a := range agents {
		if a.ID == agentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, agentID)
	}

	updated := make([]models.Agent, len(agents))
	copy(updated, agents)

	agent := updated[idx]
	next := make(map[int][]int, len(agent.Unavailable))
	for d, slots := range agent.Unavailable {
		next[d] = append([]int(nil), slots...)
	}

	current := next[day]
	found := false
	filtered := current[:0:0]
	for _, s := range current {
		if s == slot {
			found = true
			continue
		}
		filtered = append(filtered, s)
	}
	if !found {
		filtered = append(filtered, slot)
	}
	if len(filtered) == 0 {
		delete(next, day)
	} else {
		next[day] = filtered
	}

	if len(next) == 0 {
		next = nil
	}
	agent.Unavailable = next
	updated[idx] = agent
	return updated, nil
}

// DirectAssignmentEdit replaces the agent IDs of one slot in the timetable,
// bypassing the availability oracle. Admin escape hatch for judgment calls;
// the weekly cap is intentionally not enforced here, the UI warns instead.
// Pure: returns a copy with only the targeted slot changed.
func DirectAssignmentEdit(tt models.Timetable, day, slot int, agentIDs []string) (models.Timetable, error) {
	if slot != models.SlotMorning && slot != models.SlotEvening {
		return models.Timetable{}, fmt.Errorf("%w: slot %d", ErrStaleOverride, slot)
	}
	if day < 1 || day > len(tt.Days) {
		return models.Timetable{}, fmt.Errorf("%w: day %d", ErrStaleOverride, day)
	}

	out := tt
	out.Days = make([]models.DaySchedule, len(tt.Days))
	copy(out.Days, tt.Days)

	if agentIDs == nil {
		agentIDs = []string{}
	}
	out.Days[day-1].SetSlot(slot, agentIDs)
	return out, nil
}
