package roster

import "rosterly/models"

// windowStats tracks one agent's running assignments inside a single week
// window during a generation pass.
type windowStats struct {
	total    int
	weekdays int
	weekends int
}

// weekCounters holds the per-agent, per-window running totals the engine
// maintains while it walks the month. The oracle only reads them; the engine
// bumps them after each successful placement.
type weekCounters map[string]map[int]windowStats

func newWeekCounters(agents []models.Agent) weekCounters {
	c := make(weekCounters, len(agents))
	for _, a := range agents {
		c[a.ID] = make(map[int]windowStats)
	}
	return c
}

func (c weekCounters) get(agentID string, window int) windowStats {
	return c[agentID][window]
}

func (c weekCounters) record(agentID string, window int, weekend bool) {
	m := c[agentID]
	if m == nil {
		m = make(map[int]windowStats)
		c[agentID] = m
	}
	stats := m[window]
	stats.total++
	if weekend {
		stats.weekends++
	} else {
		stats.weekdays++
	}
	m[window] = stats
}

// canAssign is the availability oracle: the single source of truth for
// whether an agent may take a slot on a day, given the assignments made so
// far in the current run. Checks run in order; the first failure rejects.
//
// The weekend-only guard deliberately uses the running weekday/weekend
// counts accumulated from days already processed in this left-to-right pass,
// not a full-week lookahead. That matches the shipped behavior.
func canAssign(agent models.Agent, day models.CalendarDay, slot int, sched *models.DaySchedule, counters weekCounters, window int) bool {
	if agent.IsUnavailable(day.Day, slot) {
		return false
	}
	if sched != nil && sched.HasAgent(agent.ID) {
		return false
	}
	if agent.Class == models.PartTime {
		stats := counters.get(agent.ID, window)
		if stats.total >= 2 {
			return false
		}
		if day.IsWeekend && stats.weekends == 1 && stats.weekdays == 0 {
			return false
		}
	}
	return true
}
