package roster_test

import (
	"testing"

	"rosterly/models"
	"rosterly/services/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rulesOf(violations []roster.Violation) []string {
	rules := make([]string, 0, len(violations))
	for _, v := range violations {
		rules = append(rules, v.Rule)
	}
	return rules
}

func TestValidateTimetableClean(t *testing.T) {
	agents := []models.Agent{fullTime("a1", ""), fullTime("a2", ""), partTime("p1", "")}
	cal := mustCalendar(t, 2026, 1)

	tt := roster.EmptyTimetable(cal)
	tt.Days[0].Slot1 = []string{"a1", "a2"}
	tt.Days[0].Slot2 = []string{"p1"}

	assert.Empty(t, roster.ValidateTimetable(agents, cal, tt))
}

func TestValidateTimetableViolations(t *testing.T) {
	cal := mustCalendar(t, 2026, 1) // first day Thursday, weekday offset 4

	tests := map[string]struct {
		agents   []models.Agent
		mutate   func(tt *models.Timetable)
		wantRule string
	}{
		"headcount exceeded": {
			agents: []models.Agent{fullTime("a1", ""), fullTime("a2", ""), fullTime("a3", "")},
			mutate: func(tt *models.Timetable) {
				tt.Days[0].Slot1 = []string{"a1", "a2", "a3"}
			},
			wantRule: roster.RuleHeadcount,
		},
		"double booking": {
			agents: []models.Agent{fullTime("a1", "")},
			mutate: func(tt *models.Timetable) {
				tt.Days[4].Slot1 = []string{"a1"}
				tt.Days[4].Slot2 = []string{"a1"}
			},
			wantRule: roster.RuleDoubleBooking,
		},
		"assigned while unavailable": {
			agents: []models.Agent{
				{ID: "a1", Class: models.FullTime, Unavailable: map[int][]int{3: {2}}},
			},
			mutate: func(tt *models.Timetable) {
				tt.Days[2].Slot2 = []string{"a1"}
			},
			wantRule: roster.RuleUnavailable,
		},
		"unknown agent id": {
			agents: []models.Agent{fullTime("a1", "")},
			mutate: func(tt *models.Timetable) {
				tt.Days[0].Slot1 = []string{"ghost"}
			},
			wantRule: roster.RuleUnavailable,
		},
		"part-time weekly cap": {
			agents: []models.Agent{partTime("p1", "")},
			mutate: func(tt *models.Timetable) {
				// Days 4, 5, 6 share week window 1 with offset 4.
				tt.Days[3].Slot1 = []string{"p1"}
				tt.Days[4].Slot1 = []string{"p1"}
				tt.Days[5].Slot1 = []string{"p1"}
			},
			wantRule: roster.RuleWeeklyCap,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tt := roster.EmptyTimetable(cal)
			tc.mutate(&tt)
			violations := roster.ValidateTimetable(tc.agents, cal, tt)
			require.NotEmpty(t, violations)
			assert.Contains(t, rulesOf(violations), tc.wantRule)

			for _, v := range violations {
				if v.Rule == tc.wantRule {
					assert.True(t, v.Mandatory())
				}
			}
		})
	}
}

func TestValidateTimetableWeekendOnlyAdvisory(t *testing.T) {
	cal := mustCalendar(t, 2026, 1)
	agents := []models.Agent{partTime("p1", "")}

	// January 2026: week window 1 spans days 4-10, with day 4 a Sunday and
	// day 10 a Saturday; weekdays 5-9 are open to the agent.
	tt := roster.EmptyTimetable(cal)
	tt.Days[3].Slot1 = []string{"p1"}
	tt.Days[9].Slot1 = []string{"p1"}

	violations := roster.ValidateTimetable(agents, cal, tt)
	require.NotEmpty(t, violations)

	var weekendOnly *roster.Violation
	for i := range violations {
		if violations[i].Rule == roster.RuleWeekendOnly {
			weekendOnly = &violations[i]
		}
	}
	require.NotNil(t, weekendOnly)
	assert.False(t, weekendOnly.Mandatory())
	assert.Empty(t, roster.MandatoryViolations([]roster.Violation{*weekendOnly}))
}

func TestValidateTimetableWeekendOnlySkippedWhenNoWeekdayOption(t *testing.T) {
	cal := mustCalendar(t, 2026, 1)

	// The agent blocked out every weekday of window 1: taking both weekend
	// shifts is then their only option and must not be flagged.
	blocked := map[int][]int{}
	for d := 5; d <= 9; d++ {
		blocked[d] = []int{1, 2}
	}
	agents := []models.Agent{{ID: "p1", Class: models.PartTime, Unavailable: blocked}}

	tt := roster.EmptyTimetable(cal)
	tt.Days[3].Slot1 = []string{"p1"}
	tt.Days[9].Slot1 = []string{"p1"}

	assert.NotContains(t, rulesOf(roster.ValidateTimetable(agents, cal, tt)), roster.RuleWeekendOnly)
}
