package roster_test

import (
	"context"
	"testing"

	"rosterly/models"
	"rosterly/services/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullTime(id, name string) models.Agent {
	return models.Agent{ID: id, Name: name, Class: models.FullTime, Unavailable: map[int][]int{}}
}

func partTime(id, name string) models.Agent {
	return models.Agent{ID: id, Name: name, Class: models.PartTime, Unavailable: map[int][]int{}}
}

func mustCalendar(t *testing.T, year, month int) []models.CalendarDay {
	t.Helper()
	cal, err := roster.BuildCalendar(year, month)
	require.NoError(t, err)
	return cal
}

func TestGenerateScheduleFullAvailability(t *testing.T) {
	// 3 full-time agents, no unavailability, 28-day February: every slot
	// should be fully staffed with 2 agents and nothing understaffed.
	agents := []models.Agent{fullTime("a1", "Alex"), fullTime("a2", "Siti"), fullTime("a3", "Kumar")}
	cal := mustCalendar(t, 2026, 2)

	engine := roster.NewSeededScheduler(1)
	tt, err := engine.GenerateSchedule(context.Background(), agents, cal)
	require.NoError(t, err)
	require.Len(t, tt.Days, 28)

	for _, d := range tt.Days {
		assert.Len(t, d.Slot1, 2, "day %d slot 1", d.Day)
		assert.Len(t, d.Slot2, 2, "day %d slot 2", d.Day)
	}
	assert.Empty(t, tt.UnderstaffedSlots())
}

func TestGenerateScheduleRespectsInvariants(t *testing.T) {
	agents := []models.Agent{
		{ID: "M1001", Name: "Alex Tan", Class: models.FullTime, Unavailable: map[int][]int{2: {1, 2}, 5: {1}}},
		{ID: "F1002", Name: "Siti Nor", Class: models.PartTime, Unavailable: map[int][]int{1: {1, 2}, 3: {1, 2}}},
		{ID: "M1003", Name: "Kumar V", Class: models.FullTime, Unavailable: map[int][]int{7: {1, 2}}},
		{ID: "F1004", Name: "Mei Ling", Class: models.PartTime, Unavailable: map[int][]int{}},
	}
	cal := mustCalendar(t, 2026, 1)

	for seed := int64(0); seed < 10; seed++ {
		engine := roster.NewSeededScheduler(seed)
		tt, err := engine.GenerateSchedule(context.Background(), agents, cal)
		require.NoError(t, err)

		violations := roster.MandatoryViolations(roster.ValidateTimetable(agents, cal, tt))
		assert.Empty(t, violations, "seed %d", seed)
	}
}

func TestGenerateSchedulePartTimeCap(t *testing.T) {
	// A part-time agent with zero unavailability is eligible for up to 14
	// slots a week on raw availability; the cap must hold them to 2 per
	// week window.
	agents := []models.Agent{
		partTime("pt1", "Siti"),
		fullTime("ft1", "Alex"),
		fullTime("ft2", "Kumar"),
		fullTime("ft3", "Mei"),
	}
	cal := mustCalendar(t, 2026, 1)
	firstWeekday := cal[0].Weekday

	engine := roster.NewSeededScheduler(7)
	tt, err := engine.GenerateSchedule(context.Background(), agents, cal)
	require.NoError(t, err)

	perWindow := map[int]int{}
	for _, d := range tt.Days {
		window := (d.Day + firstWeekday - 1) / 7
		for _, slot := range []int{models.SlotMorning, models.SlotEvening} {
			for _, id := range d.SlotIDs(slot) {
				if id == "pt1" {
					perWindow[window]++
				}
			}
		}
	}
	for window, n := range perWindow {
		assert.LessOrEqual(t, n, 2, "window %d", window)
	}
}

func TestGenerateScheduleSingleEligibleAgent(t *testing.T) {
	// Day 10: everyone except one agent is unavailable for slot 1. The slot
	// gets exactly that one agent, with no error raised.
	agents := []models.Agent{
		fullTime("only", "Only One"),
		{ID: "out1", Class: models.FullTime, Unavailable: map[int][]int{10: {1}}},
		{ID: "out2", Class: models.FullTime, Unavailable: map[int][]int{10: {1}}},
	}
	cal := mustCalendar(t, 2026, 1)

	engine := roster.NewSeededScheduler(3)
	tt, err := engine.GenerateSchedule(context.Background(), agents, cal)
	require.NoError(t, err)

	day := tt.DayByNumber(10)
	require.NotNil(t, day)
	assert.Equal(t, []string{"only"}, day.Slot1)
}

func TestGenerateScheduleNoEligibleAgents(t *testing.T) {
	// Nobody can work day 1: both slots come back empty, reported as
	// understaffed, and the run still succeeds.
	agents := []models.Agent{
		{ID: "a1", Class: models.FullTime, Unavailable: map[int][]int{1: {1, 2}}},
	}
	cal := mustCalendar(t, 2026, 1)

	engine := roster.NewSeededScheduler(5)
	tt, err := engine.GenerateSchedule(context.Background(), agents, cal)
	require.NoError(t, err)

	day := tt.DayByNumber(1)
	require.NotNil(t, day)
	assert.Empty(t, day.Slot1)
	assert.Empty(t, day.Slot2)

	refs := tt.UnderstaffedSlots()
	assert.Contains(t, refs, models.SlotRef{Day: 1, Slot: models.SlotMorning})
	assert.Contains(t, refs, models.SlotRef{Day: 1, Slot: models.SlotEvening})
}

func TestGenerateScheduleHeadcountCap(t *testing.T) {
	// Six fully available agents: slots still take exactly two.
	agents := []models.Agent{
		fullTime("a1", ""), fullTime("a2", ""), fullTime("a3", ""),
		fullTime("a4", ""), fullTime("a5", ""), fullTime("a6", ""),
	}
	cal := mustCalendar(t, 2026, 3)

	engine := roster.NewSeededScheduler(11)
	tt, err := engine.GenerateSchedule(context.Background(), agents, cal)
	require.NoError(t, err)

	for _, d := range tt.Days {
		assert.Len(t, d.Slot1, 2)
		assert.Len(t, d.Slot2, 2)
	}
}

func TestGenerateScheduleDeterministicWithSeed(t *testing.T) {
	agents := []models.Agent{
		fullTime("a1", ""), fullTime("a2", ""), fullTime("a3", ""), partTime("p1", ""),
	}
	cal := mustCalendar(t, 2026, 1)

	first, err := roster.NewSeededScheduler(42).GenerateSchedule(context.Background(), agents, cal)
	require.NoError(t, err)
	second, err := roster.NewSeededScheduler(42).GenerateSchedule(context.Background(), agents, cal)
	require.NoError(t, err)

	assert.Equal(t, first.Days, second.Days)
}

func TestEmptyTimetable(t *testing.T) {
	cal := mustCalendar(t, 2026, 2)
	tt := roster.EmptyTimetable(cal)
	require.Len(t, tt.Days, 28)
	assert.Len(t, tt.UnderstaffedSlots(), 56)
}
