package roster

import (
	"context"
	"math/rand"
	"time"

	"rosterly/models"
)

// GreedyScheduler is the local assignment engine. It walks the calendar in
// day order and fills each slot with up to two eligible agents, shuffling
// the candidate list to avoid systematic bias toward directory order. It
// never backtracks: scheduling is a fast, re-runnable draft that a manager
// reviews and hand-corrects, not a hard optimization problem.
type GreedyScheduler struct {
	// Rand is the tie-breaking source. Nil means time-seeded; tests inject
	// a fixed seed to make runs deterministic.
	Rand *rand.Rand
}

// NewGreedyScheduler returns an engine with a time-seeded random source.
func NewGreedyScheduler() *GreedyScheduler {
	return &GreedyScheduler{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededScheduler returns an engine with a fixed seed, for deterministic runs.
func NewSeededScheduler(seed int64) *GreedyScheduler {
	return &GreedyScheduler{Rand: rand.New(rand.NewSource(seed))}
}

const slotHeadcount = 2

// GenerateSchedule produces a fresh timetable covering every calendar day.
// A slot with no eligible agents is emitted empty (understaffed) rather than
// failing the run.
func (g *GreedyScheduler) GenerateSchedule(_ context.Context, agents []models.Agent, calendar []models.CalendarDay) (models.Timetable, error) {
	rng := g.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	tt := models.Timetable{Days: make([]models.DaySchedule, 0, len(calendar))}
	if len(calendar) == 0 {
		return tt, nil
	}

	firstWeekday := calendar[0].Weekday
	counters := newWeekCounters(agents)

	for _, day := range calendar {
		window := weekWindow(day.Day, firstWeekday)
		sched := models.DaySchedule{
			Day:       day.Day,
			Weekday:   day.Weekday,
			IsWeekend: day.IsWeekend,
			Slot1:     []string{},
			Slot2:     []string{},
		}

		for _, slot := range []int{models.SlotMorning, models.SlotEvening} {
			eligible := make([]models.Agent, 0, len(agents))
			for _, a := range agents {
				if canAssign(a, day, slot, &sched, counters, window) {
					eligible = append(eligible, a)
				}
			}
			rng.Shuffle(len(eligible), func(i, j int) {
				eligible[i], eligible[j] = eligible[j], eligible[i]
			})

			picked := make([]string, 0, slotHeadcount)
			for _, a := range eligible {
				if len(picked) == slotHeadcount {
					break
				}
				picked = append(picked, a.ID)
				counters.record(a.ID, window, day.IsWeekend)
			}
			sched.SetSlot(slot, picked)
		}

		tt.Days = append(tt.Days, sched)
	}

	tt.GeneratedAt = time.Now().UTC()
	return tt, nil
}

// EmptyTimetable scaffolds a month with both slots empty on every day. Used
// before any generation has run and as the fallback when the AI strategy
// fails.
func EmptyTimetable(calendar []models.CalendarDay) models.Timetable {
	days := make([]models.DaySchedule, len(calendar))
	for i, d := range calendar {
		days[i] = models.DaySchedule{
			Day:       d.Day,
			Weekday:   d.Weekday,
			IsWeekend: d.IsWeekend,
			Slot1:     []string{},
			Slot2:     []string{},
		}
	}
	return models.Timetable{Days: days}
}
