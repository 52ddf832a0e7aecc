// File: services/intelligence/scheduler.go
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"rosterly/models"
	"rosterly/services/roster"
)

// ContentGenerator is the slice of the Gemini client the scheduler needs.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// AIScheduler delegates timetable generation to a text-generation service
// constrained to emit the same timetable shape as the local engine. The
// external result is never trusted: it is unmarshalled, normalized against
// the calendar, and post-validated against the hard scheduling invariants
// before acceptance. Any failure is returned as an error; the roster
// service handles the fallback.
type AIScheduler struct {
	Client ContentGenerator
}

// NewAIScheduler builds a Gemini-backed scheduler.
func NewAIScheduler(apiKey string) *AIScheduler {
	return &AIScheduler{Client: NewGeminiClient(apiKey)}
}

// aiDay is the wire shape the model is asked to emit, one entry per day.
type aiDay struct {
	Day   int      `json:"day"`
	Slot1 []string `json:"slot1"`
	Slot2 []string `json:"slot2"`
}

func (s *AIScheduler) GenerateSchedule(ctx context.Context, agents []models.Agent, calendar []models.CalendarDay) (models.Timetable, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	prompt := buildPrompt(agents, calendar)
	raw, err := s.Client.GenerateContent(ctx, prompt)
	if err != nil {
		return models.Timetable{}, fmt.Errorf("ai schedule request: %w", err)
	}

	tt, err := parseTimetable(raw, calendar)
	if err != nil {
		return models.Timetable{}, fmt.Errorf("ai schedule response: %w", err)
	}

	if violations := roster.MandatoryViolations(roster.ValidateTimetable(agents, calendar, tt)); len(violations) > 0 {
		return models.Timetable{}, fmt.Errorf("ai schedule violates %d invariants (first: %s)",
			len(violations), violations[0].Message)
	}

	tt.GeneratedAt = time.Now().UTC()
	return tt, nil
}

// buildPrompt phrases the scheduling constraints for the model and pins the
// output to a strict JSON array.
func buildPrompt(agents []models.Agent, calendar []models.CalendarDay) string {
	var sb strings.Builder
	sb.WriteString("You are a shift scheduler for a retail agent team. ")
	sb.WriteString("Assign agents to two daily slots (1 = morning, 2 = evening) for every day below.\n\n")

	sb.WriteString("Agents:\n")
	for _, a := range agents {
		sb.WriteString(fmt.Sprintf("- id=%s name=%s class=%s", a.ID, a.Name, a.Class))
		if len(a.Unavailable) > 0 {
			data, _ := json.Marshal(a.Unavailable)
			sb.WriteString(fmt.Sprintf(" unavailable=%s", data))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nDays (day/weekday, weekday 0=Sunday):\n")
	for _, d := range calendar {
		sb.WriteString(fmt.Sprintf("%d/%d ", d.Day, d.Weekday))
	}

	sb.WriteString("\n\nRules:\n")
	sb.WriteString("1. Each slot gets 1-2 agent ids; leave a slot empty only when nobody is eligible.\n")
	sb.WriteString("2. Never assign an agent to a day/slot listed in their unavailable map.\n")
	sb.WriteString("3. Never assign an agent to both slots of the same day.\n")
	sb.WriteString("4. PT agents work at most 2 slots per 7-day week window, counted from the month's first weekday.\n")
	sb.WriteString("5. Prefer giving PT agents at least one weekday shift before any weekend shift in a week.\n")
	sb.WriteString("\nRespond with ONLY a JSON array, no prose, no markdown, one entry per day:\n")
	sb.WriteString(`[{"day":1,"slot1":["id","id"],"slot2":["id"]}, ...]`)
	return sb.String()
}

// parseTimetable decodes the model output into a timetable aligned to the
// calendar. Unknown days are ignored, missing days stay empty; everything
// else is left to the invariant validator.
func parseTimetable(raw string, calendar []models.CalendarDay) (models.Timetable, error) {
	cleaned := stripCodeFences(raw)

	var days []aiDay
	if err := json.Unmarshal([]byte(cleaned), &days); err != nil {
		return models.Timetable{}, fmt.Errorf("malformed JSON: %w", err)
	}

	byDay := make(map[int]aiDay, len(days))
	for _, d := range days {
		byDay[d.Day] = d
	}

	tt := roster.EmptyTimetable(calendar)
	for i, cd := range calendar {
		entry, ok := byDay[cd.Day]
		if !ok {
			continue
		}
		if entry.Slot1 != nil {
			tt.Days[i].Slot1 = entry.Slot1
		}
		if entry.Slot2 != nil {
			tt.Days[i].Slot2 = entry.Slot2
		}
	}
	return tt, nil
}

// stripCodeFences removes a surrounding markdown code fence, which models
// emit even when told not to.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
