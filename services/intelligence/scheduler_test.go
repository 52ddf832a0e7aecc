package intelligence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"rosterly/models"
	"rosterly/services/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func testAgents() []models.Agent {
	return []models.Agent{
		{ID: "M1001", Name: "Alex Tan", Class: models.FullTime, Unavailable: map[int][]int{2: {1, 2}}},
		{ID: "F1002", Name: "Siti Nor", Class: models.PartTime, Unavailable: map[int][]int{}},
	}
}

func testCalendar(t *testing.T) []models.CalendarDay {
	t.Helper()
	cal, err := roster.BuildCalendar(2026, 2)
	require.NoError(t, err)
	return cal
}

func TestAISchedulerAcceptsValidResponse(t *testing.T) {
	stub := &stubGenerator{
		response: "```json\n[{\"day\":1,\"slot1\":[\"M1001\"],\"slot2\":[\"F1002\"]}]\n```",
	}
	s := &AIScheduler{Client: stub}

	tt, err := s.GenerateSchedule(context.Background(), testAgents(), testCalendar(t))
	require.NoError(t, err)
	require.Len(t, tt.Days, 28)
	assert.Equal(t, []string{"M1001"}, tt.Days[0].Slot1)
	assert.Equal(t, []string{"F1002"}, tt.Days[0].Slot2)
	// Days the model left out stay empty instead of failing the run.
	assert.Empty(t, tt.Days[1].Slot1)

	// The prompt carries the directory and the output contract.
	assert.Contains(t, stub.prompt, "M1001")
	assert.Contains(t, stub.prompt, "JSON array")
}

func TestAISchedulerRejectsTransportError(t *testing.T) {
	s := &AIScheduler{Client: &stubGenerator{err: errors.New("deadline exceeded")}}
	_, err := s.GenerateSchedule(context.Background(), testAgents(), testCalendar(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ai schedule request")
}

func TestAISchedulerRejectsMalformedJSON(t *testing.T) {
	s := &AIScheduler{Client: &stubGenerator{response: "I think the best schedule would be..."}}
	_, err := s.GenerateSchedule(context.Background(), testAgents(), testCalendar(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed JSON")
}

func TestAISchedulerRejectsInvariantViolations(t *testing.T) {
	tests := map[string]string{
		"double booking": `[{"day":1,"slot1":["M1001"],"slot2":["M1001"]}]`,
		"unavailable":    `[{"day":2,"slot1":["M1001"],"slot2":[]}]`,
		"headcount":      `[{"day":1,"slot1":["M1001","F1002","X9 9"],"slot2":[]}]`,
		"weekly cap": `[
			{"day":2,"slot1":["F1002"],"slot2":[]},
			{"day":3,"slot1":["F1002"],"slot2":[]},
			{"day":4,"slot1":["F1002"],"slot2":[]}
		]`,
	}

	for name, response := range tests {
		t.Run(name, func(t *testing.T) {
			s := &AIScheduler{Client: &stubGenerator{response: response}}
			_, err := s.GenerateSchedule(context.Background(), testAgents(), testCalendar(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invariant")
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"no fence":        {in: `[{"day":1}]`, want: `[{"day":1}]`},
		"plain fence":     {in: "```\n[1]\n```", want: "[1]"},
		"json fence":      {in: "```json\n[1]\n```", want: "[1]"},
		"padded":          {in: "  ```json\n[1]\n```  ", want: "[1]"},
		"prose untouched": {in: "no schedule today", want: "no schedule today"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripCodeFences(tc.in))
		})
	}
}

func TestParseTimetableIgnoresUnknownDays(t *testing.T) {
	cal := testCalendar(t)
	raw := fmt.Sprintf(`[{"day":1,"slot1":["a"],"slot2":[]},{"day":%d,"slot1":["b"],"slot2":[]}]`, len(cal)+5)

	tt, err := parseTimetable(raw, cal)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tt.Days[0].Slot1)
	require.Len(t, tt.Days, len(cal))
}
