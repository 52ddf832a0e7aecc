package roster

import (
	"context"

	"rosterly/models"
)

// Scheduler produces a complete timetable for a month from the current
// agent directory. Implementations: the local greedy engine and the
// Gemini-delegated strategy in services/intelligence.
type Scheduler interface {
	GenerateSchedule(ctx context.Context, agents []models.Agent, calendar []models.CalendarDay) (models.Timetable, error)
}

// RosterService is the orchestration surface the HTTP handlers talk to.
type RosterService interface {
	ListAgents(ctx context.Context, syncKey string) ([]models.Agent, error)
	CreateAgent(ctx context.Context, syncKey string, req models.CreateAgentRequest) (*models.Agent, error)
	DeleteAgent(ctx context.Context, syncKey, agentID string) error
	ToggleUnavailability(ctx context.Context, syncKey, agentID, month string, day, slot int) (*models.Agent, error)

	GetTimetable(ctx context.Context, syncKey, month string) (*models.Timetable, error)
	Generate(ctx context.Context, syncKey, month, strategy string) (*models.GenerateResponse, error)
	DirectAssignmentEdit(ctx context.Context, syncKey, month string, day, slot int, agentIDs []string) (*models.Timetable, error)
	Violations(ctx context.Context, syncKey, month string) ([]Violation, error)
}
