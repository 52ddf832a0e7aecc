package models

// EmploymentClass distinguishes full-time agents from part-time agents.
// Only part-time agents are subject to the rolling weekly shift cap.
type EmploymentClass string

const (
	FullTime EmploymentClass = "FT"
	PartTime EmploymentClass = "PT"
)

// Agent represents one member of the shift roster.
// Unavailable maps day-of-month (1..31) to the slot indices (1 = morning,
// 2 = evening) the agent cannot work. The map is sparse: a missing day means
// the agent is fully available that day. Last write wins per record.
type Agent struct {
	ID          string          `bson:"id" json:"id"`
	SyncKey     string          `bson:"syncKey" json:"-"`
	Name        string          `bson:"name" json:"name"`
	Class       EmploymentClass `bson:"class" json:"class"`
	Unavailable map[int][]int   `bson:"unavailable,omitempty" json:"unavailable,omitempty"`
}

// IsUnavailable reports whether the agent has explicitly marked the given
// day/slot as unavailable.
func (a *Agent) IsUnavailable(day, slot int) bool {
	for _, s := range a.Unavailable[day] {
		if s == slot {
			return true
		}
	}
	return false
}

// CreateAgentRequest is the payload for registering a new agent.
type CreateAgentRequest struct {
	Name  string          `json:"name" binding:"required"`
	Class EmploymentClass `json:"class" binding:"required,oneof=FT PT"`
}

// ToggleUnavailabilityRequest flips one (day, slot) unavailability entry.
type ToggleUnavailabilityRequest struct {
	Month string `json:"month" binding:"required"`
	Day   int    `json:"day" binding:"required"`
	Slot  int    `json:"slot" binding:"required"`
}
