package models

// Slot indices for the two fixed daily work windows.
const (
	SlotMorning = 1
	SlotEvening = 2
)

// CalendarDay is one day of the target month. Weekday uses the 0=Sunday
// convention; both derived fields are fixed at build time.
type CalendarDay struct {
	Day       int  `json:"day"`
	Weekday   int  `json:"weekday"`
	IsWeekend bool `json:"isWeekend"`
}
