package roster

import "errors"

var (
	// ErrInvalidMonth flags a malformed year/month input to the calendar builder.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrStaleOverride flags a manual override referencing a day or slot
	// outside the currently loaded month. Rejected with no partial mutation.
	ErrStaleOverride = errors.New("override references a day or slot outside the current month")

	// ErrAgentNotFound flags an operation against an unknown agent id.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrStrategyUnavailable flags a generation request for a strategy this
	// deployment cannot run, such as "ai" with no API key configured.
	ErrStrategyUnavailable = errors.New("strategy not available")
)
