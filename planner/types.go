package planner

import "time"

// TripRequest carries the four form fields exactly as the user typed them.
// Values are interpolated into prompts verbatim; DayCount stays free text
// ("5", "a long weekend") and is never parsed.
type TripRequest struct {
	Destination string `json:"destination" validate:"required"`
	DayCount    string `json:"day_count" validate:"required"`
	Interests   string `json:"interests"`
	Guardrails  string `json:"guardrails"`
}

// Itinerary is the live result of one successful generation.
type Itinerary struct {
	Markdown    string    `json:"markdown"`
	Summary     string    `json:"summary"`
	Outline     []string  `json:"outline"`
	ModelUsed   string    `json:"model_used"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ModelAttempt records one model try during fallback, in the order tried.
type ModelAttempt struct {
	Model string
	Text  string
	Err   error
}
