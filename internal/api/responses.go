package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// BookingFailure is the structured rejection shape of the booking engine.
// ErrorCode is one of the validator codes or PERSISTENCE_CONFLICT; Details
// carries enough context (conflicting sessions, counts, limits) for the
// caller to render an explanation without a second round-trip.
type BookingFailure struct {
	Success      bool                   `json:"success" example:"false"`
	ErrorCode    string                 `json:"error_code" example:"TRAINER_NOT_AVAILABLE"`
	ErrorMessage string                 `json:"error_message" example:"trainer already has a session in this interval"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

type BookingSuccess struct {
	Success   bool   `json:"success" example:"true"`
	SessionID string `json:"session_id" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	Message   string `json:"message" example:"session booked"`
}
