package dto

// ErrorResponseDTO is the shared error response shape.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"invalid_token"`
}

// MessageResponseDTO is the shared plain-message response shape.
type MessageResponseDTO struct {
	Message string `json:"message" example:"entry deleted"`
}

// AudioURLResponseDTO carries a signed, time-limited playback URL.
type AudioURLResponseDTO struct {
	URL string `json:"url"`
}
