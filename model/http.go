package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
