package api

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents a non JSON-RPC error body
type ErrorResponse struct {
	Error string `json:"error"`
}
