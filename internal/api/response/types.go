package response

// DeleteResponse confirms a deletion
type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// HealthResponse reports service and storage health
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// LoginResponse is returned to JSON clients after a successful login
type LoginResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect"`
	Username string `json:"username"`
}
