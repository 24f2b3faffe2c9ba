package dto

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	Answer string `json:"answer"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
