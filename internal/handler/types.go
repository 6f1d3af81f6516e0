package handler

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type GreetResponse struct {
	Message string `json:"message"`
}

// CalculateRequest keeps every field untyped so that wrong JSON types reach
// validation instead of failing the decode.
type CalculateRequest struct {
	A         interface{} `json:"a"`
	B         interface{} `json:"b"`
	Operation interface{} `json:"operation"`
}

// CalculateResponse carries a nil Result for non-finite values, which JSON
// cannot represent.
type CalculateResponse struct {
	Result *float64 `json:"result"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
