package dto

// ErrorResponse is the body of every non-2xx response.
// Recorded transfer failures also carry the committed record's identifiers.
type ErrorResponse struct {
	ErrorCode      string `json:"errorCode" example:"TRX-400"`
	Message        string `json:"message" example:"insufficient balance"`
	TransactionID  *int64 `json:"transactionId,omitempty"`
	Status         string `json:"status,omitempty" example:"FAILED"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}
