package errors

// APIError represents a structured API error with an HTTP status code.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

func Validation(msg string) *APIError {
	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: msg,
		Status:  400,
	}
}

func Internal(msg string) *APIError {
	return &APIError{
		Code:    "INTERNAL_ERROR",
		Message: msg,
		Status:  500,
	}
}
