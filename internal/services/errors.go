package services

// FieldError is a single inline form error keyed by field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type APIError struct {
	Status  int          `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (a *APIError) Error() string {
	return a.Message
}
