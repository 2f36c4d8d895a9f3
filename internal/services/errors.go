package services

// Stable machine-checkable error kinds. Handlers map these onto HTTP
// responses; clients branch on Code, not on Message.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeDuplicateApplication = "DUPLICATE_APPLICATION"
	CodeNotFound             = "NOT_FOUND"
	CodeInvalidTransition    = "INVALID_TRANSITION"
	CodeDependencyFailure    = "DEPENDENCY_FAILURE"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type APIError struct {
	Status  int          `json:"status"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (a *APIError) Error() string {
	return a.Message
}
