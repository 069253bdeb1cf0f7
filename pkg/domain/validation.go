package domain

// FieldError is a single validation failure tied to a field, in a
// shape the error summary can link from.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult collects the failures of one step submission.
// Ordered follows field declaration order, not failure order, so the
// rendered summary matches the user's top-to-bottom scan of the page.
// A validation failure is a normal outcome, not an error value.
type ValidationResult struct {
	Errors  map[string]string `json:"errors"`
	Ordered []FieldError      `json:"ordered"`
}

// NewValidationResult returns an empty result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{Errors: make(map[string]string)}
}

// Add records a failure for a field. The first message per field wins.
func (r *ValidationResult) Add(field, message string) {
	if _, dup := r.Errors[field]; dup {
		return
	}
	r.Errors[field] = message
	r.Ordered = append(r.Ordered, FieldError{Field: field, Message: message})
}

// Valid reports whether the submission passed.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}
