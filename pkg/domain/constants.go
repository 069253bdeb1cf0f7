package domain

// Field type constants define how a field is rendered and validated.
const (
	FieldText       = "text"
	FieldTextarea   = "textarea"
	FieldRadio      = "radio"
	FieldCheckboxes = "checkboxes"
	FieldSelect     = "select"
	FieldDate       = "date"
)

// Submit action constants. Only forward actions trigger global rule
// evaluation; anything else falls through to sequential movement.
const (
	ActionNext     = "next"
	ActionContinue = "continue"
	ActionSubmit   = "submit"
)

// DefaultTarget is the reserved value key in a legacy per-field
// navigation map that matches when no exact value entry does.
const DefaultTarget = "default"

// Date component suffixes. A date field named "dob" arrives from the
// form as "dob-day", "dob-month" and "dob-year".
const (
	DateDaySuffix   = "-day"
	DateMonthSuffix = "-month"
	DateYearSuffix  = "-year"
)

// IsForwardAction reports whether the submit action should be routed
// through the global navigation rules.
func IsForwardAction(action string) bool {
	switch action {
	case ActionNext, ActionContinue, ActionSubmit:
		return true
	}
	return false
}

// IsChoiceField reports whether the field type requires an option list.
func IsChoiceField(fieldType string) bool {
	switch fieldType {
	case FieldRadio, FieldCheckboxes, FieldSelect:
		return true
	}
	return false
}

// KnownFieldType reports whether the field type is one the validator
// and renderer understand.
func KnownFieldType(fieldType string) bool {
	switch fieldType {
	case FieldText, FieldTextarea, FieldRadio, FieldCheckboxes, FieldSelect, FieldDate:
		return true
	}
	return false
}
