package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/formwise/pkg/domain"
)

// ValidateStep checks a step's submitted values against its field
// constraints. It returns the validation result plus the cleaned
// values that may be persisted on success: only declared fields, with
// date triples composed into a single value and blank optional fields
// dropped. Pure function of its inputs.
func ValidateStep(step *domain.Step, submitted domain.Values) (*domain.ValidationResult, domain.Values) {
	result := domain.NewValidationResult()
	clean := make(domain.Values, len(step.Fields))

	// Field declaration order drives error order, never failure order.
	for i := range step.Fields {
		field := &step.Fields[i]

		if field.Type == domain.FieldDate {
			validateDate(field, submitted, result, clean)
			continue
		}

		value, ok := submitted[field.Name]
		if !ok || domain.IsBlank(value) {
			if field.Required {
				result.Add(field.Name, requiredMessage(field))
			}
			// Absent optional values are skipped entirely.
			continue
		}

		clean[field.Name] = normalize(field, value)
	}

	return result, clean
}

// validateDate handles the (day, month, year) triple. A fully blank
// optional date is skipped; a partially filled one always fails. The
// composed calendar date is not range-checked here.
func validateDate(field *domain.Field, submitted domain.Values, result *domain.ValidationResult, clean domain.Values) {
	day := strings.TrimSpace(domain.First(submitted[field.Name+domain.DateDaySuffix]))
	month := strings.TrimSpace(domain.First(submitted[field.Name+domain.DateMonthSuffix]))
	year := strings.TrimSpace(domain.First(submitted[field.Name+domain.DateYearSuffix]))

	if day == "" && month == "" && year == "" {
		if field.Required {
			result.Add(field.Name, requiredMessage(field))
		}
		return
	}

	if day == "" || month == "" || year == "" {
		result.Add(field.Name, fmt.Sprintf("%s must include a day, month and year", field.Question))
		return
	}

	clean[field.Name] = composeDate(day, month, year)
}

// composeDate builds the stored YYYY-MM-DD value, zero-padding the
// numeric parts. Non-numeric parts pass through untouched; this layer
// does not calendar-validate.
func composeDate(day, month, year string) string {
	return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day))
}

func pad2(part string) string {
	if n, err := strconv.Atoi(part); err == nil {
		return fmt.Sprintf("%02d", n)
	}
	return part
}

func requiredMessage(field *domain.Field) string {
	if field.Question != "" {
		return fmt.Sprintf("%s is required", field.Question)
	}
	return fmt.Sprintf("%s is required", field.Name)
}

// normalize coerces a submitted value into its canonical stored
// shape: checkboxes always hold a string slice, everything else a
// trimmed string.
func normalize(field *domain.Field, value any) any {
	if field.Type == domain.FieldCheckboxes {
		switch v := value.(type) {
		case []string:
			return v
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				out = append(out, domain.First(item))
			}
			return out
		default:
			return []string{domain.First(v)}
		}
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return domain.First(v)
	}
}
