package domain

// Option is a single selectable (value, label) pair for a choice field.
type Option struct {
	Value string `json:"value" yaml:"value" mapstructure:"value"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// OptionsEndpoint describes an external source for a field's option
// list. The fetch is best-effort: on failure the field degrades to an
// empty option list rather than failing the request.
type OptionsEndpoint struct {
	// URL of the upstream list endpoint.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// Query is an optional raw query string appended to the URL.
	Query string `json:"query,omitempty" yaml:"query,omitempty" mapstructure:"query"`

	// ItemsPath locates the array of items inside the response body.
	// Empty means the body itself is the array.
	ItemsPath string `json:"items_path,omitempty" yaml:"items_path,omitempty" mapstructure:"items_path"`

	// ValuePath and LabelPath locate the value and label inside each item.
	ValuePath string `json:"value_path" yaml:"value_path" mapstructure:"value_path"`
	LabelPath string `json:"label_path" yaml:"label_path" mapstructure:"label_path"`
}

// Field is a single question within a step.
type Field struct {
	// Name is the submitted parameter name, unique within its step.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Question is the user-facing prompt.
	Question string `json:"question" yaml:"question" mapstructure:"question"`

	// Type is one of the Field* constants.
	Type string `json:"type" yaml:"type" mapstructure:"type"`

	Required bool   `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Hint     string `json:"hint,omitempty" yaml:"hint,omitempty" mapstructure:"hint"`

	// Options is the static option list for choice fields.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`

	// OptionsFrom points at an external option source, used when
	// Options is empty.
	OptionsFrom *OptionsEndpoint `json:"options_from,omitempty" yaml:"options_from,omitempty" mapstructure:"options_from"`
}

// NeedsOptions reports whether the field is a choice field with no
// static options, i.e. its list must come from the external source
// before rendering or validation.
func (f *Field) NeedsOptions() bool {
	return IsChoiceField(f.Type) && len(f.Options) == 0 && f.OptionsFrom != nil
}
