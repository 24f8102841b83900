// Package formdef holds the declarative per-entity form definition: which
// header fields a document type carries, their labels and kinds, and the
// validation hints the gate is built from. Editors for different business
// objects differ only by definition, never by copied editor code.
package formdef

import "strings"

// FieldType is the simplified enum of header field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeInteger FieldType = "integer"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeDate    FieldType = "date"
	FieldTypeEnum    FieldType = "enum"
)

// Field describes one header field of a document type.
type Field struct {
	Name     string    `json:"name" yaml:"name"`
	Type     FieldType `json:"type" yaml:"type"`
	Label    string    `json:"label,omitempty" yaml:"label"`
	Required bool      `json:"required" yaml:"required"`
	// Enum lists the allowed values for enum fields (status, terms,
	// currency pickers).
	Enum []string `json:"enum,omitempty" yaml:"enum"`
	// Default seeds the header value for new documents.
	Default string `json:"default,omitempty" yaml:"default"`
	// Placeholder is display-only input hint text.
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder"`
}

// DateOrdering declares a cross-field date rule: Field must come strictly
// after (or before) Other.
type DateOrdering struct {
	Field  string `json:"field" yaml:"field"`
	Other  string `json:"other" yaml:"other"`
	Before bool   `json:"before,omitempty" yaml:"before"`
}

// RuleHints configures the validation gate a definition produces. Required
// header fields come from the Field entries themselves.
type RuleHints struct {
	RequireContact          bool           `json:"requireContact,omitempty" yaml:"requireContact"`
	RequireContactReachable bool           `json:"requireContactReachable,omitempty" yaml:"requireContactReachable"`
	RequireShipping         bool           `json:"requireShipping,omitempty" yaml:"requireShipping"`
	RequireRows             bool           `json:"requireRows,omitempty" yaml:"requireRows"`
	DatesAfterToday         []string       `json:"datesAfterToday,omitempty" yaml:"datesAfterToday"`
	DateOrderings           []DateOrdering `json:"dateOrderings,omitempty" yaml:"dateOrderings"`
}

// Definition is the full declarative description of one document editor.
type Definition struct {
	// Entity names the business object ("quote", "order", "sampleOrder").
	Entity string `json:"entity" yaml:"entity"`
	Title  string `json:"title,omitempty" yaml:"title"`
	// SuccessMessage overrides the toast shown after a clean submit.
	SuccessMessage string  `json:"successMessage,omitempty" yaml:"successMessage"`
	Fields         []Field `json:"fields" yaml:"fields"`
	// Rules carry the gate hints beyond per-field required flags.
	Rules RuleHints `json:"rules,omitempty" yaml:"rules"`
}

// Field returns the named field definition, false when absent.
func (d Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldLabel resolves the display label for a field, humanizing the name
// when no label is declared.
func (d Definition) FieldLabel(name string) string {
	if f, ok := d.Field(name); ok && strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return HumanizeFieldName(name)
}

// Defaults collects the declared default values keyed by field name.
func (d Definition) Defaults() map[string]string {
	out := make(map[string]string)
	for _, f := range d.Fields {
		if f.Default != "" {
			out[f.Name] = f.Default
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HumanizeFieldName turns a camelCase field name into a display label:
// "expirationDate" -> "Expiration Date".
func HumanizeFieldName(name string) string {
	if name == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(toUpper(r))
			continue
		}
		if isUpper(r) && !isUpper(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
