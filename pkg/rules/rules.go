package rules

import "fmt"

// Required fails when the header field is empty or whitespace.
func Required(field, label string) Rule {
	return func(v FormView) []FieldError {
		if isBlank(v.HeaderValue(field)) {
			return []FieldError{{Field: field, Message: label + " is required."}}
		}
		return nil
	}
}

// ContactSelected fails when no contact has been chosen.
func ContactSelected() Rule {
	return func(v FormView) []FieldError {
		if v.ContactID == "" {
			return []FieldError{{Field: "contact", Message: "Please select a contact."}}
		}
		return nil
	}
}

// ContactHasEmailAndPhone fails, per missing attribute, when the selected
// contact lacks an email address or phone number. It stays quiet while no
// contact is selected; ContactSelected owns that failure.
func ContactHasEmailAndPhone() Rule {
	return func(v FormView) []FieldError {
		if v.ContactID == "" {
			return nil
		}
		var out []FieldError
		if isBlank(v.ContactEmail) {
			out = append(out, FieldError{Field: "contact", Message: "Selected contact must have an email address."})
		}
		if isBlank(v.ContactPhone) {
			out = append(out, FieldError{Field: "contact", Message: "Selected contact must have a phone number."})
		}
		return out
	}
}

// ShippingSelected fails when no shipping address has been chosen.
func ShippingSelected() Rule {
	return func(v FormView) []FieldError {
		if v.ShippingID == "" {
			return []FieldError{{Field: "shippingAddress", Message: "Please select a shipping address."}}
		}
		return nil
	}
}

// RowsPresent fails when the table has no rows at all.
func RowsPresent() Rule {
	return func(v FormView) []FieldError {
		if len(v.Rows) == 0 {
			return []FieldError{{Field: "lineItems", Message: "Please add at least one product."}}
		}
		return nil
	}
}

// RowsComplete checks every row: a product must be selected and the quantity
// positive. Failures name the 1-based row position the way the editors do.
func RowsComplete() Rule {
	return func(v FormView) []FieldError {
		var out []FieldError
		for i, row := range v.Rows {
			rowField := fmt.Sprintf("lineItems[%d]", i)
			if !row.Selected() || row.ProductID == "" {
				out = append(out, FieldError{
					Field:   rowField,
					Message: fmt.Sprintf("Please select a product for row %d.", i+1),
				})
			}
			if row.Quantity <= 0 {
				out = append(out, FieldError{
					Field:   rowField,
					Message: fmt.Sprintf("Please enter a valid quantity for row %d.", i+1),
				})
			}
		}
		return out
	}
}

// DateAfterToday fails when the field parses to a date on or before today.
// Unparseable or empty values are left to Required; dates never coerce to
// other types here.
func DateAfterToday(field, label string) Rule {
	return func(v FormView) []FieldError {
		today := v.today()
		value, ok := parseDate(v.HeaderValue(field), today.Location())
		if !ok {
			return nil
		}
		if !value.After(today) {
			return []FieldError{{Field: field, Message: label + " must be greater than today."}}
		}
		return nil
	}
}

// DateAfter fails unless field's date is strictly after other's date. Both
// must parse for the comparison to run.
func DateAfter(field, label, other, otherLabel string) Rule {
	return func(v FormView) []FieldError {
		loc := v.today().Location()
		a, okA := parseDate(v.HeaderValue(field), loc)
		b, okB := parseDate(v.HeaderValue(other), loc)
		if !okA || !okB {
			return nil
		}
		if !a.After(b) {
			return []FieldError{{Field: field, Message: fmt.Sprintf("%s must be greater than %s.", label, otherLabel)}}
		}
		return nil
	}
}

// DateBefore fails unless field's date is strictly before other's date.
func DateBefore(field, label, other, otherLabel string) Rule {
	return func(v FormView) []FieldError {
		loc := v.today().Location()
		a, okA := parseDate(v.HeaderValue(field), loc)
		b, okB := parseDate(v.HeaderValue(other), loc)
		if !okA || !okB {
			return nil
		}
		if !a.Before(b) {
			return []FieldError{{Field: field, Message: fmt.Sprintf("%s must be less than %s.", label, otherLabel)}}
		}
		return nil
	}
}

func isBlank(v string) bool {
	for _, r := range v {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
