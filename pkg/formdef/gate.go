package formdef

import "github.com/goliatone/go-quoteflow/pkg/rules"

// BuildGate assembles the validation gate a definition declares: required
// header fields in declaration order, then the contact/shipping/row
// requirements, then the date rules.
func BuildGate(def Definition) *rules.Gate {
	gate := rules.NewGate()

	for _, field := range def.Fields {
		if field.Required {
			gate.Append(rules.Required(field.Name, def.FieldLabel(field.Name)))
		}
	}

	if def.Rules.RequireContact {
		gate.Append(rules.ContactSelected())
	}
	if def.Rules.RequireContactReachable {
		gate.Append(rules.ContactHasEmailAndPhone())
	}
	if def.Rules.RequireShipping {
		gate.Append(rules.ShippingSelected())
	}
	if def.Rules.RequireRows {
		gate.Append(rules.RowsPresent(), rules.RowsComplete())
	}

	for _, field := range def.Rules.DatesAfterToday {
		gate.Append(rules.DateAfterToday(field, def.FieldLabel(field)))
	}
	for _, ordering := range def.Rules.DateOrderings {
		fieldLabel := def.FieldLabel(ordering.Field)
		otherLabel := def.FieldLabel(ordering.Other)
		if ordering.Before {
			gate.Append(rules.DateBefore(ordering.Field, fieldLabel, ordering.Other, otherLabel))
			continue
		}
		gate.Append(rules.DateAfter(ordering.Field, fieldLabel, ordering.Other, otherLabel))
	}

	return gate
}
