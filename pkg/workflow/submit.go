package workflow

import (
	"context"
	"errors"

	"github.com/goliatone/go-quoteflow/pkg/rules"
	"github.com/goliatone/go-quoteflow/pkg/submit"
)

// ErrNoCoordinator is returned when Submit runs on a form built without a
// submit coordinator.
var ErrNoCoordinator = errors.New("workflow: submit coordinator is required")

// View assembles the read-only slice of state the validation gate inspects.
func (f *Form) View() rules.FormView {
	return rules.FormView{
		Header:       f.Header(),
		ContactID:    f.contactID,
		ContactEmail: f.ContactEmail(),
		ContactPhone: f.ContactPhone(),
		ShippingID:   f.shippingID,
		Rows:         f.table.Rows(),
		Now:          f.now(),
	}
}

// Validate runs the full gate and returns every failure.
func (f *Form) Validate() []rules.FieldError {
	return f.gate.Validate(f.View())
}

// Payload serializes the form into the single atomic save request.
func (f *Form) Payload() submit.Payload {
	return submit.Payload{
		RecordID:    f.ctx.RecordID,
		Header:      f.Header(),
		Lines:       submit.BuildLines(f.table.Rows(), f.header[HeaderCurrency]),
		DeletionIDs: f.table.DeletedIDs(),
	}
}

// Submit validates and, when clean, hands the payload to the coordinator.
// Validation failures come back as the FieldError slice with a nil error;
// the save is not attempted. A non-nil error is a submit failure: the form
// stays open and editable, nothing retries.
func (f *Form) Submit(ctx context.Context) (submit.Outcome, []rules.FieldError, error) {
	if violations := f.Validate(); len(violations) > 0 {
		return submit.Outcome{}, violations, nil
	}
	if f.deps.Coordinator == nil {
		return submit.Outcome{}, nil, ErrNoCoordinator
	}
	outcome, err := f.deps.Coordinator.Submit(ctx, f.Payload())
	if err != nil {
		return submit.Outcome{}, nil, err
	}
	return outcome, nil, nil
}
