// Package submit serializes a finished form into one atomic save call and
// runs the success/failure choreography around it: one notification, then
// navigation and close on success; a best-effort message and an untouched,
// still-editable form on failure. Nothing here retries.
package submit

import (
	"context"
	"errors"

	"github.com/goliatone/go-quoteflow/pkg/lineitems"
)

// Severity grades notifications the way host toast buses do.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Line is one serialized product row in the save payload. UnitPrice already
// reflects edited-price precedence.
type Line struct {
	RecordID         string  `json:"id,omitempty"`
	ProductID        string  `json:"productId"`
	PricebookEntryID string  `json:"pricebookEntryId"`
	Quantity         float64 `json:"quantity"`
	UnitPrice        float64 `json:"unitPrice"`
	Description      string  `json:"description,omitempty"`
	CurrencyCode     string  `json:"currencyCode,omitempty"`
	UnitOfMeasure    string  `json:"unitOfMeasure,omitempty"`
	PackingSize      string  `json:"packingSize,omitempty"`
	PackingQuantity  string  `json:"packingQuantity,omitempty"`
}

// Payload is the single atomic save request: header fields, the full row
// list, and the ids of persisted rows removed during the session.
type Payload struct {
	RecordID    string            `json:"recordId,omitempty"`
	Header      map[string]string `json:"header"`
	Lines       []Line            `json:"lines"`
	DeletionIDs []string          `json:"deletionIds,omitempty"`
}

// Outcome is what a successful save reports back.
type Outcome struct {
	// RecordID is the created or updated document id, used for navigation.
	RecordID string
}

// Saver persists the payload in one transactional remote call.
type Saver interface {
	SaveLineItems(ctx context.Context, payload Payload) (Outcome, error)
}

// Notifier is the fire-and-forget toast surface.
type Notifier interface {
	Notify(title, message string, severity Severity)
}

// Navigator abstracts the host's navigation affordances.
type Navigator interface {
	NavigateToRecord(id string)
	CloseEditSurface()
}

// ErrNoSaver is returned when a coordinator was built without a saver.
var ErrNoSaver = errors.New("submit: saver is required")

// BuildLines serializes table rows for the payload. Edited prices take
// precedence over list prices; rows still in search mode are skipped (the
// validation gate rejects them before a submit is attempted).
func BuildLines(rows []lineitems.Row, currency string) []Line {
	out := make([]Line, 0, len(rows))
	for _, row := range rows {
		if !row.Selected() {
			continue
		}
		price := row.EditedPrice
		if price == 0 {
			price = row.ListPrice
		}
		out = append(out, Line{
			RecordID:         row.RecordID,
			ProductID:        row.ProductID,
			PricebookEntryID: row.PricebookEntryID,
			Quantity:         row.Quantity,
			UnitPrice:        price,
			Description:      row.Description,
			CurrencyCode:     currency,
			UnitOfMeasure:    row.UnitOfMeasure,
			PackingSize:      row.SelectedPackingSize,
			PackingQuantity:  row.PackingQuantity,
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Option customises a Coordinator.
type Option func(*Coordinator)

// WithSuccessMessage overrides the toast shown after a successful save.
func WithSuccessMessage(message string) Option {
	return func(c *Coordinator) {
		c.successMessage = message
	}
}

// Coordinator runs the save call and the surrounding notifications and
// navigation. Notifier and Navigator may be nil for headless use.
type Coordinator struct {
	saver          Saver
	notifier       Notifier
	navigator      Navigator
	successMessage string
}

// NewCoordinator wires a coordinator.
func NewCoordinator(saver Saver, notifier Notifier, navigator Navigator, options ...Option) *Coordinator {
	c := &Coordinator{
		saver:          saver,
		notifier:       notifier,
		navigator:      navigator,
		successMessage: "Record saved successfully!",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Submit issues exactly one save call. On success it emits one success
// notification, navigates to the saved record when an id came back, and
// closes the edit surface. On failure it surfaces the extracted message and
// returns the error so the form stays open and editable.
func (c *Coordinator) Submit(ctx context.Context, payload Payload) (Outcome, error) {
	if c.saver == nil {
		return Outcome{}, ErrNoSaver
	}

	outcome, err := c.saver.SaveLineItems(ctx, payload)
	if err != nil {
		c.notify("Error", ExtractMessage(err), SeverityError)
		return Outcome{}, err
	}

	c.notify("Success", c.successMessage, SeveritySuccess)
	if c.navigator != nil {
		if outcome.RecordID != "" {
			c.navigator.NavigateToRecord(outcome.RecordID)
		}
		c.navigator.CloseEditSurface()
	}
	return outcome, nil
}

func (c *Coordinator) notify(title, message string, severity Severity) {
	if c.notifier != nil {
		c.notifier.Notify(title, message, severity)
	}
}
