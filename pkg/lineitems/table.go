package lineitems

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-quoteflow/pkg/option"
)

// ErrRowNotFound is returned when an operation references a row id that is
// no longer in the table.
var ErrRowNotFound = errors.New("lineitems: row not found")

// Table is the ordered, editable list of line rows plus the deletion list of
// persisted ids removed during the session. The zero value is ready to use.
type Table struct {
	rows    []Row
	deleted []string
	nextID  int64
}

// Len reports the number of active rows.
func (t *Table) Len() int { return len(t.rows) }

// Empty reports whether the table has no active rows, which is when editors
// surface the "add product" call-to-action instead of the grid.
func (t *Table) Empty() bool { return len(t.rows) == 0 }

// Rows returns a deep copy of the active rows in order.
func (t *Table) Rows() []Row {
	if len(t.rows) == 0 {
		return nil
	}
	out := make([]Row, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row.clone())
	}
	return out
}

// Row returns a copy of the row with the given id.
func (t *Table) Row(id int64) (Row, error) {
	for _, row := range t.rows {
		if row.ID == id {
			return row.clone(), nil
		}
	}
	return Row{}, fmt.Errorf("%w: id %d", ErrRowNotFound, id)
}

// DeletedIDs returns the persisted line-item ids queued for deletion at
// submit time.
func (t *Table) DeletedIDs() []string {
	if len(t.deleted) == 0 {
		return nil
	}
	return append([]string(nil), t.deleted...)
}

// AddRow appends a new row in search mode with the default quantity of 1 and
// returns its id.
func (t *Table) AddRow() int64 {
	t.nextID++
	id := t.nextID
	t.rows = appendRow(t.rows, newRow(id))
	return id
}

// Restore seeds the table with an already-persisted row: the edit-order flow
// loads existing line items, binds them to their product, and keeps their
// record id so later edits update rather than insert. Returns the local id.
func (t *Table) Restore(recordID string, p Product, quantity, editedPrice float64, packingSize string) int64 {
	id := t.AddRow()
	row, _ := t.find(id)
	bound := bindProduct(row, p)
	bound.RecordID = recordID
	bound.Quantity = quantity
	if editedPrice != 0 {
		bound.EditedPrice = editedPrice
	}
	bound.Modifier = round2(bound.EditedPrice - bound.ListPrice)
	if packingSize != "" {
		bound.SelectedPackingSize = packingSize
		bound.PackingQuantity = PackingQuantity(bound.Quantity, packingSize)
	}
	t.replace(bound)
	return id
}

// SetSearch records typed search text on a row still in search mode,
// clearing stale results until the next SetSearchResults.
func (t *Table) SetSearch(id int64, query string) error {
	row, err := t.find(id)
	if err != nil {
		return err
	}
	next := row.clone()
	next.SearchQuery = query
	next.SearchResults = nil
	next.NoResults = false
	t.replace(next)
	return nil
}

// SetSearchResults applies a product search response to a row. An empty
// result set flips the no-results affordance on.
func (t *Table) SetSearchResults(id int64, results []option.Entry) error {
	row, err := t.find(id)
	if err != nil {
		return err
	}
	next := row.clone()
	next.SearchResults = option.CloneAll(results)
	next.NoResults = len(results) == 0
	t.replace(next)
	return nil
}

// SelectProduct transitions a row to selected mode: prices initialise to the
// catalog price, the packing-size field expands into discrete choices, and
// the modifier resets to zero.
func (t *Table) SelectProduct(id int64, p Product) error {
	row, err := t.find(id)
	if err != nil {
		return err
	}
	t.replace(bindProduct(row, p))
	return nil
}

// ClearProduct returns a row to search mode, dropping the product binding
// and edits but keeping the row (and its record id, so clearing then
// re-picking still updates the persisted line).
func (t *Table) ClearProduct(id int64) error {
	row, err := t.find(id)
	if err != nil {
		return err
	}
	next := newRow(row.ID)
	next.RecordID = row.RecordID
	t.replace(next)
	return nil
}

// ChangeQuantity updates the quantity and recomputes the packing quantity
// when a packing size is selected.
func (t *Table) ChangeQuantity(id int64, quantity float64) error {
	row, err := t.find(id)
	if err != nil {
		return err
	}
	next := row.clone()
	next.Quantity = quantity
	if next.SelectedPackingSize != "" {
		next.PackingQuantity = PackingQuantity(quantity, next.SelectedPackingSize)
	}
	t.replace(next)
	return nil
}

// ChangePackingSize selects a packing size and derives the packing quantity
// from the current row quantity.
func (t *Table) ChangePackingSize(id int64, size string) error {
	row, err := t.find(id)
	if err != nil {
		return err
	}
	next := row.clone()
	next.SelectedPackingSize = size
	next.PackingQuantity = PackingQuantity(next.Quantity, size)
	t.replace(next)
	return nil
}

// ChangeEditedPrice records a user-edited unit price and recomputes the
// modifier against the catalog list price.
func (t *Table) ChangeEditedPrice(id int64, price float64) error {
	row, err := t.find(id)
	if err != nil {
		return err
	}
	next := row.clone()
	next.EditedPrice = price
	next.Modifier = round2(price - next.ListPrice)
	t.replace(next)
	return nil
}

// RemoveRow drops a row. A persisted row id joins the deletion list sent at
// submit; an unsaved row just disappears.
func (t *Table) RemoveRow(id int64) error {
	for i, row := range t.rows {
		if row.ID != id {
			continue
		}
		if row.RecordID != "" {
			t.deleted = append(t.deleted, row.RecordID)
		}
		next := make([]Row, 0, len(t.rows)-1)
		next = append(next, t.rows[:i]...)
		next = append(next, t.rows[i+1:]...)
		t.rows = next
		return nil
	}
	return fmt.Errorf("%w: id %d", ErrRowNotFound, id)
}

// Total sums the line totals of selected rows.
func (t *Table) Total() float64 {
	var total float64
	for _, row := range t.rows {
		if row.Selected() {
			total += row.LineTotal()
		}
	}
	return round2(total)
}

func bindProduct(row Row, p Product) Row {
	next := newRow(row.ID)
	next.RecordID = row.RecordID
	next.Mode = ModeSelected
	next.ProductID = p.ID
	next.PricebookEntryID = p.PricebookEntryID
	next.ProductName = option.SanitizeLabel(p.Name)
	next.Description = p.Description
	next.HSNCode = orDash(p.HSNCode)
	next.FGCode = orDash(p.FGCode)
	next.UnitOfMeasure = orDash(p.UnitOfMeasure)
	next.Quantity = row.Quantity
	next.ListPrice = p.UnitPrice
	next.EditedPrice = p.UnitPrice
	next.Modifier = 0
	next.PackingSizeOptions = ParsePackingSizes(p.PackingSizes)
	return next
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func appendRow(rows []Row, row Row) []Row {
	next := make([]Row, 0, len(rows)+1)
	next = append(next, rows...)
	next = append(next, row)
	return next
}

func (t *Table) find(id int64) (Row, error) {
	for _, row := range t.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return Row{}, fmt.Errorf("%w: id %d", ErrRowNotFound, id)
}

func (t *Table) replace(row Row) {
	next := make([]Row, len(t.rows))
	for i, existing := range t.rows {
		if existing.ID == row.ID {
			next[i] = row
			continue
		}
		next[i] = existing
	}
	t.rows = next
}
