// Package lineitems implements the editable product-line table shared by the
// quote and order editors. Each row is independently in "search" mode
// (choosing a product) or "selected" mode (editing quantity, price, packing),
// and every operation produces fresh row values over a fresh slice so stale
// references never observe later edits.
package lineitems

import "github.com/goliatone/go-quoteflow/pkg/option"

// Mode is the per-row editing state.
type Mode string

const (
	// ModeSearch means the row is still choosing a product.
	ModeSearch Mode = "search"
	// ModeSelected means a product is chosen and quantity/price/packing are
	// editable.
	ModeSelected Mode = "selected"
)

// Product is the catalog record a row binds to when selected. It is the
// shape the product search providers return.
type Product struct {
	ID               string
	PricebookEntryID string
	Name             string
	Description      string
	UnitPrice        float64
	// PackingSizes is the semicolon-delimited catalog field listing the
	// available packaging choices.
	PackingSizes  string
	HSNCode       string
	FGCode        string
	UnitOfMeasure string
	CurrencyCode  string
}

// Row is one product line. ID is a stable local identity assigned by the
// table (never a slice index); RecordID is the persisted line-item id, ""
// for rows that have not been saved yet.
type Row struct {
	ID       int64
	RecordID string
	Mode     Mode

	ProductID        string
	PricebookEntryID string
	ProductName      string
	Description      string
	HSNCode          string
	FGCode           string
	UnitOfMeasure    string

	Quantity    float64
	ListPrice   float64
	EditedPrice float64
	// Modifier is editedPrice - listPrice rounded to two decimals. Maintained
	// whenever the row is in selected mode.
	Modifier float64

	PackingSizeOptions  []option.Entry
	SelectedPackingSize string
	// PackingQuantity is ceil(quantity / extracted packing number) as a
	// string, "" when no packing size is selected or the label carries no
	// number.
	PackingQuantity string

	// Search state, meaningful only in search mode.
	SearchQuery   string
	SearchResults []option.Entry
	NoResults     bool
}

// LineTotal is the row's contribution to the document total: edited price
// times quantity.
func (r Row) LineTotal() float64 {
	return round2(r.EditedPrice * r.Quantity)
}

// Selected reports whether a product is bound to the row.
func (r Row) Selected() bool {
	return r.Mode == ModeSelected
}

func (r Row) clone() Row {
	out := r
	out.PackingSizeOptions = option.CloneAll(r.PackingSizeOptions)
	out.SearchResults = option.CloneAll(r.SearchResults)
	return out
}

func newRow(id int64) Row {
	return Row{
		ID:       id,
		Mode:     ModeSearch,
		Quantity: 1,
	}
}
