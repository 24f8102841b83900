package lineitems

import (
	"errors"
	"math"
	"testing"

	"github.com/goliatone/go-quoteflow/pkg/option"
)

func sampleProduct() Product {
	return Product{
		ID:               "01tx1",
		PricebookEntryID: "01ux1",
		Name:             "Sodium Silicate",
		UnitPrice:        120.5,
		PackingSizes:     "PAPER BAGS 15 KGS;DRUM 200 L",
		UnitOfMeasure:    "KG",
	}
}

func TestAddRow_DefaultsToSearchModeQuantityOne(t *testing.T) {
	var table Table
	id := table.AddRow()

	row, err := table.Row(id)
	if err != nil {
		t.Fatalf("row lookup failed: %v", err)
	}
	if row.Mode != ModeSearch || row.Quantity != 1 {
		t.Fatalf("unexpected new row: %+v", row)
	}
	if table.Empty() {
		t.Fatal("table should not report empty after add")
	}
}

func TestSelectProduct_InitialisesPricesAndPacking(t *testing.T) {
	var table Table
	id := table.AddRow()
	if err := table.SelectProduct(id, sampleProduct()); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	row, _ := table.Row(id)
	if row.Mode != ModeSelected {
		t.Fatalf("expected selected mode, got %q", row.Mode)
	}
	if row.ListPrice != 120.5 || row.EditedPrice != 120.5 || row.Modifier != 0 {
		t.Fatalf("unexpected pricing: %+v", row)
	}
	if len(row.PackingSizeOptions) != 2 {
		t.Fatalf("expected 2 packing options, got %#v", row.PackingSizeOptions)
	}
	if row.SelectedPackingSize != "" || row.PackingQuantity != "" {
		t.Fatalf("packing selection should start empty: %+v", row)
	}
}

func TestChangeEditedPrice_RecomputesModifier(t *testing.T) {
	var table Table
	id := table.AddRow()
	_ = table.SelectProduct(id, sampleProduct())

	if err := table.ChangeEditedPrice(id, 118.25); err != nil {
		t.Fatalf("price change failed: %v", err)
	}
	row, _ := table.Row(id)
	if math.Abs(row.Modifier-(-2.25)) > 0.01 {
		t.Fatalf("expected modifier -2.25, got %v", row.Modifier)
	}
	if got := row.LineTotal(); got != round2(118.25*1) {
		t.Fatalf("unexpected line total %v", got)
	}
}

func TestPackingQuantityScenario_37Over15(t *testing.T) {
	var table Table
	id := table.AddRow()
	_ = table.SelectProduct(id, sampleProduct())

	if err := table.ChangeQuantity(id, 37); err != nil {
		t.Fatalf("quantity change failed: %v", err)
	}
	if err := table.ChangePackingSize(id, "PAPER BAGS 15 KGS"); err != nil {
		t.Fatalf("packing change failed: %v", err)
	}
	row, _ := table.Row(id)
	if row.PackingQuantity != "3" {
		t.Fatalf("expected packing quantity 3, got %q", row.PackingQuantity)
	}

	// Quantity edits keep the derived value in step.
	_ = table.ChangeQuantity(id, 45)
	row, _ = table.Row(id)
	if row.PackingQuantity != "3" {
		t.Fatalf("expected ceil(45/15)=3, got %q", row.PackingQuantity)
	}
	_ = table.ChangeQuantity(id, 46)
	row, _ = table.Row(id)
	if row.PackingQuantity != "4" {
		t.Fatalf("expected ceil(46/15)=4, got %q", row.PackingQuantity)
	}
}

func TestChangePackingSize_UnparseableLeavesBlank(t *testing.T) {
	var table Table
	id := table.AddRow()
	_ = table.SelectProduct(id, sampleProduct())
	_ = table.ChangeQuantity(id, 10)
	_ = table.ChangePackingSize(id, "BULK")

	row, _ := table.Row(id)
	if row.PackingQuantity != "" {
		t.Fatalf("expected blank packing quantity, got %q", row.PackingQuantity)
	}
}

func TestClearProduct_ReturnsToSearchKeepingRecordID(t *testing.T) {
	var table Table
	id := table.Restore("a01", sampleProduct(), 5, 0, "")

	if err := table.ClearProduct(id); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	row, _ := table.Row(id)
	if row.Mode != ModeSearch || row.ProductID != "" {
		t.Fatalf("expected cleared search row, got %+v", row)
	}
	if row.RecordID != "a01" {
		t.Fatalf("record id must survive a clear, got %q", row.RecordID)
	}
	if row.Quantity != 1 {
		t.Fatalf("cleared row resets to default quantity, got %v", row.Quantity)
	}
}

func TestRemoveRow_PersistedIDJoinsDeletionList(t *testing.T) {
	var table Table
	persisted := table.Restore("a01", sampleProduct(), 2, 0, "")
	fresh := table.AddRow()

	if err := table.RemoveRow(persisted); err != nil {
		t.Fatalf("remove persisted failed: %v", err)
	}
	if got := table.DeletedIDs(); len(got) != 1 || got[0] != "a01" {
		t.Fatalf("expected deletion list [a01], got %#v", got)
	}

	if err := table.RemoveRow(fresh); err != nil {
		t.Fatalf("remove fresh failed: %v", err)
	}
	if got := table.DeletedIDs(); len(got) != 1 {
		t.Fatalf("unsaved rows must not join the deletion list: %#v", got)
	}
	if !table.Empty() {
		t.Fatal("expected empty table after removing both rows")
	}
}

func TestRemoveRow_UnknownID(t *testing.T) {
	var table Table
	if err := table.RemoveRow(99); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}

func TestSearchResults_NoResultsFlag(t *testing.T) {
	var table Table
	id := table.AddRow()
	_ = table.SetSearch(id, "sodium")
	_ = table.SetSearchResults(id, []option.Entry{option.New("Sodium Silicate", "01tx1")})

	row, _ := table.Row(id)
	if row.NoResults || len(row.SearchResults) != 1 {
		t.Fatalf("unexpected search state: %+v", row)
	}

	_ = table.SetSearchResults(id, nil)
	row, _ = table.Row(id)
	if !row.NoResults {
		t.Fatal("empty results should flag no-results")
	}
}

func TestRowsAreCopies(t *testing.T) {
	var table Table
	id := table.AddRow()
	_ = table.SelectProduct(id, sampleProduct())

	rows := table.Rows()
	rows[0].Quantity = 99
	rows[0].PackingSizeOptions[0].Label = "mutated"

	row, _ := table.Row(id)
	if row.Quantity == 99 {
		t.Fatal("mutating a returned row leaked into the table")
	}
	if row.PackingSizeOptions[0].Label == "mutated" {
		t.Fatal("mutating returned options leaked into the table")
	}
}

func TestTotal_SumsSelectedRows(t *testing.T) {
	var table Table
	a := table.AddRow()
	_ = table.SelectProduct(a, sampleProduct())
	_ = table.ChangeQuantity(a, 2)
	table.AddRow() // search-mode row contributes nothing

	if got, want := table.Total(), round2(120.5*2); got != want {
		t.Fatalf("total = %v, want %v", got, want)
	}
}
