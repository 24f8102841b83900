package workflow

import (
	"context"
	"fmt"

	"github.com/goliatone/go-quoteflow/pkg/lineitems"
	"github.com/goliatone/go-quoteflow/pkg/lookup"
	"github.com/goliatone/go-quoteflow/pkg/option"
)

// SearchRowProducts runs a catalog search for a row still choosing its
// product. Queries below the keyword gate just record the text and clear any
// previous results; a missing currency blocks the search outright, matching
// the editors' "pick a currency first" warning. Search failures leave the
// row's results empty without flagging no-results, so a transient provider
// error does not read as "nothing matches".
func (f *Form) SearchRowProducts(ctx context.Context, rowID int64, query string) error {
	if err := f.table.SetSearch(rowID, query); err != nil {
		return err
	}
	if len(query) < f.minSearch {
		return nil
	}
	if f.deps.Products == nil {
		return nil
	}

	currency := f.header[HeaderCurrency]
	if currency == "" {
		return ErrCurrencyRequired
	}

	products, err := f.deps.Products.SearchProducts(ctx, query, currency, f.accountID)
	if err != nil {
		delete(f.searchCache, rowID)
		return fmt.Errorf("workflow: product search %q: %w", query, err)
	}

	cache := make(map[string]lineitems.Product, len(products))
	entries := make([]option.Entry, 0, len(products))
	for _, p := range products {
		cache[p.PricebookEntryID] = p
		entries = append(entries, lookup.ProductEntry(p))
	}
	f.searchCache[rowID] = cache
	return f.table.SetSearchResults(rowID, entries)
}

// SelectRowProduct binds a product from the row's latest search results.
func (f *Form) SelectRowProduct(rowID int64, pricebookEntryID string) error {
	cache := f.searchCache[rowID]
	product, ok := cache[pricebookEntryID]
	if !ok {
		return fmt.Errorf("%w: product %q", ErrUnknownOption, pricebookEntryID)
	}
	if err := f.table.SelectProduct(rowID, product); err != nil {
		return err
	}
	delete(f.searchCache, rowID)
	return nil
}

// RemoveRow drops a row and its cached search results.
func (f *Form) RemoveRow(rowID int64) error {
	delete(f.searchCache, rowID)
	return f.table.RemoveRow(rowID)
}
