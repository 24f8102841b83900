// Package lookup fetches the option sets that depend on the selected
// account: contacts, shipping addresses, and the read-only billing address.
// Loads are generation-tokened so rapid account switching can never apply a
// stale response over a newer one, regardless of response arrival order.
package lookup

import (
	"context"

	"github.com/goliatone/go-quoteflow/pkg/lineitems"
	"github.com/goliatone/go-quoteflow/pkg/option"
)

// Contact is the DTO contact providers return.
type Contact struct {
	ID    string
	Name  string
	Email string
	Phone string
	Fax   string
}

// Address is a shipping address DTO: a persisted id plus its parts.
type Address struct {
	ID    string
	Parts option.AddressParts
}

// ContactProvider lists the contacts attached to an account (or to its
// opportunity, for flows that start from one — the provider hides which).
type ContactProvider interface {
	Contacts(ctx context.Context, accountID string) ([]Contact, error)
}

// AddressProvider lists shipping addresses and resolves the account's
// billing address.
type AddressProvider interface {
	ShippingAddresses(ctx context.Context, accountID string) ([]Address, error)
	BillingAddress(ctx context.Context, accountID string) (option.AddressParts, error)
}

// ProductSearcher performs keyword search against the catalog, scoped to a
// currency and account price book.
type ProductSearcher interface {
	SearchProducts(ctx context.Context, keyword, currency, accountID string) ([]lineitems.Product, error)
}

// HeaderHintProvider supplies per-account header defaults (currency, special
// instructions) that seed new documents. Optional.
type HeaderHintProvider interface {
	HeaderHints(ctx context.Context, accountID string) (HeaderHints, error)
}

// HeaderHints are per-account defaults propagated into fresh form headers.
type HeaderHints struct {
	Currency            string
	SpecialInstructions string
}

// RecordLine is one persisted line item on a fetched record.
type RecordLine struct {
	ID          string
	Product     lineitems.Product
	Quantity    float64
	UnitPrice   float64
	PackingSize string
}

// Record is the DTO record providers return for edit flows: header fields
// plus the related selections and persisted line items.
type Record struct {
	ID                string
	AccountID         string
	Header            map[string]string
	ContactID         string
	ShippingAddressID string
	Lines             []RecordLine
}

// RecordProvider fetches a persisted record so an editor can open against
// it. Optional; new-record flows never call it.
type RecordProvider interface {
	Record(ctx context.Context, recordID string) (Record, error)
}

// ContactEntry converts a contact DTO into a picker entry, mirroring
// email/phone/fax into meta so selection can propagate them into the header.
func ContactEntry(c Contact) option.Entry {
	entry := option.New(c.Name, c.ID)
	entry.Meta = map[string]string{
		option.MetaEmail: c.Email,
		option.MetaPhone: c.Phone,
		option.MetaFax:   c.Fax,
	}
	return entry
}

// ProductEntry converts a catalog product into a search-result entry. The
// pricebook entry id is the selection value, matching how the catalog keys
// price rows.
func ProductEntry(p lineitems.Product) option.Entry {
	return option.New(p.Name, p.PricebookEntryID)
}
