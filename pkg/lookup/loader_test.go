package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-quoteflow/pkg/option"
)

type stubContacts struct {
	byAccount map[string][]Contact
	err       error
}

func (s stubContacts) Contacts(_ context.Context, accountID string) ([]Contact, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byAccount[accountID], nil
}

type stubAddresses struct {
	shipping map[string][]Address
	billing  map[string]option.AddressParts
	shipErr  error
	billErr  error
}

func (s stubAddresses) ShippingAddresses(_ context.Context, accountID string) ([]Address, error) {
	if s.shipErr != nil {
		return nil, s.shipErr
	}
	return s.shipping[accountID], nil
}

func (s stubAddresses) BillingAddress(_ context.Context, accountID string) (option.AddressParts, error) {
	if s.billErr != nil {
		return option.AddressParts{}, s.billErr
	}
	return s.billing[accountID], nil
}

func testProviders() (stubContacts, stubAddresses) {
	contacts := stubContacts{byAccount: map[string][]Contact{
		"acctA": {{ID: "c1", Name: "Asha Rao", Email: "asha@a.example", Phone: "111"}},
		"acctB": {
			{ID: "c2", Name: "Bikram Shah", Email: "bikram@b.example", Phone: "222"},
			{ID: "c3", Name: "Chitra Iyer", Email: "chitra@b.example", Phone: "333"},
		},
	}}
	addresses := stubAddresses{
		shipping: map[string][]Address{
			"acctA": {
				{ID: "s1", Parts: option.AddressParts{City: "Pune", Country: "India"}},
				{ID: "s2", Parts: option.AddressParts{City: "Mumbai", Country: "India"}},
			},
			"acctB": {{ID: "s3", Parts: option.AddressParts{City: "Chennai", Country: "India"}}},
		},
		billing: map[string]option.AddressParts{
			"acctA": {Street: "1 Mill Road", City: "Pune"},
			"acctB": {Street: "9 Port Lane", City: "Chennai"},
		},
	}
	return contacts, addresses
}

func TestLoad_PopulatesAllSets(t *testing.T) {
	contacts, addresses := testProviders()
	loader := NewLoader(contacts, addresses)

	snap := loader.Load(context.Background(), "acctA")
	if err := snap.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Contacts) != 1 || snap.Contacts[0].MetaValue(option.MetaEmail) != "asha@a.example" {
		t.Fatalf("unexpected contacts: %#v", snap.Contacts)
	}
	if len(snap.Shipping) != 2 || snap.AutoShipping != nil {
		t.Fatalf("two addresses must not auto-select: %#v", snap.AutoShipping)
	}
	if snap.Billing.Street != "1 Mill Road" {
		t.Fatalf("unexpected billing: %#v", snap.Billing)
	}
}

func TestLoad_SingleShippingAutoSelects(t *testing.T) {
	contacts, addresses := testProviders()
	loader := NewLoader(contacts, addresses)

	snap := loader.Load(context.Background(), "acctB")
	if snap.AutoShipping == nil || snap.AutoShipping.Value != "s3" {
		t.Fatalf("expected auto-selected shipping s3, got %#v", snap.AutoShipping)
	}
}

func TestLoad_AutoFirstContact(t *testing.T) {
	contacts, addresses := testProviders()
	loader := NewLoader(contacts, addresses, WithAutoSelectFirstContact())

	snap := loader.Load(context.Background(), "acctB")
	if snap.AutoContact == nil || snap.AutoContact.Value != "c2" {
		t.Fatalf("expected first contact auto-selected, got %#v", snap.AutoContact)
	}
}

func TestLoad_PartialFailureIsFailSafe(t *testing.T) {
	contacts, addresses := testProviders()
	contacts.err = errors.New("apex timeout")
	var logged int
	loader := NewLoader(contacts, addresses, WithLogf(func(string, ...any) { logged++ }))

	snap := loader.Load(context.Background(), "acctA")
	if snap.ContactsErr == nil {
		t.Fatal("expected contact load error recorded")
	}
	if len(snap.Contacts) != 0 {
		t.Fatalf("failed lookup must leave the set empty: %#v", snap.Contacts)
	}
	if len(snap.Shipping) != 2 || snap.Billing.IsZero() {
		t.Fatal("independent lookups must still populate")
	}
	if logged == 0 {
		t.Fatal("expected failure to be logged")
	}
}

func TestLoad_EmptyAccountIsInert(t *testing.T) {
	contacts, addresses := testProviders()
	loader := NewLoader(contacts, addresses)

	snap := loader.Load(context.Background(), "")
	if err := snap.Err(); err != nil {
		t.Fatalf("empty account must not error: %v", err)
	}
	if len(snap.Contacts) != 0 || len(snap.Shipping) != 0 {
		t.Fatal("empty account must not fetch")
	}
}

func TestStale_DiscardsOlderGenerations(t *testing.T) {
	contacts, addresses := testProviders()
	loader := NewLoader(contacts, addresses)

	first := loader.Load(context.Background(), "acctA")
	second := loader.Load(context.Background(), "acctB")

	if !loader.Stale(first) {
		t.Fatal("first snapshot must be stale after a second load")
	}
	if loader.Stale(second) {
		t.Fatal("latest snapshot must not be stale")
	}
}
