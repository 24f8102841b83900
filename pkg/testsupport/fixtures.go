// Package testsupport provides fixtures shared by package tests and the
// examples: a representative quote definition, in-memory providers, and
// recording collaborators for asserting notification/navigation choreography.
package testsupport

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-quoteflow/pkg/formdef"
	"github.com/goliatone/go-quoteflow/pkg/lineitems"
	"github.com/goliatone/go-quoteflow/pkg/lookup"
	"github.com/goliatone/go-quoteflow/pkg/option"
	"github.com/goliatone/go-quoteflow/pkg/submit"
)

// QuoteDefinition returns the definition the quote editor tests run against.
func QuoteDefinition() formdef.Definition {
	return formdef.Definition{
		Entity:         "quote",
		Title:          "Generate Quote",
		SuccessMessage: "Quote created successfully!",
		Fields: []formdef.Field{
			{Name: "expirationDate", Type: formdef.FieldTypeDate, Required: true},
			{Name: "leadTime", Type: formdef.FieldTypeDate, Label: "Lead Date", Required: true},
			{Name: "paymentTerm", Type: formdef.FieldTypeEnum, Label: "Payment Term", Required: true,
				Enum: []string{"Net 30", "Net 60", "Advance"}},
			{Name: "incoTerm", Type: formdef.FieldTypeEnum, Label: "Inco Term", Required: true,
				Enum: []string{"FOB", "CIF", "EXW"}},
			{Name: "currencyCode", Type: formdef.FieldTypeEnum, Label: "Currency", Required: true,
				Enum: []string{"INR", "USD", "EUR"}, Default: "INR"},
			{Name: "email", Type: formdef.FieldTypeString},
			{Name: "phone", Type: formdef.FieldTypeString},
			{Name: "fax", Type: formdef.FieldTypeString},
			{Name: "specialInstructions", Type: formdef.FieldTypeString},
		},
		Rules: formdef.RuleHints{
			RequireContact:          true,
			RequireContactReachable: true,
			RequireShipping:         true,
			RequireRows:             true,
			DatesAfterToday:         []string{"expirationDate"},
			DateOrderings:           []formdef.DateOrdering{{Field: "expirationDate", Other: "leadTime"}},
		},
	}
}

// Providers is an in-memory provider set keyed by account id. The zero value
// is usable; DefaultProviders seeds a small two-account dataset.
type Providers struct {
	ContactsByAccount map[string][]lookup.Contact
	ShippingByAccount map[string][]lookup.Address
	BillingByAccount  map[string]option.AddressParts
	Catalog           []lineitems.Product
	HintsByAccount    map[string]lookup.HeaderHints
	RecordsByID       map[string]lookup.Record

	ContactsErr error
	ShippingErr error
	BillingErr  error
	SearchErr   error
	RecordErr   error
}

// DefaultProviders builds the dataset most tests share.
func DefaultProviders() *Providers {
	return &Providers{
		ContactsByAccount: map[string][]lookup.Contact{
			"acctA": {{ID: "cA1", Name: "Asha Rao", Email: "asha@a.example", Phone: "111", Fax: "911"}},
			"acctB": {
				{ID: "cB1", Name: "Bikram Shah", Email: "bikram@b.example", Phone: "222"},
				{ID: "cB2", Name: "Chitra Iyer", Email: "chitra@b.example", Phone: "333"},
			},
		},
		ShippingByAccount: map[string][]lookup.Address{
			"acctA": {
				{ID: "sA1", Parts: option.AddressParts{Street: "1 Mill Road", City: "Pune", Country: "India"}},
				{ID: "sA2", Parts: option.AddressParts{Street: "2 Hill Road", City: "Pune", Country: "India"}},
			},
			"acctB": {{ID: "sB1", Parts: option.AddressParts{Street: "9 Port Lane", City: "Chennai", Country: "India"}}},
		},
		BillingByAccount: map[string]option.AddressParts{
			"acctA": {Street: "1 Mill Road", City: "Pune", PostalCode: "411001", Country: "India"},
			"acctB": {Street: "9 Port Lane", City: "Chennai", PostalCode: "600001", Country: "India"},
		},
		Catalog: []lineitems.Product{
			{
				ID: "01t1", PricebookEntryID: "01u1", Name: "Sodium Silicate",
				UnitPrice: 120.5, PackingSizes: "PAPER BAGS 15 KGS;DRUM 200 L", UnitOfMeasure: "KG",
			},
			{
				ID: "01t2", PricebookEntryID: "01u2", Name: "Caustic Soda",
				UnitPrice: 89, PackingSizes: "25KG HDPE BAG", UnitOfMeasure: "KG",
			},
			{
				ID: "01t3", PricebookEntryID: "01u3", Name: "Soda Ash",
				UnitPrice: 45.75, PackingSizes: "BULK", UnitOfMeasure: "KG",
			},
		},
		HintsByAccount: map[string]lookup.HeaderHints{
			"acctA": {Currency: "INR", SpecialInstructions: "Deliver weekdays only"},
		},
		RecordsByID: map[string]lookup.Record{
			"0Q09000": {
				ID:        "0Q09000",
				AccountID: "acctA",
				Header: map[string]string{
					"expirationDate": "2026-04-30",
					"leadTime":       "2026-04-01",
					"paymentTerm":    "Net 30",
					"incoTerm":       "FOB",
					"currencyCode":   "INR",
				},
				ContactID:         "cA1",
				ShippingAddressID: "sA2",
				Lines: []lookup.RecordLine{
					{
						ID: "li-1",
						Product: lineitems.Product{
							ID: "01t1", PricebookEntryID: "01u1", Name: "Sodium Silicate",
							UnitPrice: 120.5, PackingSizes: "PAPER BAGS 15 KGS;DRUM 200 L", UnitOfMeasure: "KG",
						},
						Quantity:    40,
						UnitPrice:   118,
						PackingSize: "PAPER BAGS 15 KGS",
					},
				},
			},
		},
	}
}

// Contacts implements lookup.ContactProvider.
func (p *Providers) Contacts(_ context.Context, accountID string) ([]lookup.Contact, error) {
	if p.ContactsErr != nil {
		return nil, p.ContactsErr
	}
	return p.ContactsByAccount[accountID], nil
}

// ShippingAddresses implements lookup.AddressProvider.
func (p *Providers) ShippingAddresses(_ context.Context, accountID string) ([]lookup.Address, error) {
	if p.ShippingErr != nil {
		return nil, p.ShippingErr
	}
	return p.ShippingByAccount[accountID], nil
}

// BillingAddress implements lookup.AddressProvider.
func (p *Providers) BillingAddress(_ context.Context, accountID string) (option.AddressParts, error) {
	if p.BillingErr != nil {
		return option.AddressParts{}, p.BillingErr
	}
	return p.BillingByAccount[accountID], nil
}

// SearchProducts implements lookup.ProductSearcher with a case-insensitive
// substring match over the catalog.
func (p *Providers) SearchProducts(_ context.Context, keyword, _, _ string) ([]lineitems.Product, error) {
	if p.SearchErr != nil {
		return nil, p.SearchErr
	}
	q := strings.ToLower(keyword)
	var out []lineitems.Product
	for _, product := range p.Catalog {
		if strings.Contains(strings.ToLower(product.Name), q) {
			out = append(out, product)
		}
	}
	return out, nil
}

// HeaderHints implements lookup.HeaderHintProvider.
func (p *Providers) HeaderHints(_ context.Context, accountID string) (lookup.HeaderHints, error) {
	return p.HintsByAccount[accountID], nil
}

// Record implements lookup.RecordProvider.
func (p *Providers) Record(_ context.Context, recordID string) (lookup.Record, error) {
	if p.RecordErr != nil {
		return lookup.Record{}, p.RecordErr
	}
	rec, ok := p.RecordsByID[recordID]
	if !ok {
		return lookup.Record{}, fmt.Errorf("testsupport: no record %s", recordID)
	}
	return rec, nil
}

// Saver records save calls and can be scripted to fail.
type Saver struct {
	Calls    []submit.Payload
	Outcome  submit.Outcome
	Err      error
	sequence int
}

// SaveLineItems implements submit.Saver.
func (s *Saver) SaveLineItems(_ context.Context, payload submit.Payload) (submit.Outcome, error) {
	s.Calls = append(s.Calls, payload)
	if s.Err != nil {
		return submit.Outcome{}, s.Err
	}
	if s.Outcome.RecordID != "" {
		return s.Outcome, nil
	}
	s.sequence++
	return submit.Outcome{RecordID: fmt.Sprintf("0Q0%04d", s.sequence)}, nil
}

// Toast is one recorded notification.
type Toast struct {
	Title    string
	Message  string
	Severity submit.Severity
}

// Notifier records notifications.
type Notifier struct {
	Toasts []Toast
}

// Notify implements submit.Notifier.
func (n *Notifier) Notify(title, message string, severity submit.Severity) {
	n.Toasts = append(n.Toasts, Toast{Title: title, Message: message, Severity: severity})
}

// Navigator records navigation calls.
type Navigator struct {
	Navigated []string
	Closed    int
}

// NavigateToRecord implements submit.Navigator.
func (n *Navigator) NavigateToRecord(id string) { n.Navigated = append(n.Navigated, id) }

// CloseEditSurface implements submit.Navigator.
func (n *Navigator) CloseEditSurface() { n.Closed++ }
