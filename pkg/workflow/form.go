// Package workflow owns the aggregate form state of one editor instance:
// header fields declared by a form definition, the dependent contact and
// address selections, the line-item table, and the deletion list. It wires
// the loader, validation gate, and submit coordinator into the data flow the
// editors share: resolve context, load dependent options, edit, validate,
// submit. State is owned exclusively by the Form; nothing is shared across
// instances or sessions.
package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-quoteflow/pkg/formctx"
	"github.com/goliatone/go-quoteflow/pkg/formdef"
	"github.com/goliatone/go-quoteflow/pkg/lineitems"
	"github.com/goliatone/go-quoteflow/pkg/lookup"
	"github.com/goliatone/go-quoteflow/pkg/option"
	"github.com/goliatone/go-quoteflow/pkg/rules"
	"github.com/goliatone/go-quoteflow/pkg/submit"
	"github.com/goliatone/go-quoteflow/pkg/suggest"
)

// Header field names the workflow propagates selections into when the form
// definition declares them.
const (
	HeaderEmail               = "email"
	HeaderPhone               = "phone"
	HeaderFax                 = "fax"
	HeaderCurrency            = "currencyCode"
	HeaderSpecialInstructions = "specialInstructions"
)

var (
	// ErrUnknownField is returned when a header write names a field the
	// definition does not declare.
	ErrUnknownField = errors.New("workflow: unknown header field")
	// ErrUnknownOption is returned when a selection misses the cached
	// option sets.
	ErrUnknownOption = errors.New("workflow: unknown option value")
	// ErrStaleSnapshot is returned when an option snapshot from a
	// superseded load is offered; the snapshot is discarded.
	ErrStaleSnapshot = errors.New("workflow: stale option snapshot discarded")
	// ErrCurrencyRequired gates product searches until a currency is set.
	ErrCurrencyRequired = errors.New("workflow: select a currency before searching products")
	// ErrNoRecordProvider is returned by LoadRecord when no record
	// provider was wired into Deps.
	ErrNoRecordProvider = errors.New("workflow: record provider is required")
)

// Deps are the collaborators a form needs. Loader is mandatory for
// account-dependent flows; the rest may be nil for partial (headless or
// read-only) use.
type Deps struct {
	Loader      *lookup.Loader
	Products    lookup.ProductSearcher
	Records     lookup.RecordProvider
	Coordinator *submit.Coordinator
}

// Option customises a Form.
type Option func(*Form)

// WithClock overrides the time source used by date validation. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

// WithMinSearchLength overrides the product search keyword gate.
func WithMinSearchLength(n int) Option {
	return func(f *Form) {
		if n >= 0 {
			f.minSearch = n
		}
	}
}

// Form is one editor's aggregate state.
type Form struct {
	def  formdef.Definition
	gate *rules.Gate
	deps Deps

	ctx    formctx.Context
	header map[string]string

	accountID string

	contacts     []option.Entry
	contactPanel *suggest.Panel
	contactID    string
	contactName  string

	shipping     []option.Entry
	shippingID   string
	shippingAddr option.AddressParts

	billing option.AddressParts

	table lineitems.Table
	// searchCache holds the products behind each row's latest search
	// results, keyed by row id then pricebook entry id.
	searchCache map[int64]map[string]lineitems.Product

	now       func() time.Time
	minSearch int
}

// New builds a form for a definition, seeding header defaults.
func New(def formdef.Definition, deps Deps, options ...Option) *Form {
	f := &Form{
		def:          def,
		gate:         formdef.BuildGate(def),
		deps:         deps,
		header:       make(map[string]string),
		contactPanel: suggest.NewPanel(nil),
		searchCache:  make(map[int64]map[string]lineitems.Product),
		now:          time.Now,
		minSearch:    2,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	for name, value := range def.Defaults() {
		f.header[name] = value
	}
	return f
}

// Activate binds the resolved activation context. An empty record id leaves
// the form in new-record mode.
func (f *Form) Activate(ctx formctx.Context) {
	f.ctx = ctx
}

// Context returns the activation context.
func (f *Form) Context() formctx.Context { return f.ctx }

// Definition returns the declarative definition the form was built from.
func (f *Form) Definition() formdef.Definition { return f.def }

// SetHeader writes a header field declared by the definition.
func (f *Form) SetHeader(field, value string) error {
	if _, ok := f.def.Field(field); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f.header[field] = value
	return nil
}

// HeaderValue reads a header field, "" when unset.
func (f *Form) HeaderValue(field string) string { return f.header[field] }

// Header returns a copy of the header values.
func (f *Form) Header() map[string]string {
	out := make(map[string]string, len(f.header))
	for k, v := range f.header {
		out[k] = v
	}
	return out
}

// AccountID returns the account the dependent options belong to.
func (f *Form) AccountID() string { return f.accountID }

// Table gives mutating access to the line-item table.
func (f *Form) Table() *lineitems.Table { return &f.table }

// Rows returns a copy of the current line rows.
func (f *Form) Rows() []lineitems.Row { return f.table.Rows() }

// Contacts returns the cached contact options.
func (f *Form) Contacts() []option.Entry { return option.CloneAll(f.contacts) }

// ShippingOptions returns the cached shipping address options.
func (f *Form) ShippingOptions() []option.Entry { return option.CloneAll(f.shipping) }

// Billing returns the read-only billing address block.
func (f *Form) Billing() option.AddressParts { return f.billing }

// BillingDisplay renders the billing address for the header, with the
// empty-state text the editors show.
func (f *Form) BillingDisplay() string {
	if f.billing.IsZero() {
		return "No billing address found"
	}
	return f.billing.Label()
}

// ContactID returns the selected contact id, "" when none.
func (f *Form) ContactID() string { return f.contactID }

// ContactName returns the selected contact's display name.
func (f *Form) ContactName() string { return f.contactName }

// ShippingID returns the selected shipping address id, "" when none.
func (f *Form) ShippingID() string { return f.shippingID }

// ShippingAddress returns the selected shipping address parts.
func (f *Form) ShippingAddress() option.AddressParts { return f.shippingAddr }

// ContactPanel exposes the contact suggestion panel state machine.
func (f *Form) ContactPanel() *suggest.Panel { return f.contactPanel }

// setHeaderIfDeclared propagates derived values only into fields the
// definition actually declares, so propagation never invents header keys.
func (f *Form) setHeaderIfDeclared(field, value string) {
	if _, ok := f.def.Field(field); ok {
		f.header[field] = value
	}
}
