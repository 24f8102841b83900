package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-quoteflow/pkg/option"
)

// Option customises a Loader.
type Option func(*Loader)

// WithAutoSelectFirstContact makes snapshots pre-select the first contact
// when any exist, the behaviour of flows that start from an opportunity.
func WithAutoSelectFirstContact() Option {
	return func(l *Loader) {
		l.autoFirstContact = true
	}
}

// WithHeaderHints attaches an optional per-account defaults provider.
func WithHeaderHints(provider HeaderHintProvider) Option {
	return func(l *Loader) {
		l.hints = provider
	}
}

// WithLogf installs a diagnostics hook. Nil disables logging.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(l *Loader) {
		l.logf = logf
	}
}

// Loader issues dependent option loads for an account. Each Load increments
// the loader's generation; only the snapshot carrying the latest generation
// may be applied. The loader itself is single-consumer, matching the
// one-component-one-loader ownership of the editors.
type Loader struct {
	contacts  ContactProvider
	addresses AddressProvider
	hints     HeaderHintProvider

	autoFirstContact bool
	logf             func(format string, args ...any)
	generation       uint64
}

// NewLoader builds a Loader over the two mandatory providers.
func NewLoader(contacts ContactProvider, addresses AddressProvider, options ...Option) *Loader {
	l := &Loader{contacts: contacts, addresses: addresses}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Snapshot is the result of one dependent load. Option sets are replaced
// wholesale; a failing lookup leaves its set empty and records the error, so
// the form stays usable for everything else.
type Snapshot struct {
	AccountID string

	Contacts []option.Entry
	Shipping []option.Entry
	Billing  option.AddressParts
	Hints    HeaderHints

	// AutoShipping is set when exactly one shipping address came back, the
	// case the editors select automatically.
	AutoShipping *option.Entry
	// AutoContact is set when auto-first-contact is enabled and at least one
	// contact exists.
	AutoContact *option.Entry

	ContactsErr error
	AddressErr  error
	BillingErr  error
	HintsErr    error

	generation uint64
}

// Err joins the partial-load failures, nil when everything loaded.
func (s Snapshot) Err() error {
	return errors.Join(s.ContactsErr, s.AddressErr, s.BillingErr, s.HintsErr)
}

// Generation exposes the snapshot's token, mostly for logging.
func (s Snapshot) Generation() uint64 { return s.generation }

// Load fetches contacts, shipping addresses, and the billing address for the
// account. It always returns a snapshot: sub-load failures are recorded per
// field rather than aborting the whole load. An empty account id yields an
// empty snapshot immediately (the inert "new record" state).
func (l *Loader) Load(ctx context.Context, accountID string) Snapshot {
	l.generation++
	snap := Snapshot{AccountID: accountID, generation: l.generation}
	if accountID == "" {
		return snap
	}

	if contacts, err := l.contacts.Contacts(ctx, accountID); err != nil {
		snap.ContactsErr = fmt.Errorf("lookup: contacts for %s: %w", accountID, err)
		l.logFailure(snap.ContactsErr)
	} else {
		snap.Contacts = make([]option.Entry, 0, len(contacts))
		for _, c := range contacts {
			snap.Contacts = append(snap.Contacts, ContactEntry(c))
		}
		if l.autoFirstContact && len(snap.Contacts) > 0 {
			first := snap.Contacts[0].Clone()
			snap.AutoContact = &first
		}
	}

	if addresses, err := l.addresses.ShippingAddresses(ctx, accountID); err != nil {
		snap.AddressErr = fmt.Errorf("lookup: shipping addresses for %s: %w", accountID, err)
		l.logFailure(snap.AddressErr)
	} else {
		snap.Shipping = make([]option.Entry, 0, len(addresses))
		for _, addr := range addresses {
			snap.Shipping = append(snap.Shipping, option.AddressEntry(addr.ID, addr.Parts))
		}
		if len(snap.Shipping) == 1 {
			only := snap.Shipping[0].Clone()
			snap.AutoShipping = &only
		}
	}

	if billing, err := l.addresses.BillingAddress(ctx, accountID); err != nil {
		snap.BillingErr = fmt.Errorf("lookup: billing address for %s: %w", accountID, err)
		l.logFailure(snap.BillingErr)
	} else {
		snap.Billing = billing
	}

	if l.hints != nil {
		if hints, err := l.hints.HeaderHints(ctx, accountID); err != nil {
			snap.HintsErr = fmt.Errorf("lookup: header hints for %s: %w", accountID, err)
			l.logFailure(snap.HintsErr)
		} else {
			snap.Hints = hints
		}
	}

	return snap
}

// Stale reports whether a newer load has been issued since the snapshot was
// taken. Stale snapshots must be discarded, not applied.
func (l *Loader) Stale(s Snapshot) bool {
	return s.generation != l.generation
}

func (l *Loader) logFailure(err error) {
	if l.logf != nil {
		l.logf("%v", err)
	}
}
