package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-quoteflow/pkg/lookup"
	"github.com/goliatone/go-quoteflow/pkg/option"
)

// LoadRecord hydrates the form from the persisted record named by the
// activation context: account-dependent options load first, then the saved
// header values, selections, and line items. Partial option-load failures
// are returned but do not abort hydration; the form stays editable.
func (f *Form) LoadRecord(ctx context.Context) error {
	if f.ctx.RecordID == "" {
		return nil
	}
	if f.deps.Records == nil {
		return ErrNoRecordProvider
	}
	rec, err := f.deps.Records.Record(ctx, f.ctx.RecordID)
	if err != nil {
		return fmt.Errorf("workflow: load record %s: %w", f.ctx.RecordID, err)
	}

	loadErr := f.SwitchAccount(ctx, rec.AccountID)

	for name, value := range rec.Header {
		f.setHeaderIfDeclared(name, value)
	}
	if rec.ContactID != "" {
		if err := f.SelectContact(rec.ContactID); err != nil {
			loadErr = errors.Join(loadErr, err)
		}
	}
	if rec.ShippingAddressID != "" {
		if err := f.SelectShipping(rec.ShippingAddressID); err != nil {
			loadErr = errors.Join(loadErr, err)
		}
	}
	for _, line := range rec.Lines {
		f.table.Restore(line.ID, line.Product, line.Quantity, line.UnitPrice, line.PackingSize)
	}
	return loadErr
}

// SwitchAccount is the synchronous account-change flow: clear dependent
// selections, load the account's option sets, and apply them. The returned
// error reflects partial load failures; the form stays usable either way.
func (f *Form) SwitchAccount(ctx context.Context, accountID string) error {
	snap := f.StartAccountLoad(ctx, accountID)
	if err := f.ApplySnapshot(snap); err != nil {
		return err
	}
	return snap.Err()
}

// StartAccountLoad clears dependent selections and issues a load. Hosts that
// fetch asynchronously call this on the event that changed the account, then
// ApplySnapshot when the response lands; the generation token on the
// snapshot makes late responses harmless.
func (f *Form) StartAccountLoad(ctx context.Context, accountID string) lookup.Snapshot {
	f.clearDependents()
	f.accountID = accountID
	if f.deps.Loader == nil {
		return lookup.Snapshot{AccountID: accountID}
	}
	return f.deps.Loader.Load(ctx, accountID)
}

// ApplySnapshot installs a load result: option caches are replaced
// wholesale, a single shipping address auto-selects, and header hints seed
// unset fields. Snapshots from superseded loads are discarded with
// ErrStaleSnapshot.
func (f *Form) ApplySnapshot(snap lookup.Snapshot) error {
	if f.deps.Loader != nil && f.deps.Loader.Stale(snap) {
		return fmt.Errorf("%w: account %s", ErrStaleSnapshot, snap.AccountID)
	}

	f.accountID = snap.AccountID
	f.contacts = option.CloneAll(snap.Contacts)
	f.contactPanel.SetEntries(f.contacts)
	f.shipping = option.CloneAll(snap.Shipping)
	f.billing = snap.Billing
	f.propagateBilling()

	if snap.AutoShipping != nil {
		// Best effort; the entry always comes from the same snapshot.
		_ = f.SelectShipping(snap.AutoShipping.Value)
	}
	if snap.AutoContact != nil {
		_ = f.SelectContact(snap.AutoContact.Value)
	}

	if snap.Hints.Currency != "" && f.header[HeaderCurrency] == "" {
		f.setHeaderIfDeclared(HeaderCurrency, snap.Hints.Currency)
	}
	if snap.Hints.SpecialInstructions != "" && f.header[HeaderSpecialInstructions] == "" {
		f.setHeaderIfDeclared(HeaderSpecialInstructions, snap.Hints.SpecialInstructions)
	}
	return nil
}

// clearDependents drops every selection derived from the previous account so
// stale cross-account data can never leak into the new context.
func (f *Form) clearDependents() {
	f.contacts = nil
	f.contactPanel.SetEntries(nil)
	f.contactID = ""
	f.contactName = ""
	for _, field := range []string{HeaderEmail, HeaderPhone, HeaderFax} {
		f.setHeaderIfDeclared(field, "")
	}
	f.shipping = nil
	f.shippingID = ""
	f.shippingAddr = option.AddressParts{}
	f.billing = option.AddressParts{}
}

// SelectContact resolves a contact from the cached options and propagates
// its reachability attributes into the header.
func (f *Form) SelectContact(value string) error {
	entry, ok := option.Find(f.contacts, value)
	if !ok {
		return fmt.Errorf("%w: contact %q", ErrUnknownOption, value)
	}
	f.contactID = entry.Value
	f.contactName = entry.Label
	f.setHeaderIfDeclared(HeaderEmail, entry.MetaValue(option.MetaEmail))
	f.setHeaderIfDeclared(HeaderPhone, entry.MetaValue(option.MetaPhone))
	f.setHeaderIfDeclared(HeaderFax, entry.MetaValue(option.MetaFax))
	return nil
}

// ClearContact is the explicit "field cleared" action; editing text in the
// search box does not reach here.
func (f *Form) ClearContact() {
	f.contactID = ""
	f.contactName = ""
	for _, field := range []string{HeaderEmail, HeaderPhone, HeaderFax} {
		f.setHeaderIfDeclared(field, "")
	}
}

// ContactEmail reads the selected contact's email from the cached options.
func (f *Form) ContactEmail() string { return f.contactMeta(option.MetaEmail) }

// ContactPhone reads the selected contact's phone from the cached options.
func (f *Form) ContactPhone() string { return f.contactMeta(option.MetaPhone) }

func (f *Form) contactMeta(key string) string {
	if f.contactID == "" {
		return ""
	}
	if entry, ok := option.Find(f.contacts, f.contactID); ok {
		return entry.MetaValue(key)
	}
	return ""
}

// SelectShipping resolves a shipping address from the cached options and
// propagates its parts into the header address block.
func (f *Form) SelectShipping(value string) error {
	entry, ok := option.Find(f.shipping, value)
	if !ok {
		return fmt.Errorf("%w: shipping address %q", ErrUnknownOption, value)
	}
	f.shippingID = entry.Value
	f.shippingAddr = option.PartsFromEntry(entry)
	f.setHeaderIfDeclared("shippingStreet", f.shippingAddr.Street)
	f.setHeaderIfDeclared("shippingCity", f.shippingAddr.City)
	f.setHeaderIfDeclared("shippingState", f.shippingAddr.State)
	f.setHeaderIfDeclared("shippingPostalCode", f.shippingAddr.PostalCode)
	f.setHeaderIfDeclared("shippingCountry", f.shippingAddr.Country)
	return nil
}

func (f *Form) propagateBilling() {
	f.setHeaderIfDeclared("billingStreet", f.billing.Street)
	f.setHeaderIfDeclared("billingCity", f.billing.City)
	f.setHeaderIfDeclared("billingState", f.billing.State)
	f.setHeaderIfDeclared("billingPostalCode", f.billing.PostalCode)
	f.setHeaderIfDeclared("billingCountry", f.billing.Country)
}
