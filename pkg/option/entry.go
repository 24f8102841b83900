package option

import "strings"

// Entry is a single selectable choice presented by pickers and suggestion
// panels. Meta carries display-adjacent attributes (email/phone/fax for
// contacts, address parts for shipping entries) keyed by attribute name.
type Entry struct {
	Label string            `json:"label"`
	Value string            `json:"value"`
	Meta  map[string]string `json:"meta,omitempty"`
}

// Meta keys populated by the contact and address loaders.
const (
	MetaEmail = "email"
	MetaPhone = "phone"
	MetaFax   = "fax"

	MetaStreet      = "street"
	MetaCity        = "city"
	MetaState       = "state"
	MetaPostalCode  = "postalCode"
	MetaCountry     = "country"
	MetaCountryCode = "countryCode"
	MetaStateCode   = "stateCode"
)

// New constructs an Entry with a sanitized label. Value is kept verbatim;
// labels arrive from remote CRM data and pass through the sanitizer.
func New(label, value string) Entry {
	return Entry{Label: SanitizeLabel(label), Value: value}
}

// WithMeta returns a copy of the entry with the key set. The receiver's meta
// map is never mutated.
func (e Entry) WithMeta(key, value string) Entry {
	meta := make(map[string]string, len(e.Meta)+1)
	for k, v := range e.Meta {
		meta[k] = v
	}
	meta[key] = value
	e.Meta = meta
	return e
}

// MetaValue reads a meta attribute, returning "" when absent.
func (e Entry) MetaValue(key string) string {
	if len(e.Meta) == 0 {
		return ""
	}
	return e.Meta[key]
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	out := Entry{Label: e.Label, Value: e.Value}
	if len(e.Meta) > 0 {
		out.Meta = make(map[string]string, len(e.Meta))
		for k, v := range e.Meta {
			out.Meta[k] = v
		}
	}
	return out
}

// CloneAll deep-copies a slice of entries. Loaders replace option sets
// wholesale on every reload, so callers hand out copies rather than sharing
// backing arrays.
func CloneAll(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Clone())
	}
	return out
}

// Find returns the first entry whose Value matches, or false.
func Find(entries []Entry, value string) (Entry, bool) {
	for _, e := range entries {
		if e.Value == value {
			return e.Clone(), true
		}
	}
	return Entry{}, false
}

// Labels projects the label column, mostly useful for prompt drivers that
// consume plain string option lists.
func Labels(entries []Entry) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

// AddressParts is the read-only billing/shipping address block propagated
// into form headers when an address entry is selected.
type AddressParts struct {
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	StateCode   string `json:"stateCode,omitempty"`
}

// IsZero reports whether no component of the address is set.
func (a AddressParts) IsZero() bool {
	return a == AddressParts{}
}

// Label joins the populated address components with ", " in display order.
func (a AddressParts) Label() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}

// AddressEntry builds a selectable entry for an address, using the joined
// label (or a fallback when every component is empty) and mirroring the parts
// into meta so selection handlers can propagate them into header fields.
func AddressEntry(id string, parts AddressParts) Entry {
	label := parts.Label()
	if label == "" {
		label = "Unknown Address"
	}
	entry := New(label, id)
	entry.Meta = map[string]string{
		MetaStreet:      parts.Street,
		MetaCity:        parts.City,
		MetaState:       parts.State,
		MetaPostalCode:  parts.PostalCode,
		MetaCountry:     parts.Country,
		MetaCountryCode: parts.CountryCode,
		MetaStateCode:   parts.StateCode,
	}
	return entry
}

// PartsFromEntry reverses AddressEntry, reading address meta back into parts.
func PartsFromEntry(e Entry) AddressParts {
	return AddressParts{
		Street:      e.MetaValue(MetaStreet),
		City:        e.MetaValue(MetaCity),
		State:       e.MetaValue(MetaState),
		PostalCode:  e.MetaValue(MetaPostalCode),
		Country:     e.MetaValue(MetaCountry),
		CountryCode: e.MetaValue(MetaCountryCode),
		StateCode:   e.MetaValue(MetaStateCode),
	}
}
