// Package rules implements the pre-submit validation gate. A gate holds an
// ordered rule list and runs every rule, collecting all failures in one pass
// so the user sees the complete problem list rather than the first hit.
// Per-entity differences (which header fields are required, which date
// orderings apply) are expressed by composing rule constructors, not by
// copying the gate.
package rules

import (
	"strings"
	"time"

	"github.com/goliatone/go-quoteflow/pkg/lineitems"
)

// FieldError is one user-facing validation failure. Field identifies the
// offending header field or row, "" for form-level failures.
type FieldError struct {
	Field   string
	Message string
}

// FormView is the read-only slice of form state rules inspect. The workflow
// assembles it at validation time.
type FormView struct {
	// Header holds header field values keyed by field name. Dates use the
	// 2006-01-02 wire format.
	Header map[string]string

	ContactID    string
	ContactEmail string
	ContactPhone string
	ShippingID   string

	Rows []lineitems.Row

	// Now anchors date comparisons; the zero value means time.Now().
	Now time.Time
}

// HeaderValue reads a header field, "" when absent.
func (v FormView) HeaderValue(field string) string {
	if len(v.Header) == 0 {
		return ""
	}
	return v.Header[field]
}

func (v FormView) today() time.Time {
	now := v.Now
	if now.IsZero() {
		now = time.Now()
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Rule checks one aspect of the form and returns its failures.
type Rule func(FormView) []FieldError

// Gate is an ordered, exhaustive rule list.
type Gate struct {
	rules []Rule
}

// NewGate builds a gate from rules; nil rules are skipped.
func NewGate(rules ...Rule) *Gate {
	g := &Gate{}
	for _, rule := range rules {
		if rule != nil {
			g.rules = append(g.rules, rule)
		}
	}
	return g
}

// Append adds rules to the end of the gate's checklist.
func (g *Gate) Append(rules ...Rule) {
	for _, rule := range rules {
		if rule != nil {
			g.rules = append(g.rules, rule)
		}
	}
}

// Validate runs every rule and returns the concatenated failures in rule
// order. An empty result means submission may proceed.
func (g *Gate) Validate(v FormView) []FieldError {
	var out []FieldError
	for _, rule := range g.rules {
		out = append(out, rule(v)...)
	}
	return out
}

// DateFormat is the wire format for header date fields.
const DateFormat = "2006-01-02"

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateFormat, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
