package suggest

import (
	"strings"

	"github.com/goliatone/go-quoteflow/pkg/option"
)

// DefaultMinQueryLength is the minimum query length before matches appear.
// Panels filter an already-loaded cache, so no gate applies by default;
// remote-backed searches impose their own minimum at the workflow layer.
const DefaultMinQueryLength = 0

// Panel models one suggestion dropdown. It distinguishes "user is editing
// text" from "user cleared the field": emptying the query hides the panel
// but leaves any prior selection on the owning form untouched.
//
// Blur does not close the panel immediately. The browser counterpart delays
// close so a pending click on a suggestion still lands; here the intent is
// explicit: Blur marks a pending close, Select cancels it, and Settle applies
// whatever is still pending. Callers run Settle after the click window (for a
// UI, the next event-loop tick).
type Panel struct {
	cached       []option.Entry
	visible      []option.Entry
	query        string
	open         bool
	pendingClose bool
	minQuery     int
}

// NewPanel builds a panel over a cached option list. The list is copied;
// reloads replace it wholesale via SetEntries.
func NewPanel(entries []option.Entry) *Panel {
	return &Panel{cached: option.CloneAll(entries), minQuery: DefaultMinQueryLength}
}

// SetMinQueryLength sets the minimum query length before matches appear.
func (p *Panel) SetMinQueryLength(n int) {
	if n < 0 {
		n = 0
	}
	p.minQuery = n
}

// SetEntries replaces the cached list, refiltering if the panel is open.
func (p *Panel) SetEntries(entries []option.Entry) {
	p.cached = option.CloneAll(entries)
	if p.open {
		p.visible = p.filtered()
	}
}

// Focus opens the panel with the full cached list, not a re-fetch.
func (p *Panel) Focus() {
	p.open = true
	p.pendingClose = false
	p.query = ""
	p.visible = option.CloneAll(p.cached)
}

// Input records typed text and refilters. An emptied field hides the panel
// outright; a non-empty query keeps it open even when it clears every match,
// so the "no results" affordance can render.
func (p *Panel) Input(query string) {
	p.query = query
	p.pendingClose = false
	if strings.TrimSpace(query) == "" {
		p.open = false
		p.visible = nil
		return
	}
	p.open = true
	p.visible = p.filtered()
}

// Blur marks the panel for deferred close.
func (p *Panel) Blur() {
	if p.open {
		p.pendingClose = true
	}
}

// Select resolves a click on a visible suggestion. It cancels any pending
// blur-close, closes the panel, and returns the chosen entry.
func (p *Panel) Select(value string) (option.Entry, bool) {
	entry, ok := option.Find(p.visible, value)
	if !ok {
		return option.Entry{}, false
	}
	p.open = false
	p.pendingClose = false
	p.visible = nil
	return entry, true
}

// Settle applies a pending blur-close. Call once the click-selection window
// has passed.
func (p *Panel) Settle() {
	if p.pendingClose {
		p.open = false
		p.pendingClose = false
		p.visible = nil
	}
}

// Open reports whether the panel is showing.
func (p *Panel) Open() bool { return p.open }

// Query returns the current filter text.
func (p *Panel) Query() string { return p.query }

// Visible returns the entries currently shown.
func (p *Panel) Visible() []option.Entry { return option.CloneAll(p.visible) }

func (p *Panel) filtered() []option.Entry {
	if p.minQuery > 0 && len(p.query) < p.minQuery {
		return nil
	}
	return Filter(p.cached, p.query)
}
