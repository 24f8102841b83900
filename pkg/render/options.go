package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-quoteflow/pkg/rules"
)

// Options describe per-request data renderers can use to customise their
// output without touching the form state itself.
type Options struct {
	// Action overrides the submit target the rendered surface posts to.
	Action string
	// Method overrides the HTTP method of the rendered form. Renderers
	// translate non-browser verbs into POST plus a hidden _method input.
	Method string
	// Violations surfaces validation gate output so renderers can attach
	// messages to their fields. Messages with an empty Field are page level.
	Violations []rules.FieldError
	// Hidden fields are emitted alongside the visible form (CSRF tokens,
	// record version stamps).
	Hidden []HiddenField
	// Theme carries the resolved theme configuration. Nil renders unthemed.
	Theme *theme.RendererConfig
}

// FieldViolations groups the violation messages by field name, with page
// level messages under the empty key.
func (o Options) FieldViolations() map[string][]string {
	if len(o.Violations) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, v := range o.Violations {
		out[v.Field] = append(out[v.Field], v.Message)
	}
	return out
}
