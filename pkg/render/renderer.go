// Package render defines the contract between form state and its output
// surfaces: a Renderer turns one editor's state into bytes (HTML, terminal
// transcripts, JSON, ...) and the Registry wires renderers in by name.
package render

import (
	"context"

	"github.com/goliatone/go-quoteflow/pkg/workflow"
)

// Renderer converts a form's current state into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *workflow.Form, options Options) ([]byte, error)
}
