// Package quoteflow assembles the editing workflow behind CRM quote and
// order forms: context resolution, dependent option loading, the line-item
// table, exhaustive validation, and the atomic submit flow. This file is the
// facade; the pieces live under pkg/ and can be used independently.
package quoteflow

import (
	"context"
	"io/fs"
	"net/url"

	"github.com/goliatone/go-quoteflow/internal/openapi"
	"github.com/goliatone/go-quoteflow/pkg/formctx"
	"github.com/goliatone/go-quoteflow/pkg/formdef"
	"github.com/goliatone/go-quoteflow/pkg/render"
	"github.com/goliatone/go-quoteflow/pkg/renderers/html"
	"github.com/goliatone/go-quoteflow/pkg/workflow"
)

// NewForm builds a form over a definition and its collaborators.
func NewForm(def formdef.Definition, deps workflow.Deps, options ...workflow.Option) *workflow.Form {
	return workflow.New(def, deps, options...)
}

// ResolveContext resolves the record the editor was opened against from a
// direct id plus the host's launch parameters.
func ResolveContext(providedID string, params url.Values) formctx.Context {
	return formctx.Resolve(formctx.ResolveInput{ProvidedID: providedID, Params: params}, formctx.Options{})
}

// LoadDefinitions walks a filesystem for form definition documents (YAML or
// JSON) and returns them as a store keyed by entity.
func LoadDefinitions(fsys fs.FS) (*formdef.Store, error) {
	return formdef.LoadFS(fsys)
}

// DefinitionFromOpenAPI derives a form definition from the request schema of
// one operation in an OpenAPI document, using the internal parser while
// keeping the concrete implementation hidden from consumers.
func DefinitionFromOpenAPI(ctx context.Context, document []byte, operationID string) (formdef.Definition, error) {
	return openapi.ParseDefinition(ctx, document, operationID)
}

// NewRendererRegistry returns a registry with the built-in renderers wired
// in. Hosts register their own renderers on top.
func NewRendererRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	return registry, nil
}
