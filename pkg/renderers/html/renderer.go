// Package html renders a form's state to a standalone HTML document using a
// pongo2 template set. Templates are embedded; deployments can override them
// from disk or swap the bundle wholesale.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/goliatone/go-quoteflow/pkg/lineitems"
	"github.com/goliatone/go-quoteflow/pkg/option"
	"github.com/goliatone/go-quoteflow/pkg/render"
	"github.com/goliatone/go-quoteflow/pkg/workflow"
)

const formTemplate = "templates/form"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	engine     *Engine
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithEngine injects a pre-built template engine.
func WithEngine(engine *Engine) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// Renderer renders forms as HTML documents.
type Renderer struct {
	engine *Engine
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine := cfg.engine
	if engine == nil {
		var err error
		engine, err = NewEngine(
			WithFS(cfg.templateFS),
			WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure engine: %w", err)
		}
	}
	return &Renderer{engine: engine}, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return "html" }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render implements render.Renderer.
func (r *Renderer) Render(_ context.Context, form *workflow.Form, options render.Options) ([]byte, error) {
	if form == nil {
		return nil, fmt.Errorf("html renderer: form is required")
	}

	result, err := r.engine.RenderTemplate(formTemplate, map[string]any{
		"form": buildViewContext(form, options),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render form: %w", err)
	}
	return []byte(result), nil
}

// buildViewContext flattens the form into the plain maps and slices the
// template consumes. Violations are routed to the surface that owns them:
// contact and shipping blocks, declared fields, or the page banner.
func buildViewContext(form *workflow.Form, options render.Options) map[string]any {
	def := form.Definition()
	violations := options.FieldViolations()

	declared := make(map[string]bool, len(def.Fields))
	fields := make([]map[string]any, 0, len(def.Fields))
	for _, field := range def.Fields {
		declared[field.Name] = true
		fields = append(fields, map[string]any{
			"name":        field.Name,
			"label":       def.FieldLabel(field.Name),
			"type":        string(field.Type),
			"value":       form.HeaderValue(field.Name),
			"required":    field.Required,
			"enum":        field.Enum,
			"placeholder": field.Placeholder,
			"errors":      violations[field.Name],
		})
	}

	var pageErrors []string
	for field, messages := range violations {
		switch {
		case field == "contact" || field == "shippingAddress" || declared[field]:
			// Owned by a rendered control.
		default:
			pageErrors = append(pageErrors, messages...)
		}
	}

	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = http.MethodPost
	}
	browserMethod := method
	hidden := append([]render.HiddenField(nil), options.Hidden...)
	if method != http.MethodGet && method != http.MethodPost {
		browserMethod = http.MethodPost
		hidden = append(hidden, render.MethodOverride(method))
	}
	hiddenCtx := make([]map[string]any, 0, len(hidden))
	for _, field := range hidden {
		hiddenCtx = append(hiddenCtx, map[string]any{"name": field.Name, "value": field.Value})
	}

	return map[string]any{
		"title":            def.Title,
		"entity":           def.Entity,
		"action":           options.Action,
		"browserMethod":    browserMethod,
		"hidden":           hiddenCtx,
		"pageErrors":       pageErrors,
		"contact":          map[string]any{"id": form.ContactID(), "name": form.ContactName()},
		"contactErrors":    violations["contact"],
		"shippingOptions":  entryMaps(form.ShippingOptions()),
		"shippingSelected": form.ShippingID(),
		"shippingErrors":   violations["shippingAddress"],
		"billing":          form.BillingDisplay(),
		"fields":           fields,
		"rows":             rowMaps(form.Rows()),
		"total":            form.Table().Total(),
		"theme":            themeMap(buildThemeContext(options.Theme)),
	}
}

func entryMaps(entries []option.Entry) []map[string]any {
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{"label": e.Label, "value": e.Value})
	}
	return out
}

func rowMaps(rows []lineitems.Row) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"id":                  row.ID,
			"mode":                string(row.Mode),
			"productName":         row.ProductName,
			"hsnCode":             row.HSNCode,
			"unitOfMeasure":       row.UnitOfMeasure,
			"quantity":            row.Quantity,
			"listPrice":           row.ListPrice,
			"editedPrice":         row.EditedPrice,
			"modifier":            row.Modifier,
			"packingOptions":      entryMaps(row.PackingSizeOptions),
			"selectedPackingSize": row.SelectedPackingSize,
			"packingQuantity":     row.PackingQuantity,
			"lineTotal":           row.LineTotal(),
			"searchQuery":         row.SearchQuery,
			"searchResults":       entryMaps(row.SearchResults),
			"noResults":           row.NoResults,
		})
	}
	return out
}

func themeMap(ctx themeContext) map[string]any {
	return map[string]any{
		"name":         ctx.Name,
		"variant":      ctx.Variant,
		"partials":     ctx.Partials,
		"tokens":       ctx.Tokens,
		"cssVars":      ctx.CSSVars,
		"cssVarsStyle": ctx.CSSVarsStyle,
	}
}
