package html_test

import (
	"context"
	"strings"
	"testing"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-quoteflow/pkg/lookup"
	"github.com/goliatone/go-quoteflow/pkg/render"
	"github.com/goliatone/go-quoteflow/pkg/renderers/html"
	"github.com/goliatone/go-quoteflow/pkg/testsupport"
	"github.com/goliatone/go-quoteflow/pkg/workflow"
)

func buildForm(t *testing.T) *workflow.Form {
	t.Helper()

	providers := testsupport.DefaultProviders()
	loader := lookup.NewLoader(providers, providers, lookup.WithHeaderHints(providers))
	form := workflow.New(testsupport.QuoteDefinition(), workflow.Deps{
		Loader:   loader,
		Products: providers,
	}, workflow.WithClock(func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}))

	ctx := context.Background()
	if err := form.SwitchAccount(ctx, "acctA"); err != nil {
		t.Fatalf("switch account: %v", err)
	}
	if err := form.SelectContact("cA1"); err != nil {
		t.Fatalf("select contact: %v", err)
	}
	if err := form.SelectShipping("sA1"); err != nil {
		t.Fatalf("select shipping: %v", err)
	}
	if err := form.SetHeader("expirationDate", "2026-04-30"); err != nil {
		t.Fatalf("set header: %v", err)
	}

	rowID := form.Table().AddRow()
	if err := form.SearchRowProducts(ctx, rowID, "sodium"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if err := form.SelectRowProduct(rowID, "01u1"); err != nil {
		t.Fatalf("select product: %v", err)
	}
	if err := form.Table().ChangeQuantity(rowID, 37); err != nil {
		t.Fatalf("change quantity: %v", err)
	}
	return form
}

func renderToString(t *testing.T, form *workflow.Form, options render.Options) string {
	t.Helper()

	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), form, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderFilledForm(t *testing.T) {
	form := buildForm(t)
	doc := renderToString(t, form, render.Options{Action: "/quotes"})

	for _, want := range []string{
		"<title>Generate Quote</title>",
		`action="/quotes"`,
		`method="POST"`,
		`value="Asha Rao"`,
		"1 Mill Road, Pune, 411001, India",
		"Sodium Silicate",
		`data-mode="selected"`,
		">4458.50<", // 37 * 120.50
		`value="2026-04-30"`,
		`<option value="INR" selected>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
}

func TestRenderRoutesViolations(t *testing.T) {
	// An empty form fails broadly; route the messages and check placement.
	empty := workflow.New(testsupport.QuoteDefinition(), workflow.Deps{})
	violations := empty.Validate()
	doc := renderToString(t, empty, render.Options{Violations: violations})

	if !strings.Contains(doc, "Please select a contact.") {
		t.Error("contact violation not rendered")
	}
	if !strings.Contains(doc, "Please select a shipping address.") {
		t.Error("shipping violation not rendered")
	}
	if !strings.Contains(doc, "Please add at least one product.") {
		t.Error("line-item violation not rendered in page banner")
	}
	if !strings.Contains(doc, "Expiration Date is required.") {
		t.Error("field violation not rendered")
	}
	if !strings.Contains(doc, "qf-page-errors") {
		t.Error("page error banner missing")
	}
}

func TestRenderSearchModeRow(t *testing.T) {
	form := buildForm(t)
	ctx := context.Background()

	rowID := form.Table().AddRow()
	if err := form.SearchRowProducts(ctx, rowID, "zzzz"); err != nil {
		t.Fatalf("search: %v", err)
	}

	doc := renderToString(t, form, render.Options{})
	if !strings.Contains(doc, `value="zzzz"`) {
		t.Error("search query not rendered")
	}
	if !strings.Contains(doc, "No products found.") {
		t.Error("no-results state not rendered")
	}
}

func TestRenderMethodOverrideAndHidden(t *testing.T) {
	form := buildForm(t)
	doc := renderToString(t, form, render.Options{
		Method: "PUT",
		Hidden: []render.HiddenField{render.CSRFToken("_csrf", "tok123")},
	})

	if !strings.Contains(doc, `method="POST"`) {
		t.Error("non-browser verb must fall back to POST")
	}
	if !strings.Contains(doc, `name="_method" value="PUT"`) {
		t.Error("missing _method override input")
	}
	if !strings.Contains(doc, `name="_csrf" value="tok123"`) {
		t.Error("missing csrf hidden input")
	}
}

func TestRenderThemeVariables(t *testing.T) {
	form := buildForm(t)
	doc := renderToString(t, form, render.Options{
		Theme: &theme.RendererConfig{
			Theme:   "corporate",
			Variant: "dark",
			CSSVars: map[string]string{"--qf-accent": "#0070d2"},
		},
	})

	if !strings.Contains(doc, `data-theme="corporate"`) {
		t.Error("theme name not rendered")
	}
	if !strings.Contains(doc, `data-variant="dark"`) {
		t.Error("variant not rendered")
	}
	if !strings.Contains(doc, "--qf-accent: #0070d2;") {
		t.Error("css vars style block missing")
	}
}
