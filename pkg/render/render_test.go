package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-quoteflow/pkg/render"
	"github.com/goliatone/go-quoteflow/pkg/rules"
	"github.com/goliatone/go-quoteflow/pkg/workflow"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, *workflow.Form, render.Options) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := render.NewRegistry()

	if err := reg.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatal("duplicate registration must fail")
	}
	if err := reg.Register(stubRenderer{}); err == nil {
		t.Fatal("empty name must fail")
	}

	if _, err := reg.Get("missing"); err == nil {
		t.Fatal("expected lookup failure for unknown renderer")
	}
	r, err := reg.Get("html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if r.Name() != "html" {
		t.Fatalf("got renderer %q", r.Name())
	}
}

func TestRegistryList(t *testing.T) {
	reg := render.NewRegistry()
	for _, name := range []string{"tui", "html", "json"} {
		if err := reg.Register(stubRenderer{name: name}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	got := reg.List()
	want := []string{"html", "json", "tui"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("list = %v, want %v", got, want)
	}
	if !reg.Has("json") || reg.Has("xml") {
		t.Fatal("Has is inconsistent with List")
	}
}

func TestFieldViolationsGroupsByField(t *testing.T) {
	opts := render.Options{Violations: []rules.FieldError{
		{Field: "expirationDate", Message: "Expiration Date is required."},
		{Field: "", Message: "Please add at least one product."},
		{Field: "expirationDate", Message: "Expiration Date must be greater than today."},
	}}

	grouped := opts.FieldViolations()
	if len(grouped["expirationDate"]) != 2 {
		t.Fatalf("expirationDate messages = %v", grouped["expirationDate"])
	}
	if len(grouped[""]) != 1 {
		t.Fatalf("page messages = %v", grouped[""])
	}

	if (render.Options{}).FieldViolations() != nil {
		t.Fatal("no violations must yield nil map")
	}
}

func TestHiddenHelpers(t *testing.T) {
	if f := render.CSRFToken("_csrf", "tok"); f.Name != "_csrf" || f.Value != "tok" {
		t.Fatalf("csrf field: %+v", f)
	}
	if f := render.MethodOverride(" put "); f.Value != "PUT" {
		t.Fatalf("method override: %+v", f)
	}
	if f := render.RecordVersion(7); f.Name != "_version" || f.Value != "7" {
		t.Fatalf("version field: %+v", f)
	}
}
