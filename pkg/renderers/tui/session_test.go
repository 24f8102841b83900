package tui_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-quoteflow/pkg/lookup"
	"github.com/goliatone/go-quoteflow/pkg/renderers/tui"
	"github.com/goliatone/go-quoteflow/pkg/submit"
	"github.com/goliatone/go-quoteflow/pkg/testsupport"
	"github.com/goliatone/go-quoteflow/pkg/workflow"
)

// scriptDriver replays queued answers and records informational output.
type scriptDriver struct {
	t        *testing.T
	inputs   []string
	confirms []bool
	selects  []int
	infos    []string
}

func (d *scriptDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		d.t.Fatalf("unexpected input prompt %q", cfg.Message)
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(next); err != nil {
			d.t.Fatalf("scripted answer %q rejected by %q validator: %v", next, cfg.Message, err)
		}
	}
	return next, nil
}

func (d *scriptDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		d.t.Fatalf("unexpected confirm prompt %q", cfg.Message)
	}
	next := d.confirms[0]
	d.confirms = d.confirms[1:]
	return next, nil
}

func (d *scriptDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		d.t.Fatalf("unexpected select prompt %q", cfg.Message)
	}
	next := d.selects[0]
	d.selects = d.selects[1:]
	if next < 0 || next >= len(cfg.Options) {
		d.t.Fatalf("scripted choice %d out of range for %q (%d options)", next, cfg.Message, len(cfg.Options))
	}
	return next, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type sessionFixture struct {
	form      *workflow.Form
	saver     *testsupport.Saver
	notifier  *testsupport.Notifier
	navigator *testsupport.Navigator
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	providers := testsupport.DefaultProviders()
	loader := lookup.NewLoader(providers, providers, lookup.WithHeaderHints(providers))
	saver := &testsupport.Saver{}
	notifier := &testsupport.Notifier{}
	navigator := &testsupport.Navigator{}
	form := workflow.New(testsupport.QuoteDefinition(), workflow.Deps{
		Loader:      loader,
		Products:    providers,
		Coordinator: submit.NewCoordinator(saver, notifier, navigator),
	}, workflow.WithClock(func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}))
	if err := form.SwitchAccount(context.Background(), "acctA"); err != nil {
		t.Fatalf("switch account: %v", err)
	}
	return &sessionFixture{form: form, saver: saver, notifier: notifier, navigator: navigator}
}

func TestSessionHappyPath(t *testing.T) {
	fx := newSessionFixture(t)
	driver := &scriptDriver{
		t: t,
		inputs: []string{
			"2026-04-30", // expirationDate
			"2026-04-01", // leadTime
			"",           // email, filled by contact selection afterwards
			"",           // phone
			"",           // fax
			"Deliver weekdays only",
			"sodium", // product search
			"37",     // quantity
			"118.25", // unit price
		},
		selects:  []int{0, 0, 0, 0, 0, 0, 0}, // paymentTerm, incoTerm, currency, contact, shipping, product, packing
		confirms: []bool{true, false},
	}

	session := tui.NewSession(fx.form, tui.WithPromptDriver(driver))
	outcome, violations, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if outcome.RecordID == "" {
		t.Fatal("expected a saved record id")
	}

	if len(fx.saver.Calls) != 1 {
		t.Fatalf("expected one save, got %d", len(fx.saver.Calls))
	}
	line := fx.saver.Calls[0].Lines[0]
	if line.Quantity != 37 || line.UnitPrice != 118.25 {
		t.Fatalf("line payload: %+v", line)
	}
	if line.PackingQuantity != "3" {
		t.Fatalf("packing quantity = %q, want 3 (ceil 37/15)", line.PackingQuantity)
	}
	if got := fx.form.HeaderValue("email"); got != "asha@a.example" {
		t.Fatalf("contact email not propagated, got %q", got)
	}
	if len(driver.inputs)+len(driver.selects)+len(driver.confirms) != 0 {
		t.Fatalf("script not fully consumed: %d/%d/%d left",
			len(driver.inputs), len(driver.selects), len(driver.confirms))
	}
}

func TestSessionNoSearchResultsDropsRow(t *testing.T) {
	fx := newSessionFixture(t)
	driver := &scriptDriver{
		t: t,
		inputs: []string{
			"2026-04-30", "2026-04-01", "", "", "", "",
			"zzzz", // search that matches nothing
		},
		selects:  []int{0, 0, 0, 0, 0},
		confirms: []bool{true, false},
	}

	session := tui.NewSession(fx.form, tui.WithPromptDriver(driver))
	_, violations, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if fx.form.Table().Len() != 0 {
		t.Fatalf("empty search must drop the row, table has %d rows", fx.form.Table().Len())
	}
	found := false
	for _, msg := range driver.infos {
		if msg == "No products found." {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing no-results notice, infos = %v", driver.infos)
	}
	// No rows means the gate blocks the submit.
	if len(violations) == 0 {
		t.Fatal("expected validation failures with no rows")
	}
	if len(fx.saver.Calls) != 0 {
		t.Fatal("save must not run when validation fails")
	}
}

func TestSessionSurfacesValidationMessages(t *testing.T) {
	fx := newSessionFixture(t)
	driver := &scriptDriver{
		t: t,
		inputs: []string{
			"2020-01-01", // expired before today
			"2026-04-01",
			"", "", "", "",
			"sodium", "37", "118.25",
		},
		selects:  []int{0, 0, 0, 0, 0, 0, 0},
		confirms: []bool{true, false},
	}

	session := tui.NewSession(fx.form, tui.WithPromptDriver(driver))
	_, violations, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(violations) == 0 {
		t.Fatal("expected validation failures")
	}
	joined := strings.Join(driver.infos, "\n")
	if !strings.Contains(joined, "must be greater than today.") {
		t.Fatalf("violation not surfaced to the terminal, infos = %v", driver.infos)
	}
	if len(fx.saver.Calls) != 0 {
		t.Fatal("save must not run when validation fails")
	}
}
