package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-quoteflow/pkg/renderers/tui"
	"github.com/goliatone/go-quoteflow/pkg/testsupport"
)

// cliScript replays queued answers so the tui mode runs without a terminal.
type cliScript struct {
	t        *testing.T
	inputs   []string
	confirms []bool
	selects  []int
	infos    []string
}

func (d *cliScript) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
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

func (d *cliScript) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		d.t.Fatalf("unexpected confirm prompt %q", cfg.Message)
	}
	next := d.confirms[0]
	d.confirms = d.confirms[1:]
	return next, nil
}

func (d *cliScript) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
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

func (d *cliScript) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestRunTUISavesAgainstSampleProviders(t *testing.T) {
	driver := &cliScript{
		t: t,
		inputs: []string{
			"2199-12-31", // expiration date
			"2199-06-30", // lead date
			"",           // email, filled by contact selection
			"",           // phone
			"",           // fax
			"",           // special instructions
			"sil",        // product search
			"40",         // quantity
			"118",        // unit price
		},
		// payment term, inco term, currency, contact, shipping, product,
		// packing size
		selects:  []int{0, 0, 0, 0, 0, 0, 0},
		confirms: []bool{true, false},
	}

	var out bytes.Buffer
	err := runTUI(context.Background(), testsupport.QuoteDefinition(), "", "acctA",
		&out, tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("runTUI: %v", err)
	}

	if !strings.Contains(out.String(), "Saved record 0Q0") {
		t.Fatalf("expected a saved-record line, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "left the form open") {
		t.Fatalf("form should have validated cleanly:\n%s", out.String())
	}
	if len(driver.inputs)+len(driver.selects)+len(driver.confirms) != 0 {
		t.Fatalf("script not fully consumed: %d inputs, %d selects, %d confirms left",
			len(driver.inputs), len(driver.selects), len(driver.confirms))
	}
}

func TestRunTUIHydratesRecordForEditing(t *testing.T) {
	// Opening a persisted record skips account selection: the saved
	// selections become the prompt defaults and no-change answers keep them.
	driver := &cliScript{
		t: t,
		inputs: []string{
			"2199-12-31", // expiration date, moved out
			"2199-06-30", // lead date
			"asha@a.example",
			"111",
			"911",
			"",
		},
		// payment term, inco term, currency, contact, shipping
		selects:  []int{0, 0, 0, 0, 1},
		confirms: []bool{false},
	}

	var out bytes.Buffer
	err := runTUI(context.Background(), testsupport.QuoteDefinition(), "0Q09000", "ignored",
		&out, tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("runTUI: %v", err)
	}

	// The restored line item carries through without re-entry.
	if !strings.Contains(out.String(), "Saved record 0Q0") {
		t.Fatalf("expected a saved-record line, got:\n%s", out.String())
	}
}
