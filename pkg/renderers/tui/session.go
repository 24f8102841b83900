// Package tui walks a form in the terminal: header fields, contact and
// shipping selection, and the product rows, prompt by prompt, then hands the
// result to the submit flow. The prompt driver is swappable so the session
// logic tests run without a terminal.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-quoteflow/pkg/formdef"
	"github.com/goliatone/go-quoteflow/pkg/option"
	"github.com/goliatone/go-quoteflow/pkg/rules"
	"github.com/goliatone/go-quoteflow/pkg/submit"
	"github.com/goliatone/go-quoteflow/pkg/workflow"
)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver. The default talks to the
// terminal via survey.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// Session drives one form through an interactive terminal conversation.
type Session struct {
	form   *workflow.Form
	driver PromptDriver
}

// NewSession builds a session over a form.
func NewSession(form *workflow.Form, options ...Option) *Session {
	s := &Session{
		form:   form,
		driver: NewSurveyDriver(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run collects every input the form needs and submits. Validation failures
// are printed and returned with a nil error, mirroring the underlying submit
// flow; the caller decides whether to run again.
func (s *Session) Run(ctx context.Context) (submit.Outcome, []rules.FieldError, error) {
	if err := s.collectHeader(ctx); err != nil {
		return submit.Outcome{}, nil, err
	}
	if err := s.selectContact(ctx); err != nil {
		return submit.Outcome{}, nil, err
	}
	if err := s.selectShipping(ctx); err != nil {
		return submit.Outcome{}, nil, err
	}
	if err := s.collectRows(ctx); err != nil {
		return submit.Outcome{}, nil, err
	}

	outcome, violations, err := s.form.Submit(ctx)
	if err != nil {
		return submit.Outcome{}, nil, err
	}
	for _, violation := range violations {
		if infoErr := s.driver.Info(ctx, violation.Message); infoErr != nil {
			return submit.Outcome{}, violations, infoErr
		}
	}
	return outcome, violations, nil
}

func (s *Session) collectHeader(ctx context.Context) error {
	def := s.form.Definition()
	for _, field := range def.Fields {
		value, err := s.promptField(ctx, def, field)
		if err != nil {
			return err
		}
		if err := s.form.SetHeader(field.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, def formdef.Definition, field formdef.Field) (string, error) {
	label := def.FieldLabel(field.Name)
	current := s.form.HeaderValue(field.Name)

	if field.Type == formdef.FieldTypeEnum {
		idx := s.driverSelectDefault(field.Enum, current)
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Enum,
			DefaultIndex: idx,
		})
		if err != nil {
			return "", err
		}
		if choice < 0 || choice >= len(field.Enum) {
			return "", ErrNoSelection
		}
		return field.Enum[choice], nil
	}

	cfg := InputConfig{
		Message:     label,
		Default:     current,
		Placeholder: field.Placeholder,
	}
	switch field.Type {
	case formdef.FieldTypeDate:
		cfg.Help = "Format: " + rules.DateFormat
		cfg.Validator = dateValidator(field.Required)
	case formdef.FieldTypeNumber, formdef.FieldTypeInteger:
		cfg.Validator = numberValidator(field.Required)
	}
	return s.driver.Input(ctx, cfg)
}

func (s *Session) selectContact(ctx context.Context) error {
	contacts := s.form.Contacts()
	if len(contacts) == 0 {
		return nil
	}
	idx := s.driverSelectDefault(option.Labels(contacts), s.form.ContactName())
	choice, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Contact",
		Options:      option.Labels(contacts),
		DefaultIndex: idx,
	})
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(contacts) {
		return ErrNoSelection
	}
	return s.form.SelectContact(contacts[choice].Value)
}

func (s *Session) selectShipping(ctx context.Context) error {
	addresses := s.form.ShippingOptions()
	if len(addresses) == 0 {
		return nil
	}
	var current string
	if selected, ok := option.Find(addresses, s.form.ShippingID()); ok {
		current = selected.Label
	}
	choice, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Shipping address",
		Options:      option.Labels(addresses),
		DefaultIndex: s.driverSelectDefault(option.Labels(addresses), current),
	})
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(addresses) {
		return ErrNoSelection
	}
	return s.form.SelectShipping(addresses[choice].Value)
}

func (s *Session) collectRows(ctx context.Context) error {
	for {
		message := "Add a product?"
		if s.form.Table().Len() > 0 {
			message = "Add another product?"
		}
		more, err := s.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: s.form.Table().Empty()})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := s.collectRow(ctx); err != nil {
			return err
		}
	}
}

func (s *Session) collectRow(ctx context.Context) error {
	rowID := s.form.Table().AddRow()

	query, err := s.driver.Input(ctx, InputConfig{Message: "Search products"})
	if err != nil {
		return err
	}
	if err := s.form.SearchRowProducts(ctx, rowID, query); err != nil {
		_ = s.form.RemoveRow(rowID)
		return err
	}

	row, err := s.form.Table().Row(rowID)
	if err != nil {
		return err
	}
	if len(row.SearchResults) == 0 {
		if err := s.driver.Info(ctx, "No products found."); err != nil {
			return err
		}
		return s.form.RemoveRow(rowID)
	}

	choice, err := s.driver.Select(ctx, SelectConfig{
		Message: "Product",
		Options: option.Labels(row.SearchResults),
	})
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(row.SearchResults) {
		return ErrNoSelection
	}
	if err := s.form.SelectRowProduct(rowID, row.SearchResults[choice].Value); err != nil {
		return err
	}

	quantityText, err := s.driver.Input(ctx, InputConfig{
		Message:   "Quantity",
		Default:   "1",
		Validator: numberValidator(true),
	})
	if err != nil {
		return err
	}
	quantity, err := strconv.ParseFloat(quantityText, 64)
	if err != nil {
		return fmt.Errorf("tui: parse quantity: %w", err)
	}
	if err := s.form.Table().ChangeQuantity(rowID, quantity); err != nil {
		return err
	}

	row, err = s.form.Table().Row(rowID)
	if err != nil {
		return err
	}
	if len(row.PackingSizeOptions) > 0 {
		sizes := option.Labels(row.PackingSizeOptions)
		choice, err := s.driver.Select(ctx, SelectConfig{Message: "Packing size", Options: sizes})
		if err != nil {
			return err
		}
		if choice >= 0 && choice < len(row.PackingSizeOptions) {
			if err := s.form.Table().ChangePackingSize(rowID, row.PackingSizeOptions[choice].Value); err != nil {
				return err
			}
		}
	}

	priceText, err := s.driver.Input(ctx, InputConfig{
		Message:   "Unit price",
		Default:   strconv.FormatFloat(row.EditedPrice, 'f', 2, 64),
		Validator: numberValidator(true),
	})
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		return fmt.Errorf("tui: parse unit price: %w", err)
	}
	return s.form.Table().ChangeEditedPrice(rowID, price)
}

func (s *Session) driverSelectDefault(options []string, current string) int {
	if current == "" {
		return 0
	}
	if idx := indexOf(options, current); idx >= 0 {
		return idx
	}
	return 0
}

func dateValidator(required bool) func(string) error {
	return func(value string) error {
		if value == "" {
			if required {
				return fmt.Errorf("a date is required")
			}
			return nil
		}
		if _, err := time.Parse(rules.DateFormat, value); err != nil {
			return fmt.Errorf("expected %s", rules.DateFormat)
		}
		return nil
	}
}

func numberValidator(required bool) func(string) error {
	return func(value string) error {
		if value == "" {
			if required {
				return fmt.Errorf("a number is required")
			}
			return nil
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("expected a number")
		}
		return nil
	}
}
