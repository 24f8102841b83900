package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"

	quoteflow "github.com/goliatone/go-quoteflow"
	"github.com/goliatone/go-quoteflow/pkg/formctx"
	"github.com/goliatone/go-quoteflow/pkg/formdef"
	"github.com/goliatone/go-quoteflow/pkg/lookup"
	"github.com/goliatone/go-quoteflow/pkg/render"
	"github.com/goliatone/go-quoteflow/pkg/renderers/tui"
	"github.com/goliatone/go-quoteflow/pkg/submit"
	"github.com/goliatone/go-quoteflow/pkg/testsupport"
	"github.com/goliatone/go-quoteflow/pkg/workflow"
)

func main() {
	definitions := flag.String("definitions", "definitions", "directory of form definition documents")
	entity := flag.String("entity", "quote", "entity whose definition to render")
	openapiPath := flag.String("openapi", "", "derive the definition from an OpenAPI document instead")
	operation := flag.String("operation", "createQuote", "operation ID when using -openapi")
	renderer := flag.String("renderer", "html", "renderer to use, or \"tui\" for an interactive session")
	record := flag.String("record", "", "record id or base64 context reference to open against")
	account := flag.String("account", "acctA", "sample account for the tui session")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	def, err := loadDefinition(ctx, *definitions, *entity, *openapiPath, *operation)
	if err != nil {
		log.Fatalf("Failed to load definition: %v", err)
	}

	if *renderer == "tui" {
		if err := runTUI(ctx, def, *record, *account, os.Stdout); err != nil {
			log.Fatalf("Session failed: %v", err)
		}
		return
	}

	form := quoteflow.NewForm(def, workflow.Deps{})
	form.Activate(resolveRecord(*record))

	registry, err := quoteflow.NewRendererRegistry()
	if err != nil {
		log.Fatalf("Failed to build renderers: %v", err)
	}
	r, err := registry.Get(*renderer)
	if err != nil {
		log.Fatalf("Unknown renderer %q (have: %s)", *renderer, strings.Join(registry.List(), ", "))
	}

	rendered, err := r.Render(ctx, form, render.Options{})
	if err != nil {
		log.Fatalf("Failed to render form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, rendered, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(string(rendered))
	}
}

// runTUI walks the form interactively against the in-memory sample
// providers: no record id means a fresh form on the sample account, a known
// record id opens that record for editing.
func runTUI(ctx context.Context, def formdef.Definition, record, account string, out io.Writer, sessionOpts ...tui.Option) error {
	providers := testsupport.DefaultProviders()
	loader := lookup.NewLoader(providers, providers, lookup.WithHeaderHints(providers))

	saver := &testsupport.Saver{}
	notifier := &testsupport.Notifier{}
	var opts []submit.Option
	if def.SuccessMessage != "" {
		opts = append(opts, submit.WithSuccessMessage(def.SuccessMessage))
	}
	coordinator := submit.NewCoordinator(saver, notifier, &testsupport.Navigator{}, opts...)

	form := quoteflow.NewForm(def, workflow.Deps{
		Loader:      loader,
		Products:    providers,
		Records:     providers,
		Coordinator: coordinator,
	})
	form.Activate(resolveRecord(record))
	if err := form.LoadRecord(ctx); err != nil {
		return err
	}
	if form.AccountID() == "" {
		if err := form.SwitchAccount(ctx, account); err != nil {
			return err
		}
	}

	outcome, violations, err := tui.NewSession(form, sessionOpts...).Run(ctx)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		fmt.Fprintf(out, "%d issue(s) left the form open.\n", len(violations))
		return nil
	}
	for _, toast := range notifier.Toasts {
		fmt.Fprintf(out, "[%s] %s %s\n", toast.Severity, toast.Title, toast.Message)
	}
	fmt.Fprintf(out, "Saved record %s\n", outcome.RecordID)
	return nil
}

func loadDefinition(ctx context.Context, dir, entity, openapiPath, operation string) (formdef.Definition, error) {
	if openapiPath != "" {
		data, err := os.ReadFile(openapiPath)
		if err != nil {
			return formdef.Definition{}, err
		}
		return quoteflow.DefinitionFromOpenAPI(ctx, data, operation)
	}

	store, err := quoteflow.LoadDefinitions(os.DirFS(dir))
	if err != nil {
		return formdef.Definition{}, err
	}
	return store.Definition(entity)
}

// resolveRecord accepts either a plain record id or the base64 context
// reference hosts embed in their launch URLs.
func resolveRecord(raw string) formctx.Context {
	raw = strings.TrimSpace(raw)
	params := url.Values{}
	if raw != "" {
		if _, err := formctx.DecodeWrapperRef(raw); err == nil {
			params.Set(formctx.ParamWrapperRef, raw)
			return quoteflow.ResolveContext("", params)
		}
	}
	return quoteflow.ResolveContext(raw, params)
}
