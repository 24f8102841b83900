package html

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"
)

// EngineOption configures the template engine before construction.
type EngineOption func(*engineConfig)

type engineConfig struct {
	baseDir   string
	templates fs.FS
	extension string
	globals   map[string]any
}

// WithBaseDir loads templates from a directory on disk, letting deployments
// override the embedded set.
func WithBaseDir(dir string) EngineOption {
	return func(cfg *engineConfig) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS, typically the embedded defaults.
func WithFS(files fs.FS) EngineOption {
	return func(cfg *engineConfig) {
		cfg.templates = files
	}
}

// WithExtension overrides the default template extension.
func WithExtension(ext string) EngineOption {
	return func(cfg *engineConfig) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGlobals seeds context values available to every template.
func WithGlobals(data map[string]any) EngineOption {
	return func(cfg *engineConfig) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithGoTemplateOptions exists for hosts already configured against the
// go-template engine surface; the pongo2 set handles those concerns here.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) EngineOption {
	return func(*engineConfig) {}
}

// Engine is a pongo2-backed template set with a parsed-template cache.
type Engine struct {
	mu          sync.RWMutex
	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
}

// NewEngine constructs an Engine from the configured loaders.
func NewEngine(options ...EngineOption) (*Engine, error) {
	cfg := &engineConfig{extension: ".tpl"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("html: need either a base dir or an fs.FS of templates")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("html: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("quoteflow", loaders...),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      cfg.extension,
	}
	registerDefaultFilters()

	if len(cfg.globals) > 0 {
		ctx, err := toContext(cfg.globals)
		if err != nil {
			return nil, fmt.Errorf("html: apply globals: %w", err)
		}
		engine.templateSet.Globals = ctx
	}
	return engine, nil
}

// RenderTemplate executes a named template against data.
func (e *Engine) RenderTemplate(name string, data any) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("html: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.tplExt) {
		path += e.tplExt
	}

	tmpl, err := e.template(path)
	if err != nil {
		return "", err
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("html: convert data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("html: execute template %q: %w", path, err)
	}
	return buf.String(), nil
}

// RegisterFilter registers a template filter on the shared pongo2 registry.
func (e *Engine) RegisterFilter(name string, fn func(input, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("html: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("html: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("html: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// toContext converts arbitrary data into a pongo2 context. Maps pass
// through; structs take a JSON round trip so templates see their tags.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out := map[string]any{}
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, err
		}
		return pongo2.Context(out), nil
	}
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("money") {
		_ = pongo2.RegisterFilter("money", filterMoney)
	}
	if !pongo2.FilterExists("orblank") {
		_ = pongo2.RegisterFilter("orblank", filterOrBlank)
	}
}

// filterMoney renders a numeric value with two decimals for the price and
// total columns.
func filterMoney(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(fmt.Sprintf("%.2f", in.Float())), nil
}

// filterOrBlank maps nil and empty values to an empty string so unset
// numeric cells do not render as "0".
func filterOrBlank(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() || in.Len() <= 0 && in.String() == "" {
		return pongo2.AsValue(""), nil
	}
	return in, nil
}
