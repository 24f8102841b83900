package productsearch

import (
	"net/http"

	"github.com/goliatone/go-quoteflow/pkg/lookup"
)

// GuardFunc can reject a request before any search runs. Return a
// StatusError to control the response code.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath        string
	SearchParam      string
	CurrencyParam    string
	AccountParam     string
	LimitParam       string
	DefaultLimit     int
	MaxLimit         int
	MinKeywordLength int
	Guard            GuardFunc

	Searcher lookup.ProductSearcher
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:        "/api/products",
		SearchParam:      "q",
		CurrencyParam:    "currency",
		AccountParam:     "account",
		LimitParam:       "limit",
		DefaultLimit:     25,
		MaxLimit:         100,
		MinKeywordLength: 2,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 25
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 100
	}
	if opts.MinKeywordLength < 0 {
		opts.MinKeywordLength = 0
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/products"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.CurrencyParam == "" {
		opts.CurrencyParam = "currency"
	}
	if opts.AccountParam == "" {
		opts.AccountParam = "account"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithCurrencyParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CurrencyParam = name
	}
}

func WithAccountParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AccountParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithMinKeywordLength(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MinKeywordLength = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithSearcher(searcher lookup.ProductSearcher) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Searcher = searcher
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
