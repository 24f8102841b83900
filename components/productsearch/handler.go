package productsearch

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-quoteflow/pkg/lineitems"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Option is one product hit in the response payload. Value carries the
// pricebook entry id the line editor binds with.
type Option struct {
	Label         string  `json:"label"`
	Value         string  `json:"value"`
	ProductID     string  `json:"productId"`
	Description   string  `json:"description,omitempty"`
	UnitPrice     float64 `json:"unitPrice"`
	PackingSizes  string  `json:"packingSizes,omitempty"`
	HSNCode       string  `json:"hsnCode,omitempty"`
	FGCode        string  `json:"fgCode,omitempty"`
	UnitOfMeasure string  `json:"unitOfMeasure,omitempty"`
	CurrencyCode  string  `json:"currencyCode,omitempty"`
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. Callers are expected to pass an Options value produced by NewOptions
// (or equivalent) so defaults/clamps are applied.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		if opts.Searcher == nil {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get(opts.SearchParam))
		currency := strings.TrimSpace(r.URL.Query().Get(opts.CurrencyParam))
		account := strings.TrimSpace(r.URL.Query().Get(opts.AccountParam))
		limit := clampLimit(parseInt(r.URL.Query().Get(opts.LimitParam)), opts)

		if currency == "" {
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "currency is required"})
			return
		}

		var results []Option
		if len(query) >= opts.MinKeywordLength {
			products, err := opts.Searcher.SearchProducts(r.Context(), query, currency, account)
			if err != nil {
				writeJSON(w, r, http.StatusBadGateway, errorResponse{Error: "product search failed"})
				return
			}
			results = toOptions(products, limit)
		}
		if results == nil {
			results = []Option{}
		}

		writeJSON(w, r, http.StatusOK, optionsResponse{Data: results})
	})
}

func toOptions(products []lineitems.Product, limit int) []Option {
	out := make([]Option, 0, len(products))
	for _, p := range products {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, Option{
			Label:         p.Name,
			Value:         p.PricebookEntryID,
			ProductID:     p.ID,
			Description:   p.Description,
			UnitPrice:     p.UnitPrice,
			PackingSizes:  p.PackingSizes,
			HSNCode:       p.HSNCode,
			FGCode:        p.FGCode,
			UnitOfMeasure: p.UnitOfMeasure,
			CurrencyCode:  p.CurrencyCode,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
