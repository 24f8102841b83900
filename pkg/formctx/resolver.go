// Package formctx resolves the active record id an embedded editor should
// operate on. Hosting shells hand the id over in one of three ways: a direct
// component property, a plain "recordId" page-state parameter, or an opaque
// base64 wrapper context ("inContextOfRef") carrying the id inside a JSON
// envelope. Resolution happens once at activation and the result is immutable.
package formctx

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Parameter names used by hosting shells.
const (
	ParamRecordID     = "recordId"
	ParamWrapperRef   = "inContextOfRef"
	ParamObjectAPI    = "objectApiName"
	ParamActionSource = "actionName"
)

// Context is the resolved activation context. An empty RecordID is a valid
// inert state ("new record" mode), never an error: downstream loaders treat
// it as nothing-to-fetch.
type Context struct {
	// RecordID is the canonical record identifier, "" when none resolved.
	RecordID string
	// ObjectName is the business object the id belongs to, when the shell
	// provides it ("Quote", "Order", ...).
	ObjectName string
	// EmbeddedInWrapper reports whether the id came from a wrapper context.
	// It only affects chrome (header visibility), never business logic.
	EmbeddedInWrapper bool
	// DecodeErr records a wrapper decode failure. Non-fatal: RecordID simply
	// stays empty (or falls back to a lower-precedence source).
	DecodeErr error
}

// ResolveInput gathers the id sources in precedence order.
type ResolveInput struct {
	// ProvidedID is the id handed to the component directly (property or
	// page state). Highest precedence.
	ProvidedID string
	// Params are URL query or page-state parameters.
	Params url.Values
}

// Options tunes resolution. The zero value is usable.
type Options struct {
	// Logf receives diagnostics for decode failures. Nil disables logging;
	// the failure is still recorded on Context.DecodeErr.
	Logf func(format string, args ...any)
}

// Resolve normalizes the activation inputs to one canonical record id.
// Precedence: direct id > recordId parameter > decoded wrapper context.
// A malformed wrapper context is logged and ignored.
func Resolve(in ResolveInput, opts Options) Context {
	ctx := Context{}
	if in.Params != nil {
		ctx.ObjectName = strings.TrimSpace(in.Params.Get(ParamObjectAPI))
	}

	if id := strings.TrimSpace(in.ProvidedID); id != "" {
		ctx.RecordID = id
		return ctx
	}
	if in.Params == nil {
		return ctx
	}
	if id := strings.TrimSpace(in.Params.Get(ParamRecordID)); id != "" {
		ctx.RecordID = id
		return ctx
	}

	ref := strings.TrimSpace(in.Params.Get(ParamWrapperRef))
	if ref == "" {
		return ctx
	}

	id, err := DecodeWrapperRef(ref)
	if err != nil {
		ctx.DecodeErr = err
		if opts.Logf != nil {
			opts.Logf("formctx: decode %s: %v", ParamWrapperRef, err)
		}
		return ctx
	}
	ctx.RecordID = id
	ctx.EmbeddedInWrapper = id != ""
	return ctx
}

// wrapperContext mirrors the JSON envelope hosting shells place inside the
// base64 wrapper reference.
type wrapperContext struct {
	Attributes struct {
		RecordID string `json:"recordId"`
	} `json:"attributes"`
}

// DecodeWrapperRef decodes a base64 wrapper reference and extracts the
// embedded record id. Standard and URL-safe alphabets are both accepted
// since shells are inconsistent about which they emit.
func DecodeWrapperRef(ref string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ref)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(ref)
	}
	if err != nil {
		return "", fmt.Errorf("formctx: base64 decode wrapper ref: %w", err)
	}

	var wrapper wrapperContext
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return "", fmt.Errorf("formctx: parse wrapper context: %w", err)
	}
	return strings.TrimSpace(wrapper.Attributes.RecordID), nil
}

// EncodeWrapperRef builds a wrapper reference for a record id. Mostly useful
// for tests and for shells embedding one editor inside another.
func EncodeWrapperRef(recordID string) string {
	var wrapper wrapperContext
	wrapper.Attributes.RecordID = recordID
	raw, _ := json.Marshal(wrapper)
	return base64.StdEncoding.EncodeToString(raw)
}
