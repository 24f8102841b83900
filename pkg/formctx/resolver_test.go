package formctx

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"
)

func TestResolve_DirectIDWins(t *testing.T) {
	params := url.Values{}
	params.Set(ParamRecordID, "from-param")
	params.Set(ParamWrapperRef, EncodeWrapperRef("from-wrapper"))

	ctx := Resolve(ResolveInput{ProvidedID: "direct", Params: params}, Options{})
	if ctx.RecordID != "direct" {
		t.Fatalf("expected direct id, got %q", ctx.RecordID)
	}
	if ctx.EmbeddedInWrapper {
		t.Fatal("direct id must not mark the context as wrapper-embedded")
	}
}

func TestResolve_RecordIDParamBeforeWrapper(t *testing.T) {
	params := url.Values{}
	params.Set(ParamRecordID, "0Q0x1")
	params.Set(ParamWrapperRef, EncodeWrapperRef("other"))

	ctx := Resolve(ResolveInput{Params: params}, Options{})
	if ctx.RecordID != "0Q0x1" {
		t.Fatalf("expected param id, got %q", ctx.RecordID)
	}
}

func TestResolve_WrapperContext(t *testing.T) {
	params := url.Values{}
	params.Set(ParamWrapperRef, EncodeWrapperRef("801x000000001AB"))

	ctx := Resolve(ResolveInput{Params: params}, Options{})
	if ctx.RecordID != "801x000000001AB" {
		t.Fatalf("expected wrapper id, got %q", ctx.RecordID)
	}
	if !ctx.EmbeddedInWrapper {
		t.Fatal("wrapper-resolved context should report embedded")
	}
}

func TestResolve_MalformedWrapperDegradesToNoID(t *testing.T) {
	var logged []string
	params := url.Values{}
	params.Set(ParamWrapperRef, "%%%not-base64%%%")

	ctx := Resolve(ResolveInput{Params: params}, Options{
		Logf: func(format string, args ...any) {
			logged = append(logged, format)
		},
	})
	if ctx.RecordID != "" {
		t.Fatalf("expected empty id, got %q", ctx.RecordID)
	}
	if ctx.DecodeErr == nil {
		t.Fatal("expected DecodeErr to be recorded")
	}
	if len(logged) != 1 {
		t.Fatalf("expected one log line, got %d", len(logged))
	}
}

func TestResolve_ValidBase64InvalidJSON(t *testing.T) {
	params := url.Values{}
	params.Set(ParamWrapperRef, base64.StdEncoding.EncodeToString([]byte("not json")))

	ctx := Resolve(ResolveInput{Params: params}, Options{})
	if ctx.RecordID != "" || ctx.DecodeErr == nil {
		t.Fatalf("expected decode failure with empty id, got %+v", ctx)
	}
	if !strings.Contains(ctx.DecodeErr.Error(), "parse wrapper context") {
		t.Fatalf("unexpected error: %v", ctx.DecodeErr)
	}
}

func TestResolve_NothingPresent(t *testing.T) {
	ctx := Resolve(ResolveInput{}, Options{})
	if ctx.RecordID != "" || ctx.DecodeErr != nil {
		t.Fatalf("expected inert empty context, got %+v", ctx)
	}
}

func TestDecodeWrapperRef_URLSafeAlphabet(t *testing.T) {
	var wrapper = `{"attributes":{"recordId":"a01?>"}}`
	ref := base64.URLEncoding.EncodeToString([]byte(wrapper))

	id, err := DecodeWrapperRef(ref)
	if err != nil {
		t.Fatalf("expected decode to succeed, got %v", err)
	}
	if id != "a01?>" {
		t.Fatalf("unexpected id %q", id)
	}
}
