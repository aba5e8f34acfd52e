package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gbsyi/swagger-codegen-bin/apperr"
)

type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("unexpected EOF")
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient()

	if c.Endpoint() != DefaultEndpoint {
		t.Errorf("expected endpoint %s, got %s", DefaultEndpoint, c.Endpoint())
	}
	if c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %s, got %s", DefaultTimeout, c.httpClient.Timeout)
	}
	if c.userAgent != defaultUserAgent {
		t.Errorf("expected user agent %s, got %s", defaultUserAgent, c.userAgent)
	}
}

func TestNewClientOptions(t *testing.T) {
	hc := &http.Client{}
	c := NewClient(
		WithEndpoint("http://localhost/gen"),
		WithHTTPClient(hc),
		WithTimeout(5*time.Second),
		WithUserAgent("custom"),
	)

	if c.Endpoint() != "http://localhost/gen" {
		t.Errorf("unexpected endpoint: %s", c.Endpoint())
	}
	if c.httpClient != hc || hc.Timeout != 5*time.Second {
		t.Errorf("expected custom client with 5s timeout, got %v", c.httpClient.Timeout)
	}
	if c.userAgent != "custom" {
		t.Errorf("unexpected user agent: %s", c.userAgent)
	}
}

func TestNewRequestEmbedsRawSpec(t *testing.T) {
	spec := `{"openapi":"3.0.0",   "paths": {"/a": {}}, "x-order": [3, 1, 2]}`

	req, err := NewRequest("typescript-fetch", "client", []byte(spec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := req.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	if !strings.Contains(string(body), `"spec":`+spec) {
		t.Errorf("spec not embedded verbatim: %s", body)
	}

	// spec is a nested value, not an escaped string
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(decoded["lang"]) != `"typescript-fetch"` {
		t.Errorf("unexpected lang: %s", decoded["lang"])
	}
	if string(decoded["type"]) != `"client"` {
		t.Errorf("unexpected type: %s", decoded["type"])
	}
	if !strings.HasPrefix(string(decoded["spec"]), "{") {
		t.Errorf("spec was escaped as a string: %s", decoded["spec"])
	}

	var got, want any
	json.Unmarshal(decoded["spec"], &got)
	json.Unmarshal([]byte(spec), &want)
	gotJSON, _ := json.Marshal(got)
	wantJSON, _ := json.Marshal(want)
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("spec content changed: %s", decoded["spec"])
	}
}

func TestNewRequestStandardizesJSONC(t *testing.T) {
	spec := "{\n  // comment\n  \"openapi\": \"3.0.0\",\n}"

	req, err := NewRequest("go", "client", []byte(spec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !json.Valid(req.Spec) {
		t.Fatalf("expected valid JSON, got %s", req.Spec)
	}

	var doc map[string]string
	if err := json.Unmarshal(req.Spec, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["openapi"] != "3.0.0" {
		t.Errorf("unexpected content: %v", doc)
	}
}

func TestNewRequestStripsBOM(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want string
	}{
		{"json", "\xef\xbb\xbf{\"openapi\":\"3.0.0\"}", `{"openapi":"3.0.0"}`},
		{"jsonc", "\xef\xbb\xbf{\"openapi\":\"3.0.0\",}", `{"openapi":"3.0.0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest("go", "client", []byte(tt.spec))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.name == "json" && string(req.Spec) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, req.Spec)
			}
			if bytes.HasPrefix(req.Spec, utf8BOM) || !json.Valid(req.Spec) {
				t.Errorf("expected BOM-free JSON, got %q", req.Spec)
			}
		})
	}
}

func TestNewRequestInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"yaml", "openapi: 3.0.0\ninfo:\n  title: x\n"},
		{"truncated", `{"openapi": `},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequest("go", "client", []byte(tt.spec))
			if !apperr.IsKind(err, apperr.SpecInvalid) {
				t.Fatalf("expected kind %s, got %v", apperr.SpecInvalid, err)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	spec := `{"openapi":"3.0.0"}`
	archive := []byte("PK\x03\x04fake-archive")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type: %s", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		want := `{"lang":"typescript-fetch","type":"client","spec":{"openapi":"3.0.0"}}`
		if string(body) != want {
			t.Errorf("expected body %s, got %s", want, body)
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(archive)
	}))
	defer srv.Close()

	req, err := NewRequest("typescript-fetch", "client", []byte(spec))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	got, err := NewClient(WithEndpoint(srv.URL)).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if string(got) != string(archive) {
		t.Errorf("archive mismatch: %q", got)
	}
}

func TestGenerateStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"unknown language"}`))
	}))
	defer srv.Close()

	req, _ := NewRequest("cobol", "client", []byte(`{}`))
	_, err := NewClient(WithEndpoint(srv.URL)).Generate(context.Background(), req)
	if !apperr.IsKind(err, apperr.ArchiveRequestFailed) {
		t.Fatalf("expected kind %s, got %v", apperr.ArchiveRequestFailed, err)
	}
	want := `Can't download archive. (status 400: {"message":"unknown language"})`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestGenerateTransportFailure(t *testing.T) {
	hc := &http.Client{Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("no such host")
	})}

	req, _ := NewRequest("go", "client", []byte(`{}`))
	_, err := NewClient(WithHTTPClient(hc)).Generate(context.Background(), req)
	if !apperr.IsKind(err, apperr.ArchiveRequestFailed) {
		t.Fatalf("expected kind %s, got %v", apperr.ArchiveRequestFailed, err)
	}
	if !strings.HasPrefix(err.Error(), "Can't download archive. (") || !strings.Contains(err.Error(), "no such host") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestGenerateReceiveFailure(t *testing.T) {
	hc := &http.Client{Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(failingReader{}),
			Header:     make(http.Header),
		}, nil
	})}

	req, _ := NewRequest("go", "client", []byte(`{}`))
	_, err := NewClient(WithHTTPClient(hc)).Generate(context.Background(), req)
	if !apperr.IsKind(err, apperr.ArchiveReceiveFailed) {
		t.Fatalf("expected kind %s, got %v", apperr.ArchiveReceiveFailed, err)
	}
	if err.Error() != "Can't receive archive. (unexpected EOF)" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
