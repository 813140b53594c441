package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/fetcher/client"
)

func TestClient_Text(t *testing.T) {
	testCases := map[string]struct {
		contentType string
		body        []byte
		exp         string
	}{
		"utf-8 declared": {
			contentType: "text/plain; charset=utf-8",
			body:        []byte("héllo wörld"),
			exp:         "héllo wörld",
		},
		"latin-1 declared": {
			contentType: "text/plain; charset=ISO-8859-1",
			body:        []byte("caf\xe9"),
			exp:         "café",
		},
		"quoted charset": {
			contentType: `text/html; charset="windows-1252"`,
			body:        []byte("\x93quoted\x94"),
			exp:         "“quoted”",
		},
		"meta charset sniffed": {
			contentType: "text/html",
			body:        []byte(`<html><head><meta charset="iso-8859-1"></head><body>caf` + "\xe9" + `</body></html>`),
			exp:         `<html><head><meta charset="iso-8859-1"></head><body>café</body></html>`,
		},
		"utf-8 inferred": {
			contentType: "application/json",
			body:        []byte(`{"name":"zoë"}`),
			exp:         `{"name":"zoë"}`,
		},
		"invalid utf-8 replaced": {
			contentType: "text/plain; charset=utf-8",
			body:        []byte("ok\xffok"),
			exp:         "ok�ok",
		},
		"undeclared invalid utf-8 replaced": {
			body: []byte("caf\xe9 \xff"),
			exp:  "caf\uFFFD \uFFFD",
		},
		"undeclared ascii": {
			contentType: "text/plain",
			body:        []byte("plain"),
			exp:         "plain",
		},
		"empty body": {
			contentType: "text/plain",
			body:        nil,
			exp:         "",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.contentType == "" {
					w.Header()["Content-Type"] = nil
				} else {
					w.Header().Set("Content-Type", tc.contentType)
				}
				_, _ = w.Write(tc.body)
			}))
			defer ts.Close()

			c := newClient(t)

			got, err := c.Text(t.Context(), ts.URL)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			if diff := cmp.Diff(tc.exp, got); diff != "" {
				t.Errorf("text mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClient_Text_UnknownCharset(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=no-such-charset")
		_, _ = w.Write([]byte("text"))
	}))
	defer ts.Close()

	_, err := newClient(t).Text(t.Context(), ts.URL)
	if !errors.Is(err, client.ErrDecoding) {
		t.Fatalf("exp ErrDecoding, got: %v", err)
	}

	if errors.Is(err, client.ErrRequest) {
		t.Error("decoding errors must not be request errors")
	}
}

func TestClient_Text_AcceptsAnyStatusByDefault(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not here"))
	}))
	defer ts.Close()

	got, err := newClient(t).Text(t.Context(), ts.URL)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got != "not here" {
		t.Errorf("exp %q, got %q", "not here", got)
	}
}

func TestClient_Text_ExpectedStatus(t *testing.T) {
	testCases := map[string]struct {
		status  int
		auth    bool
		expBody string
	}{
		"not found":    {status: http.StatusNotFound, expBody: "missing"},
		"unauthorized": {status: http.StatusUnauthorized, auth: true, expBody: "missing"},
		"forbidden":    {status: http.StatusForbidden, auth: true, expBody: "missing"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.expBody))
			}))
			defer ts.Close()

			_, err := newClient(t).Text(t.Context(), ts.URL, client.WithExpectedStatus(http.StatusOK))
			if !errors.Is(err, client.ErrUnexpectedStatusCode) {
				t.Fatalf("exp ErrUnexpectedStatusCode, got: %v", err)
			}

			var statusErr *client.UnexpectedStatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("exp *UnexpectedStatusError, got %T", err)
			}

			if statusErr.StatusCode != tc.status {
				t.Errorf("exp status %d, got %d", tc.status, statusErr.StatusCode)
			}
			if statusErr.Body != tc.expBody {
				t.Errorf("exp body %q, got %q", tc.expBody, statusErr.Body)
			}
			if got := errors.Is(err, client.ErrAuthFailure); got != tc.auth {
				t.Errorf("exp ErrAuthFailure %v, got %v", tc.auth, got)
			}
		})
	}
}

func TestClient_Text_ErrorBodyCapped(t *testing.T) {
	large := strings.Repeat("x", 16<<10)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(large))
	}))
	defer ts.Close()

	_, err := newClient(t).Text(t.Context(), ts.URL, client.WithExpectedStatus(http.StatusOK))

	var statusErr *client.UnexpectedStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("exp *UnexpectedStatusError, got: %v", err)
	}

	if len(statusErr.Body) != 4<<10 {
		t.Errorf("exp body capped at %d bytes, got %d", 4<<10, len(statusErr.Body))
	}
}

func TestClient_Text_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	unreachable := ts.URL
	ts.Close()

	_, err := newClient(t).Text(t.Context(), unreachable)
	if !errors.Is(err, client.ErrRequest) {
		t.Fatalf("exp ErrRequest, got: %v", err)
	}

	var fetchErr *client.Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("exp *client.Error, got %T", err)
	}

	if fetchErr.Op != "fetch text" || fetchErr.URL != unreachable {
		t.Errorf("unexpected error context: op %q, url %q", fetchErr.Op, fetchErr.URL)
	}
}

func TestClient_Text_CancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newClient(t).Text(ctx, ts.URL)
	if !errors.Is(err, client.ErrRequest) || !errors.Is(err, context.Canceled) {
		t.Errorf("exp ErrRequest wrapping context.Canceled, got: %v", err)
	}
}

func TestClient_Text_BadURL(t *testing.T) {
	testCases := map[string]string{
		"malformed":      "http://[::1",
		"control char":   "http://example.com/\x7f",
		"no scheme":      "example.com/path",
		"unknown scheme": "gopher://example.com/",
	}

	for name, rawURL := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := newClient(t).Text(t.Context(), rawURL)
			if !errors.Is(err, client.ErrRequest) {
				t.Errorf("exp ErrRequest, got: %v", err)
			}

			if errors.Is(err, client.ErrURL) {
				t.Errorf("text fetches never fail with ErrURL, got: %v", err)
			}
		})
	}
}

func TestClient_Text_InvalidFetchOption(t *testing.T) {
	_, err := newClient(t).Text(t.Context(), "http://example.invalid/", client.WithExpectedStatus(42))
	if !errors.Is(err, client.ErrRequest) {
		t.Errorf("exp ErrRequest, got: %v", err)
	}
}
