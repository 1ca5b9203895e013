package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kwaigrab/internal/httputil"
)

const legacyPage = `<html><script>var d={"video":{"url":"https://cdn.kwai.net/clip.mp4"},` +
	`"author":{"name":"Ana"},"caption":"Hello"}</script></html>`

func newTestKwai(t *testing.T, handler http.HandlerFunc) (*Kwai, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := httputil.NewClient(2*time.Second, "")
	k := NewKwai(client, nil, []string{"kwai.com", "127.0.0.1"})
	return k, srv.URL
}

func TestResolveSuccess(t *testing.T) {
	k, base := newTestKwai(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(legacyPage))
	})

	res, err := k.Resolve(context.Background(), base+"/@ana/video/1")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if res.VideoURL != "https://cdn.kwai.net/clip.mp4" {
		t.Errorf("VideoURL = %q", res.VideoURL)
	}
	if res.Author != "Ana" || res.Title != "Hello" {
		t.Errorf("metadata = (%q, %q), want (Ana, Hello)", res.Author, res.Title)
	}
}

func TestResolveValidation(t *testing.T) {
	k := NewKwai(httputil.NewClient(time.Second, ""), nil, nil)

	tests := []struct {
		name string
		url  string
		want error
	}{
		{"empty", "", ErrMissingURL},
		{"whitespace", "   ", ErrMissingURL},
		{"other host", "https://example.com/x", ErrUnsupportedHost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := k.Resolve(context.Background(), tt.url)
			if !errors.Is(err, tt.want) {
				t.Errorf("Resolve(%q) error = %v, want %v", tt.url, err, tt.want)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Resolve(%q) error = %v, want it to be a validation error", tt.url, err)
			}
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	k, base := newTestKwai(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>removed</body></html>"))
	})

	_, err := k.Resolve(context.Background(), base)
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("error = %v, want ErrVideoNotFound", err)
	}
}

func TestResolveUpstreamStatus(t *testing.T) {
	k, base := newTestKwai(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := k.Resolve(context.Background(), base)

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want *UpstreamError", err)
	}
	if ue.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", ue.StatusCode)
	}
	if errors.Is(err, ErrVideoNotFound) {
		t.Error("upstream failure must not be reported as not found")
	}
}

func TestResolveOversizedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(legacyPage))
	}))
	defer srv.Close()

	client := httputil.NewClient(2*time.Second, "")
	client.MaxPageBytes = 32
	k := NewKwai(client, nil, []string{"127.0.0.1"})

	_, err := k.Resolve(context.Background(), srv.URL)

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want *UpstreamError", err)
	}
	if !errors.Is(err, httputil.ErrPageTooLarge) {
		t.Errorf("error = %v, want it to wrap ErrPageTooLarge", err)
	}
	if errors.Is(err, ErrVideoNotFound) {
		t.Error("oversized page must not be reported as not found")
	}
}

func TestResolveUpstreamUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	k := NewKwai(httputil.NewClient(time.Second, ""), nil, []string{"127.0.0.1"})
	_, err := k.Resolve(context.Background(), url)

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want *UpstreamError", err)
	}
	if ue.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", ue.StatusCode)
	}
}

func TestKwaiName(t *testing.T) {
	var p Provider = NewKwai(httputil.NewClient(time.Second, ""), nil, nil)
	if p.Name() != "kwai" {
		t.Errorf("Name() = %q, want kwai", p.Name())
	}
}
