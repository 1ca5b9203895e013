package download

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kwaigrab/internal/httputil"
	"kwaigrab/internal/media"
	"kwaigrab/internal/provider"
)

func assetServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone.mp4" {
			w.WriteHeader(http.StatusGone)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("mp4-bytes"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpen(t *testing.T) {
	srv := assetServer(t)
	client := httputil.NewClient(2*time.Second, "")

	tests := []struct {
		name         string
		url          string
		wantFilename string
	}{
		{"named asset", srv.URL + "/v/clip_01.mp4?sig=abc", "clip_01.mp4"},
		{"root path", srv.URL + "/", media.DefaultFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dl, err := Open(context.Background(), client, tt.url)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer dl.Body.Close()

			if dl.Filename != tt.wantFilename {
				t.Errorf("Filename = %q, want %q", dl.Filename, tt.wantFilename)
			}
			if dl.ContentType != media.VideoContentType {
				t.Errorf("ContentType = %q, want %q", dl.ContentType, media.VideoContentType)
			}
			data, _ := io.ReadAll(dl.Body)
			if string(data) != "mp4-bytes" {
				t.Errorf("body = %q, want mp4-bytes", data)
			}
		})
	}
}

func TestOpenErrors(t *testing.T) {
	srv := assetServer(t)
	client := httputil.NewClient(2*time.Second, "")

	if _, err := Open(context.Background(), client, "  "); !errors.Is(err, provider.ErrMissingURL) {
		t.Errorf("empty url error = %v, want ErrMissingURL", err)
	}

	_, err := Open(context.Background(), client, srv.URL+"/gone.mp4")
	var ue *provider.UpstreamError
	if !errors.As(err, &ue) || ue.StatusCode != http.StatusGone {
		t.Errorf("error = %v, want UpstreamError with 410", err)
	}

	if _, err := Open(context.Background(), client, "ftp://example.com/a.mp4"); !errors.As(err, &ue) {
		t.Errorf("bad scheme error = %v, want UpstreamError", err)
	}
}

func TestSave(t *testing.T) {
	srv := assetServer(t)
	client := httputil.NewClient(2*time.Second, "")
	dir := filepath.Join(t.TempDir(), "videos")

	path, err := Save(context.Background(), client, srv.URL+"/v/clip.mp4", dir)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if filepath.Base(path) != "clip.mp4" {
		t.Errorf("path = %q, want clip.mp4", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "mp4-bytes" {
		t.Errorf("saved content = %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the final file in %s, got %d entries", dir, len(entries))
	}
}

func TestSaveUpstreamFailureLeavesNoFile(t *testing.T) {
	srv := assetServer(t)
	client := httputil.NewClient(2*time.Second, "")
	dir := t.TempDir()

	if _, err := Save(context.Background(), client, srv.URL+"/gone.mp4", dir); err == nil {
		t.Fatal("Save() should fail on 410")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty dir after failure, got %d entries", len(entries))
	}
}
