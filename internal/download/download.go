// Package download proxies direct video assets, either to an HTTP client
// or into a local directory. No check is made that the asset is a video;
// that is left to the origin server.
package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"kwaigrab/internal/httputil"
	"kwaigrab/internal/media"
	"kwaigrab/internal/provider"
)

// Open starts streaming assetURL. The caller must close the returned body.
func Open(ctx context.Context, client *httputil.Client, assetURL string) (*media.Download, error) {
	assetURL = strings.TrimSpace(assetURL)
	if assetURL == "" {
		return nil, provider.ErrMissingURL
	}

	resp, err := client.OpenStream(ctx, assetURL)
	if err != nil {
		return nil, provider.NewUpstreamError(assetURL, err)
	}

	return &media.Download{
		Body:        resp.Body,
		Filename:    httputil.FilenameFromURL(assetURL, media.DefaultFilename),
		ContentType: media.VideoContentType,
		Size:        resp.ContentLength,
	}, nil
}

// Save downloads assetURL into outputDir and returns the written path.
// The file only appears under its final name once fully written.
func Save(ctx context.Context, client *httputil.Client, assetURL, outputDir string) (string, error) {
	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	dl, err := Open(ctx, client, assetURL)
	if err != nil {
		return "", err
	}
	defer dl.Body.Close()

	outputPath, err := httputil.SafeDownloadPath(absDir, dl.Filename)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	tmpFile, err := os.CreateTemp(absDir, ".kwaigrab-*.part")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := io.Copy(tmpFile, dl.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", provider.NewUpstreamError(assetURL, fmt.Errorf("copying body: %w", err))
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming download: %w", err)
	}

	return outputPath, nil
}
