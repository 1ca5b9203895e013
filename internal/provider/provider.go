// Package provider resolves video page links into direct video URLs and
// defines the error taxonomy shared by the HTTP and CLI front ends.
package provider

import (
	"context"

	"kwaigrab/internal/media"
)

// Provider is the interface that video platforms must implement.
type Provider interface {
	// Name returns the platform name.
	Name() string

	// Resolve fetches pageURL and extracts the direct video URL.
	// A page without a video yields ErrVideoNotFound.
	Resolve(ctx context.Context, pageURL string) (*media.Result, error)
}
