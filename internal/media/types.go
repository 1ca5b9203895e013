// Package media defines the request-scoped types shared across kwaigrab.
package media

import "io"

// Fallback metadata used when a page does not expose author or caption.
const (
	UnknownAuthor = "Unknown author"
	DefaultTitle  = "Kwai video"
)

// DefaultFilename is used for proxied downloads whose URL has no usable path segment.
const DefaultFilename = "kwai_video.mp4"

// VideoContentType is the content type sent for every proxied download.
const VideoContentType = "video/mp4"

// Result is the outcome of running the extractor against one page.
type Result struct {
	Found    bool   // True when a video URL was located
	VideoURL string // Direct asset URL, escape-decoded. Empty unless Found.
	Author   string // Author name or UnknownAuthor
	Title    string // Caption or DefaultTitle
	Strategy string // Name of the strategy that matched, for diagnostics
}

// Download is an open upstream asset ready to be copied to a client.
type Download struct {
	Body        io.ReadCloser
	Filename    string // Sanitized attachment filename
	ContentType string
	Size        int64 // -1 when upstream did not send Content-Length
}
