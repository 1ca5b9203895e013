package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"kwaigrab/internal/download"
	"kwaigrab/internal/provider"
)

const (
	msgMissingURL = "URL is required"
	msgBadHost    = "Invalid URL. Provide a Kwai link"
	msgNotFound   = "Could not find the video on the provided page"
	msgInternal   = "Error processing the video. Try again later."
	msgDownload   = "Error downloading the video"
)

type kwaiRequest struct {
	URL string `json:"url"`
}

type kwaiResponse struct {
	Success  bool   `json:"success"`
	VideoURL string `json:"videoUrl,omitempty"`
	Author   string `json:"author,omitempty"`
	Title    string `json:"title,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (s *Server) handleKwai(c *gin.Context) {
	var req kwaiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Err(err).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, kwaiResponse{Message: msgMissingURL})
		return
	}

	res, err := s.provider.Resolve(c.Request.Context(), req.URL)
	if err != nil {
		status, msg := classify(err)
		if status == http.StatusInternalServerError {
			logUpstream(err, req.URL)
		}
		c.JSON(status, kwaiResponse{Message: msg})
		return
	}

	c.JSON(http.StatusOK, kwaiResponse{
		Success:  true,
		VideoURL: res.VideoURL,
		Author:   res.Author,
		Title:    res.Title,
	})
}

// classify maps a provider error onto the HTTP status and caller message.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, provider.ErrMissingURL):
		return http.StatusBadRequest, msgMissingURL
	case errors.Is(err, provider.ErrUnsupportedHost):
		return http.StatusBadRequest, msgBadHost
	case errors.Is(err, provider.ErrVideoNotFound):
		return http.StatusNotFound, msgNotFound
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func logUpstream(err error, url string) {
	ev := log.Error().Err(err).Str("url", url)
	var ue *provider.UpstreamError
	if errors.As(err, &ue) && ue.StatusCode != 0 {
		ev = ev.Int("upstream_status", ue.StatusCode)
	}
	ev.Msg("processing kwai video")
}

func (s *Server) handleDownload(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.String(http.StatusBadRequest, msgMissingURL)
		return
	}

	dl, err := download.Open(c.Request.Context(), s.client, url)
	if err != nil {
		logUpstream(err, url)
		c.String(http.StatusInternalServerError, msgDownload)
		return
	}
	defer dl.Body.Close()

	c.Header("Content-Type", dl.ContentType)
	c.Header("Content-Disposition", contentDisposition(dl.Filename))
	if dl.Size >= 0 {
		c.Header("Content-Length", strconv.FormatInt(dl.Size, 10))
	}
	c.Status(http.StatusOK)

	n, err := io.Copy(c.Writer, dl.Body)
	if err != nil {
		// Headers are already sent; all we can do is record it.
		log.Warn().Err(err).Str("url", url).Int64("bytes", n).Msg("download stream interrupted")
	}
}

// contentDisposition always sets a plain ASCII filename= parameter and adds
// the RFC 2231 filename* form when name has other characters.
func contentDisposition(name string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '_'
		}
		return r
	}, name)

	v := mime.FormatMediaType("attachment", map[string]string{"filename": fallback})
	if fallback == name {
		return v
	}
	ext := mime.FormatMediaType("attachment", map[string]string{"filename": name})
	return v + strings.TrimPrefix(ext, "attachment")
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "online"})
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}
