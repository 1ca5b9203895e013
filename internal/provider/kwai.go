package provider

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"kwaigrab/internal/extract"
	"kwaigrab/internal/httputil"
	"kwaigrab/internal/media"
)

// DefaultKwaiHosts are the host fragments accepted as Kwai links.
var DefaultKwaiHosts = []string{"kwai.com", "kwai.app", "kw.ai"}

// Kwai resolves Kwai share links.
type Kwai struct {
	client       *httputil.Client
	extractor    extract.Extractor
	allowedHosts []string
}

// NewKwai creates a Kwai provider. A nil extractor uses the default chain
// and an empty host list uses DefaultKwaiHosts.
func NewKwai(client *httputil.Client, ex extract.Extractor, allowedHosts []string) *Kwai {
	if ex == nil {
		ex = extract.New()
	}
	if len(allowedHosts) == 0 {
		allowedHosts = DefaultKwaiHosts
	}
	return &Kwai{
		client:       client,
		extractor:    ex,
		allowedHosts: allowedHosts,
	}
}

func (k *Kwai) Name() string { return "kwai" }

// Validate checks pageURL without touching the network.
func (k *Kwai) Validate(pageURL string) error {
	if strings.TrimSpace(pageURL) == "" {
		return ErrMissingURL
	}
	if !httputil.HostAllowed(pageURL, k.allowedHosts) {
		return ErrUnsupportedHost
	}
	return nil
}

// Resolve implements Provider.
func (k *Kwai) Resolve(ctx context.Context, pageURL string) (*media.Result, error) {
	pageURL = strings.TrimSpace(pageURL)
	if err := k.Validate(pageURL); err != nil {
		return nil, err
	}

	html, err := k.client.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, NewUpstreamError(pageURL, err)
	}

	res := k.extractor.Extract(html)
	if !res.Found {
		log.Debug().Str("url", pageURL).Int("bytes", len(html)).Msg("no extraction strategy matched")
		return nil, ErrVideoNotFound
	}

	log.Debug().
		Str("url", pageURL).
		Str("strategy", res.Strategy).
		Msg("video url extracted")

	return &res, nil
}
