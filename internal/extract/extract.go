// Package extract locates a direct video URL and its metadata inside a
// Kwai page by running an ordered chain of pattern strategies.
package extract

import (
	"regexp"

	"kwaigrab/internal/media"
)

var (
	authorPattern = regexp.MustCompile(`"author":\s*{\s*"name":\s*"((?:[^"\\]|\\.)+)"`)
	titlePattern  = regexp.MustCompile(`"caption":\s*"((?:[^"\\]|\\.)+)"`)
)

// Extractor turns a page body into an extraction result.
type Extractor interface {
	// Extract never fails; a missing video is reported through Result.Found.
	Extract(html string) media.Result
}

// ChainExtractor tries each strategy in order and keeps the first match.
type ChainExtractor struct {
	Strategies []Strategy
}

// New returns an extractor running the default strategy chain.
func New() *ChainExtractor {
	return &ChainExtractor{Strategies: DefaultStrategies()}
}

// Extract runs the default strategy chain against html.
func Extract(html string) media.Result {
	return New().Extract(html)
}

// Extract implements Extractor.
func (c *ChainExtractor) Extract(html string) media.Result {
	res := media.Result{
		Author: metadata(authorPattern, html, media.UnknownAuthor),
		Title:  metadata(titlePattern, html, media.DefaultTitle),
	}

	for _, s := range c.Strategies {
		raw, ok := s.Find(html)
		if !ok || raw == "" {
			continue
		}
		res.Found = true
		res.VideoURL = Unescape(raw)
		res.Strategy = s.Name
		break
	}

	return res
}

func metadata(re *regexp.Regexp, html, fallback string) string {
	m := re.FindStringSubmatch(html)
	if len(m) < 2 || m[1] == "" {
		return fallback
	}
	return Unescape(m[1])
}
