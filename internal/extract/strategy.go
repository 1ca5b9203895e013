package extract

import (
	"regexp"
	"strings"

	"github.com/Jeffail/gabs/v2"
	"github.com/PuerkitoBio/goquery"
)

// Strategy is a single attempt at locating the raw video URL in a page.
type Strategy struct {
	Name string
	Find func(html string) (string, bool)
}

var (
	videoFieldPattern = regexp.MustCompile(`"video":\s*{\s*"url":\s*"((?:[^"\\]|\\.)+)"`)
	playAddrPattern   = regexp.MustCompile(`"playAddr":\s*"((?:[^"\\]|\\.)+)"`)
	bareMP4Pattern    = regexp.MustCompile(`https://[^\s"'<>\\]+?\.mp4`)
)

// nextDataRoots are the prefixes under which the page props may live.
var nextDataRoots = []string{"props.pageProps", "pageProps"}

// nextDataPaths are tried in order below each root.
var nextDataPaths = []string{
	"videoInfo.videoUrl",
	"videoInfo.video.url",
	"videoInfo.mainUrl",
}

// DefaultStrategies returns the strategy chain in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "video-field", Find: submatch(videoFieldPattern)},
		{Name: "play-addr", Find: submatch(playAddrPattern)},
		{Name: "bare-mp4", Find: bareMP4},
		{Name: "next-data", Find: nextData},
	}
}

func submatch(re *regexp.Regexp) func(string) (string, bool) {
	return func(html string) (string, bool) {
		m := re.FindStringSubmatch(html)
		if len(m) < 2 {
			return "", false
		}
		return m[1], true
	}
}

func bareMP4(html string) (string, bool) {
	m := bareMP4Pattern.FindString(html)
	return m, m != ""
}

// nextData reads the Next.js hydration payload. A missing block or a
// payload that is not valid JSON counts as no match.
func nextData(html string) (string, bool) {
	payload, ok := nextDataPayload(html)
	if !ok {
		return "", false
	}

	parsed, err := gabs.ParseJSON([]byte(payload))
	if err != nil {
		return "", false
	}

	for _, root := range nextDataRoots {
		for _, p := range nextDataPaths {
			if s, ok := parsed.Path(root + "." + p).Data().(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func nextDataPayload(html string) (string, bool) {
	if !strings.Contains(html, "__NEXT_DATA__") {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}
	text := strings.TrimSpace(doc.Find(`script#__NEXT_DATA__`).First().Text())
	return text, text != ""
}
