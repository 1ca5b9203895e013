package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
)

// unicodeEscape matches a surrogate pair or a single \uXXXX escape.
var unicodeEscape = regexp.MustCompile(`\\u([dD][89abAB][0-9a-fA-F]{2})\\u([dD][c-fC-F][0-9a-fA-F]{2})|\\u([0-9a-fA-F]{4})`)

// Unescape decodes the JSON string escapes Kwai leaves in embedded values:
// \uXXXX sequences (including surrogate pairs), escaped slashes and quotes.
// Input that is not a valid JSON string body is decoded best effort.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err == nil {
		return out
	}

	s = unicodeEscape.ReplaceAllStringFunc(s, func(m string) string {
		sub := unicodeEscape.FindStringSubmatch(m)
		if sub[3] != "" {
			return string(hexRune(sub[3]))
		}
		return string(utf16.DecodeRune(hexRune(sub[1]), hexRune(sub[2])))
	})
	return strings.NewReplacer(`\/`, "/", `\"`, `"`).Replace(s)
}

func hexRune(h string) rune {
	code, _ := strconv.ParseUint(h, 16, 32)
	return rune(code)
}
