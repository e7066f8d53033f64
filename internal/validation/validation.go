package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// KeywordPattern defines the valid keyword format: words of lowercase or
// uncased letters, digits, hyphens, and apostrophes, separated by single
// spaces. Letters from any script are accepted; input is expected to be
// normalized first, so uppercase still fails.
var KeywordPattern = regexp.MustCompile(`^[\p{Ll}\p{Lo}\p{M}\p{N}'-]+( [\p{Ll}\p{Lo}\p{M}\p{N}'-]+)*$`)

// MaxKeywordLength bounds keyword phrases; anything longer is noise from
// the generator, not a searchable phrase.
const MaxKeywordLength = 100

// ValidateKeyword checks if a normalized keyword phrase matches the
// allowed pattern.
func ValidateKeyword(keyword string) bool {
	if keyword == "" || len(keyword) > MaxKeywordLength {
		return false
	}
	return KeywordPattern.MatchString(keyword)
}

// NormalizeKeyword lowercases and collapses whitespace so lookups and
// cache hits are case- and spacing-insensitive.
func NormalizeKeyword(keyword string) string {
	return strings.Join(strings.Fields(strings.ToLower(keyword)), " ")
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
