package pkg

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	HandlePattern  = regexp.MustCompile(`^[a-z0-9_-]+$`)
	handleInvalid  = regexp.MustCompile(`[^a-z0-9_-]`)
	slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)
)

// Transformer 有内部状态，每次调用新建
func stripDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// SanitizeHandle 小写化，把 [a-z0-9_-] 以外的字符逐个替换为 "-"
func SanitizeHandle(raw string) string {
	return handleInvalid.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "-")
}

// Slugify 由团队名推导 handle："Vizio Engineering" -> "vizio-engineering"
func Slugify(name string) string {
	folded, _, err := transform.String(stripDiacritics(), name)
	if err != nil {
		folded = name
	}
	s := slugSeparators.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(s, "-")
}
