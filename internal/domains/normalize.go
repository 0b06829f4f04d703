package domains

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

var schemes = []string{"https://", "http://"}

// Normalizer turns raw candidates into canonical domain entries.
type Normalizer struct {
	// Punycode converts non-ASCII hosts to their IDNA ASCII form.
	Punycode bool
}

// Normalize applies the zero Normalizer.
func Normalize(raw string) (string, bool) { return Normalizer{}.Normalize(raw) }

// Normalize strips whitespace, a leading http:// or https:// and
// surrounding slashes, then lowercases the host part. It reports false for
// an empty result or one containing whitespace. Normalizing an already
// normalized entry returns it unchanged.
func (n Normalizer) Normalize(raw string) (string, bool) {
	d := raw
	for {
		next := strings.Trim(stripScheme(strings.TrimSpace(d)), "/")
		if next == d {
			break
		}
		d = next
	}
	if d == "" || strings.IndexFunc(d, unicode.IsSpace) >= 0 {
		return "", false
	}

	host, rest := d, ""
	if i := strings.IndexByte(d, '/'); i >= 0 {
		host, rest = d[:i], d[i:]
	}
	host = strings.ToLower(host)
	if n.Punycode && !isASCII(host) {
		ascii, err := idna.ToASCII(host)
		if err != nil || ascii == "" {
			return "", false
		}
		host = ascii
	}
	return host + rest, true
}

func stripScheme(s string) string {
	for _, p := range schemes {
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			return s[len(p):]
		}
	}
	return s
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
