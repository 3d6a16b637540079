package codec

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// minTokenLength is the shortest bare run accepted when no marker is present.
const minTokenLength = 8

var (
	hrefPattern = regexp.MustCompile(`href=["']([^"']+)["']`)
	// Zero-width characters may sit inside a run; they are stripped afterwards.
	tokenRunPattern = regexp.MustCompile("[A-Za-z0-9+/=_%\\-\u200b-\u200d\ufeff]+")
	zeroWidth       = strings.NewReplacer("\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "")
)

// StripZeroWidth removes zero-width spaces, joiners and byte order marks.
func StripZeroWidth(s string) string {
	return zeroWidth.Replace(s)
}

// extractToken pulls the encoded payload out of pasted text.
func extractToken(text, marker string) (string, bool) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "<") && strings.HasSuffix(text, ">") && len(text) >= 2 {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	if text == "" {
		return "", false
	}

	token, ok := afterMarker(text, marker)
	if !ok {
		if m := hrefPattern.FindStringSubmatch(text); m != nil {
			token, ok = afterMarker(m[1], marker)
		}
	}
	if !ok {
		token, ok = longestRun(text)
	}
	if !ok {
		return "", false
	}
	token = StripZeroWidth(token)
	return token, token != ""
}

// afterMarker returns the run following marker, stopping at quotes, angle
// brackets, whitespace or a query separator.
func afterMarker(text, marker string) (string, bool) {
	i := strings.Index(text, marker)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(marker):]
	end := strings.IndexFunc(rest, func(r rune) bool {
		return r == '"' || r == '\'' || r == '<' || r == '>' || r == '&' || unicode.IsSpace(r)
	})
	if end >= 0 {
		rest = rest[:end]
	}
	return rest, rest != ""
}

func longestRun(text string) (string, bool) {
	best := ""
	for _, run := range tokenRunPattern.FindAllString(text, -1) {
		if len(StripZeroWidth(run)) > len(StripZeroWidth(best)) {
			best = run
		}
	}
	if len(StripZeroWidth(best)) < minTokenLength {
		return "", false
	}
	return best, true
}

// variants are tried in order; each yields a candidate for base64 decoding.
var variants = []func(string) (string, bool){
	func(p string) (string, bool) { return p, true },
	percentDecode,
	func(p string) (string, bool) { return removeWhitespace(p), true },
	func(p string) (string, bool) { return fixURLSafe(p), true },
	func(p string) (string, bool) {
		decoded, ok := percentDecode(p)
		if !ok {
			return "", false
		}
		return fixURLSafe(decoded), true
	},
}

func percentDecode(p string) (string, bool) {
	decoded, err := url.PathUnescape(p)
	if err != nil {
		return "", false
	}
	return decoded, true
}

func removeWhitespace(p string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, p)
}

// fixURLSafe maps the URL-safe alphabet back to the standard one and restores padding.
func fixURLSafe(p string) string {
	s := strings.NewReplacer("-", "+", "_", "/").Replace(p)
	switch len(s) % 4 {
	case 1:
		s += "==="
	case 2:
		s += "=="
	case 3:
		s += "="
	}
	return s
}
