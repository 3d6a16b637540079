// Package codec turns quiz definitions and results into URL fragment tokens and
// recovers them from pasted text that may have been mangled in transit.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"quizlink/internal/domain"
)

const (
	// QuizMarker prefixes the token in a quiz share link.
	QuizMarker = "#quiz="
	// ResultMarker prefixes the token in a result link.
	ResultMarker = "#result="
)

// Encode serialises v to JSON, applies standard base64 and percent-encodes the
// result so it is safe inside a URL fragment.
func Encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return url.QueryEscape(base64.StdEncoding.EncodeToString(raw)), nil
}

func EncodeQuiz(def domain.QuizDefinition) (string, error) {
	return Encode(def)
}

func EncodeResult(res domain.QuizResult) (string, error) {
	return Encode(res)
}

// QuizLink builds `<base>#quiz=<token>`; any fragment already on base is dropped.
func QuizLink(base string, def domain.QuizDefinition) (string, error) {
	token, err := EncodeQuiz(def)
	if err != nil {
		return "", err
	}
	return stripFragment(base) + QuizMarker + token, nil
}

// ResultLink builds `<base>#result=<token>`.
func ResultLink(base string, res domain.QuizResult) (string, error) {
	token, err := EncodeResult(res)
	if err != nil {
		return "", err
	}
	return stripFragment(base) + ResultMarker + token, nil
}

// DecodeQuiz recovers a quiz definition from pasted text. It never fails loudly:
// false means no structurally valid quiz (one with at least one question) was found.
func DecodeQuiz(text string) (domain.QuizDefinition, bool) {
	return decode(text, QuizMarker, func(def domain.QuizDefinition) bool {
		return len(def.Questions) > 0
	})
}

// DecodeResult recovers a result from pasted text. A result is valid only when it
// names both the student and the quiz.
func DecodeResult(text string) (domain.QuizResult, bool) {
	return decode(text, ResultMarker, func(res domain.QuizResult) bool {
		return res.StudentName != "" && res.QuizID != ""
	})
}

// HasQuizMarker reports whether text carries a quiz share marker.
func HasQuizMarker(text string) bool {
	return strings.Contains(text, QuizMarker)
}

func decode[T any](text, marker string, valid func(T) bool) (T, bool) {
	var zero T
	token, ok := extractToken(text, marker)
	if !ok {
		return zero, false
	}
	for _, variant := range variants {
		candidate, ok := variant(token)
		if !ok {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(candidate)
		if err != nil {
			continue
		}
		var out T
		if err := json.Unmarshal(raw, &out); err != nil {
			continue
		}
		if valid(out) {
			return out, true
		}
	}
	return zero, false
}

func stripFragment(base string) string {
	if i := strings.IndexByte(base, '#'); i >= 0 {
		return base[:i]
	}
	return base
}
