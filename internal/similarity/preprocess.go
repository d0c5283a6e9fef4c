// Package similarity builds per-user bag-of-words documents from a message
// collection and computes a pairwise cosine-similarity matrix over their
// TF-IDF vectors.
package similarity

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-chat-analytics/internal/stopwords"
)

// tokenRE keeps alphabetic tokens only; digits and punctuation never reach
// the vectorizer.
var tokenRE = regexp.MustCompile(`\p{L}+`)

// lower performs Unicode-aware lowercasing for the normalization pass.
var lower = cases.Lower(language.English)

// normalize converts one message text into its processed form: lowercase,
// alphabetic tokens only, English stop words removed, each remaining token
// Porter-stemmed, space-joined. The space join preserves token boundaries
// between messages when documents are concatenated.
func normalize(text string, stop stopwords.Set) string {
	words := tokenRE.FindAllString(lower.String(text), -1)
	if len(words) == 0 {
		return ""
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if stop.Contains(w) {
			continue
		}
		out = append(out, english.Stem(w, false))
	}
	return strings.Join(out, " ")
}
