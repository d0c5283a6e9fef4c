// Package stopwords loads file-backed stop-word sets. Two lists are used by
// the service: the dashboard list driving "most common words" (language
// specific, e.g. Hinglish) and the English list used by the similarity
// engine. Both paths are injected through configuration and loaded once at
// startup; a missing file is a startup failure, never a per-request error.
package stopwords

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Set is a lowercase stop-word membership set. It is immutable after Load
// and therefore safe for concurrent use.
type Set map[string]struct{}

// Contains reports whether the lowercase form of w is a stop word.
func (s Set) Contains(w string) bool {
	_, ok := s[strings.ToLower(w)]
	return ok
}

// Len returns the number of distinct stop words in the set.
func (s Set) Len() int { return len(s) }

// Load reads a one-word-per-line UTF-8 file into a Set. Words are trimmed
// and lowercased; blank lines and '#' comment lines are ignored.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stopwords: open %s: %w", path, err)
	}
	defer f.Close()

	set := make(Set, 256)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		set[w] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("stopwords: read %s: %w", path, err)
	}
	return set, nil
}

// FromWords builds a Set from an in-memory word list. Used by tests and by
// callers that already hold a list.
func FromWords(words []string) Set {
	set := make(Set, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
