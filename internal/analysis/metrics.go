// Package analysis implements the derived-metrics pipeline over a parsed
// message collection: headline statistics, per-user activity, word and emoji
// frequency tables, timelines, and the weekly activity heatmap.
//
// Every operation takes a (selectedUser, collection) pair and pre-filters to
// one sender unless the OverallUser sentinel is given. All functions are
// pure passes over the collection; an empty selection degrades to zero
// counts and empty tables, never an error. Results are deterministic: ties
// in every frequency table break on the label so repeated runs produce
// identical output.
package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/forPelevin/gomoji"
	"mvdan.cc/xurls/v2"

	"github.com/tbourn/go-chat-analytics/internal/domain"
	"github.com/tbourn/go-chat-analytics/internal/stopwords"
)

// DefaultWordLimit caps the "most common words" table like the dashboard's
// bar chart expects.
const DefaultWordLimit = 25

// urlRE detects URLs in message text, including scheme-less ones such as
// "x.co". Compiled once; the matcher is safe for concurrent use.
var urlRE = xurls.Relaxed()

// Stats is the headline figure row shown at the top of the dashboard.
type Stats struct {
	Messages int `json:"messages"`
	Words    int `json:"words"`
	Media    int `json:"media"`
	Links    int `json:"links"`
}

// ComputeStats returns message, word, media, and link totals for the
// selected user. Words are whitespace-split tokens over raw text; media
// counts placeholder messages; links are URL matches across all texts.
func ComputeStats(selectedUser string, msgs domain.Collection) Stats {
	msgs = msgs.FilterBySender(selectedUser)

	var st Stats
	st.Messages = len(msgs)
	for _, m := range msgs {
		st.Words += len(strings.Fields(m.Text))
		if m.IsMedia() {
			st.Media++
		}
		st.Links += len(urlRE.FindAllString(m.Text, -1))
	}
	return st
}

// UserCount is one row of the busiest-user ranking.
type UserCount struct {
	User  string `json:"user"`
	Count int    `json:"count"`
}

// UserShare is one row of the full activity-percentage table.
type UserShare struct {
	User       string  `json:"user"`
	Percentage float64 `json:"percentage"`
}

// MostActiveUsers ranks human senders by message count. It returns the top
// five counts and the full percentage table over all human messages.
//
// Group notifications are excluded from both the rows and the percentage
// denominator, so the table always sums to ~100 regardless of how chatty
// the system was.
func MostActiveUsers(msgs domain.Collection) ([]UserCount, []UserShare) {
	humans := msgs.WithoutNotifications()
	counts := humans.CountBySender()

	ranked := make([]UserCount, 0, len(counts))
	for u, n := range counts {
		ranked = append(ranked, UserCount{User: u, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].User < ranked[j].User
	})

	shares := make([]UserShare, 0, len(ranked))
	total := len(humans)
	for _, r := range ranked {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(r.Count)/float64(total)*10000) / 100
		}
		shares = append(shares, UserShare{User: r.User, Percentage: pct})
	}

	top := ranked
	if len(top) > 5 {
		top = top[:5]
	}
	return top, shares
}

// WordCount is one row of the common-words table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// MostCommonWords returns the most frequent lowercased tokens for the
// selected user, excluding group notifications, media placeholders, and any
// token present in the stop-word set. limit caps the table size; values <= 0
// fall back to DefaultWordLimit.
func MostCommonWords(selectedUser string, msgs domain.Collection, stop stopwords.Set, limit int) []WordCount {
	if limit <= 0 {
		limit = DefaultWordLimit
	}
	msgs = msgs.FilterBySender(selectedUser)

	freq := make(map[string]int, 256)
	for _, m := range msgs {
		if m.IsNotification() || m.IsMedia() {
			continue
		}
		for _, w := range strings.Fields(strings.ToLower(m.Text)) {
			if stop.Contains(w) {
				continue
			}
			freq[w]++
		}
	}

	out := make([]WordCount, 0, len(freq))
	for w, n := range freq {
		out = append(out, WordCount{Word: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// EmojiCount is one row of the emoji frequency table.
type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// MostCommonEmoji extracts every emoji occurrence from the selected user's
// messages and returns all distinct glyphs ordered by frequency. Unlike the
// word table, notification rows participate: emoji in system messages count
// too, matching the dashboard's emoji panel.
func MostCommonEmoji(selectedUser string, msgs domain.Collection) []EmojiCount {
	msgs = msgs.FilterBySender(selectedUser)

	freq := make(map[string]int, 32)
	for _, m := range msgs {
		for _, e := range gomoji.CollectAll(m.Text) {
			freq[e.Character]++
		}
	}

	out := make([]EmojiCount, 0, len(freq))
	for e, n := range freq {
		out = append(out, EmojiCount{Emoji: e, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Emoji < out[j].Emoji
	})
	return out
}
