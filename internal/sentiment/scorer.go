// Package sentiment assigns VADER polarity scores to messages and
// aggregates them per user. The lexicon-based analyzer is consumed as a
// black box: text in, a {positive, negative, neutral} triple out, each
// component in [0,1].
package sentiment

import (
	"errors"
	"sort"
	"sync"

	"github.com/jonreiter/govader"

	"github.com/tbourn/go-chat-analytics/internal/domain"
)

// Labels is the fixed column order every sentiment summary uses.
var Labels = []string{"Positive", "Negative", "Neutral"}

// ErrUserNotScored is returned by Summarize when the requested user has no
// row in the per-user score table.
var ErrUserNotScored = errors.New("user has no sentiment scores")

// Score is the polarity triple for a single message.
type Score struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// UserScore is the mean polarity triple over one sender's messages.
type UserScore struct {
	User     string  `json:"user"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Summary is the dashboard-facing distribution for one selection: values
// are aligned with Labels.
type Summary struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Scorer wraps the VADER analyzer. The lexicon is embedded in the library,
// so construction cannot fail at runtime; the scorer is still built once at
// startup alongside the other analysis resources.
//
// The analyzer is not documented as safe for concurrent use, so a mutex
// serializes scoring. Scoring is CPU-cheap relative to request handling.
type Scorer struct {
	mu       sync.Mutex
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer constructs a Scorer with the embedded VADER lexicon.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the polarity triple for a single message text.
func (s *Scorer) Score(text string) Score {
	s.mu.Lock()
	ps := s.analyzer.PolarityScores(text)
	s.mu.Unlock()
	return Score{Positive: ps.Positive, Negative: ps.Negative, Neutral: ps.Neutral}
}

// ScoreByUser scores every human message and returns one row per sender
// holding the mean of each polarity component, sorted by sender. Group
// notifications have no author and are excluded.
func (s *Scorer) ScoreByUser(msgs domain.Collection) []UserScore {
	type acc struct {
		pos, neg, neu float64
		n             int
	}
	byUser := make(map[string]*acc, 8)
	for _, m := range msgs {
		if m.IsNotification() {
			continue
		}
		sc := s.Score(m.Text)
		a := byUser[m.Sender]
		if a == nil {
			a = &acc{}
			byUser[m.Sender] = a
		}
		a.pos += sc.Positive
		a.neg += sc.Negative
		a.neu += sc.Neutral
		a.n++
	}

	rows := make([]UserScore, 0, len(byUser))
	for u, a := range byUser {
		n := float64(a.n)
		rows = append(rows, UserScore{
			User:     u,
			Positive: a.pos / n,
			Negative: a.neg / n,
			Neutral:  a.neu / n,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].User < rows[j].User })
	return rows
}

// Summarize reduces the per-user table to one distribution. For the
// OverallUser sentinel it averages the per-user rows (a mean of means, not
// re-weighted by message volume); for a named user it returns that user's
// row verbatim. The value order always follows Labels.
func Summarize(selectedUser string, rows []UserScore) (Summary, error) {
	if selectedUser == domain.OverallUser {
		if len(rows) == 0 {
			return Summary{Labels: Labels, Values: []float64{0, 0, 0}}, nil
		}
		var pos, neg, neu float64
		for _, r := range rows {
			pos += r.Positive
			neg += r.Negative
			neu += r.Neutral
		}
		n := float64(len(rows))
		return Summary{Labels: Labels, Values: []float64{pos / n, neg / n, neu / n}}, nil
	}

	for _, r := range rows {
		if r.User == selectedUser {
			return Summary{Labels: Labels, Values: []float64{r.Positive, r.Negative, r.Neutral}}, nil
		}
	}
	return Summary{}, ErrUserNotScored
}
