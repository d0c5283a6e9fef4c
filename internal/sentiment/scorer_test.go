package sentiment

import (
	"math"
	"testing"
	"time"

	"github.com/tbourn/go-chat-analytics/internal/domain"
)

func mkMsg(sender, text string) domain.Message {
	ts := time.Date(2021, 1, 3, 10, 0, 0, 0, time.UTC)
	return domain.Message{Sender: sender, Text: text, Timestamp: ts,
		Day: 3, Month: 1, Year: 2021, Hour: 10}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScore_Components(t *testing.T) {
	s := NewScorer()

	happy := s.Score("I love this, it is wonderful and great!")
	sad := s.Score("I hate this, it is terrible and awful.")
	if happy.Positive <= sad.Positive {
		t.Fatalf("positive text scored %v, negative text %v", happy, sad)
	}
	if sad.Negative <= happy.Negative {
		t.Fatalf("negative component inverted: %v vs %v", sad, happy)
	}
	for _, sc := range []Score{happy, sad} {
		for _, v := range []float64{sc.Positive, sc.Negative, sc.Neutral} {
			if v < 0 || v > 1 {
				t.Fatalf("component out of [0,1]: %v", sc)
			}
		}
	}
}

func TestScoreByUser(t *testing.T) {
	s := NewScorer()
	msgs := domain.Collection{
		mkMsg("Alice", "this is wonderful"),
		mkMsg("Alice", "great job everyone"),
		mkMsg("Bob", "this is terrible"),
		mkMsg(domain.GroupNotification, "Alice added Carol"),
	}

	rows := s.ScoreByUser(msgs)
	if len(rows) != 2 {
		t.Fatalf("rows = %v, want Alice and Bob only", rows)
	}
	if rows[0].User != "Alice" || rows[1].User != "Bob" {
		t.Fatalf("rows must be sorted by user: %v", rows)
	}
	if rows[0].Positive <= rows[1].Positive {
		t.Fatalf("Alice should score more positive than Bob: %v", rows)
	}
}

func TestSummarize_NamedUser(t *testing.T) {
	rows := []UserScore{
		{User: "Alice", Positive: 0.6, Negative: 0.1, Neutral: 0.3},
		{User: "Bob", Positive: 0.2, Negative: 0.5, Neutral: 0.3},
	}

	sum, err := Summarize("Bob", rows)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(sum.Labels) != 3 || sum.Labels[0] != "Positive" || sum.Labels[1] != "Negative" || sum.Labels[2] != "Neutral" {
		t.Fatalf("labels = %v", sum.Labels)
	}
	if !approx(sum.Values[0], 0.2) || !approx(sum.Values[1], 0.5) || !approx(sum.Values[2], 0.3) {
		t.Fatalf("values = %v", sum.Values)
	}
}

func TestSummarize_OverallIsMeanOfMeans(t *testing.T) {
	rows := []UserScore{
		{User: "Alice", Positive: 0.6, Negative: 0.2, Neutral: 0.2},
		{User: "Bob", Positive: 0.2, Negative: 0.4, Neutral: 0.4},
	}
	sum, err := Summarize(domain.OverallUser, rows)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !approx(sum.Values[0], 0.4) || !approx(sum.Values[1], 0.3) || !approx(sum.Values[2], 0.3) {
		t.Fatalf("overall values = %v", sum.Values)
	}
}

func TestSummarize_UnknownUserAndEmpty(t *testing.T) {
	if _, err := Summarize("Ghost", []UserScore{{User: "Alice"}}); err != ErrUserNotScored {
		t.Fatalf("err = %v, want ErrUserNotScored", err)
	}
	sum, err := Summarize(domain.OverallUser, nil)
	if err != nil {
		t.Fatalf("empty overall: %v", err)
	}
	for _, v := range sum.Values {
		if v != 0 {
			t.Fatalf("empty overall must be zero-valued: %v", sum.Values)
		}
	}
}
