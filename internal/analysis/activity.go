package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/tbourn/go-chat-analytics/internal/domain"
)

// weekdayOrder lists weekday names in dashboard row order. Monday-first to
// match how people read a weekly grid.
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// NamedCount is one bucket of a named frequency table (weekday or month).
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ActivityByWeekday tallies the selected user's messages per weekday name,
// ordered by descending count (busiest day first) with calendar order as the
// tiebreak. Weekday names come from the cached timestamp, so the table never
// re-derives dates from the decomposed fields.
func ActivityByWeekday(selectedUser string, msgs domain.Collection) []NamedCount {
	msgs = msgs.FilterBySender(selectedUser)

	counts := make(map[string]int, 7)
	for _, m := range msgs {
		counts[m.Weekday()]++
	}
	return rankNamed(counts, weekdayIndex)
}

// ActivityByMonth tallies the selected user's messages per month name,
// ordered by descending count with calendar order as the tiebreak.
func ActivityByMonth(selectedUser string, msgs domain.Collection) []NamedCount {
	msgs = msgs.FilterBySender(selectedUser)

	counts := make(map[string]int, 12)
	for _, m := range msgs {
		counts[m.MonthName()]++
	}
	return rankNamed(counts, monthIndex)
}

// rankNamed converts a name→count map into a descending table with a stable
// calendar-order tiebreak supplied by idx.
func rankNamed(counts map[string]int, idx func(string) int) []NamedCount {
	out := make([]NamedCount, 0, len(counts))
	for n, c := range counts {
		out = append(out, NamedCount{Name: n, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return idx(out[i].Name) < idx(out[j].Name)
	})
	return out
}

func weekdayIndex(name string) int {
	for i, d := range weekdayOrder {
		if d == name {
			return i
		}
	}
	return len(weekdayOrder)
}

func monthIndex(name string) int {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return int(m)
		}
	}
	return 13
}

// Heatmap is the weekly activity grid: one row per weekday (Monday first),
// one column per hour bucket, cells holding message counts. Missing
// (day, bucket) combinations are zero-filled.
type Heatmap struct {
	Days    []string `json:"days"`
	Buckets []string `json:"buckets"`
	Counts  [][]int  `json:"counts"`
}

// WeeklyHeatmap builds the weekday × hour-bucket activity grid for the
// selected user. Buckets are labeled "H-H+1" with the day edges rendered as
// "00-1" and "23-00".
func WeeklyHeatmap(selectedUser string, msgs domain.Collection) Heatmap {
	msgs = msgs.FilterBySender(selectedUser)

	buckets := make([]string, 24)
	for h := 0; h < 24; h++ {
		buckets[h] = BucketLabel(h)
	}

	counts := make([][]int, len(weekdayOrder))
	for i := range counts {
		counts[i] = make([]int, 24)
	}
	for _, m := range msgs {
		counts[weekdayIndex(m.Weekday())][m.Hour]++
	}

	days := make([]string, len(weekdayOrder))
	copy(days, weekdayOrder)
	return Heatmap{Days: days, Buckets: buckets, Counts: counts}
}

// BucketLabel renders an hour of day as its heatmap column label.
func BucketLabel(hour int) string {
	switch hour {
	case 0:
		return "00-1"
	case 23:
		return "23-00"
	default:
		return fmt.Sprintf("%d-%d", hour, hour+1)
	}
}
