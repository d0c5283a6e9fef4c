package analysis

import (
	"fmt"
	"sort"

	"github.com/tbourn/go-chat-analytics/internal/domain"
)

// TimelinePoint is one bucket of a message-count timeline. Label is
// "month-year" (e.g. "1-2021") for the monthly timeline and
// "day-month-year" (e.g. "3-1-2021") for the daily one.
type TimelinePoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthlyTimeline groups the selected user's messages by (year, month) and
// returns the buckets in ascending chronological order. Ordering is an
// explicit sort on the cached calendar fields, not an artifact of grouping
// order.
func MonthlyTimeline(selectedUser string, msgs domain.Collection) []TimelinePoint {
	msgs = msgs.FilterBySender(selectedUser)

	type ym struct{ year, month int }
	counts := make(map[ym]int, 24)
	for _, m := range msgs {
		counts[ym{m.Year, m.Month}]++
	}

	keys := make([]ym, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := make([]TimelinePoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, TimelinePoint{
			Label: fmt.Sprintf("%d-%d", k.month, k.year),
			Count: counts[k],
		})
	}
	return out
}

// DailyTimeline groups the selected user's messages by calendar date and
// returns the buckets in ascending chronological order.
func DailyTimeline(selectedUser string, msgs domain.Collection) []TimelinePoint {
	msgs = msgs.FilterBySender(selectedUser)

	type ymd struct{ year, month, day int }
	counts := make(map[ymd]int, 64)
	for _, m := range msgs {
		counts[ymd{m.Year, m.Month, m.Day}]++
	}

	keys := make([]ymd, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.year != b.year {
			return a.year < b.year
		}
		if a.month != b.month {
			return a.month < b.month
		}
		return a.day < b.day
	})

	out := make([]TimelinePoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, TimelinePoint{
			Label: fmt.Sprintf("%d-%d-%d", k.day, k.month, k.year),
			Count: counts[k],
		})
	}
	return out
}
