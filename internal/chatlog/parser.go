// Package chatlog turns a raw WhatsApp chat export into typed message
// records. The export format is one record per timestamp prefix:
//
//	3/1/21, 14:05 - Alice: see you tomorrow
//	3/1/21, 14:07 - Bob: <Media omitted>
//	4/1/21, 09:00 - Alice added Carol
//
// Lines that do not start with a timestamp prefix are continuations of the
// previous record's body (multi-line messages). Records whose sender prefix
// is missing are group notifications. Only the day-first, 24-hour format
// `D/M/YY(YY), H:MM` is supported.
package chatlog

import (
	"regexp"
	"strings"
	"time"

	"github.com/tbourn/go-chat-analytics/internal/domain"
)

// recordRE matches the timestamp prefix that starts every record and
// captures the date-time portion without the trailing " - " separator.
var recordRE = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4}),\s(\d{1,2}:\d{2})\s-\s`)

// senderRE splits a record body into sender and text on the first ": ".
// (?s) lets the text capture span the newlines of multi-line messages.
var senderRE = regexp.MustCompile(`(?s)^(.+?):\s(.*)`)

// Timestamp layouts accepted for the date-time prefix. Exports carry either
// two- or four-digit years depending on device locale.
const (
	layoutShortYear = "2/1/06, 15:04"
	layoutLongYear  = "2/1/2006, 15:04"
)

// Parse converts a full transcript into a message collection.
//
// It returns the parsed messages in transcript order together with the
// number of records that were skipped because their timestamp did not parse
// under the fixed format. A skipped record is dropped entirely; parsing
// never aborts on malformed rows. Text before the first timestamp prefix is
// discarded (it is never a message).
func Parse(raw string) (domain.Collection, int) {
	locs := recordRE.FindAllStringSubmatchIndex(raw, -1)
	if len(locs) == 0 {
		return domain.Collection{}, 0
	}

	msgs := make(domain.Collection, 0, len(locs))
	skipped := 0

	for i, loc := range locs {
		// Date and time are captured separately; rebuild "D/M/Y, H:MM".
		stamp := raw[loc[2]:loc[3]] + ", " + raw[loc[4]:loc[5]]

		bodyStart := loc[1]
		bodyEnd := len(raw)
		if i+1 < len(locs) {
			bodyEnd = locs[i+1][0]
		}
		body := strings.TrimSuffix(raw[bodyStart:bodyEnd], "\n")

		ts, err := parseTimestamp(stamp)
		if err != nil {
			skipped++
			continue
		}

		sender := domain.GroupNotification
		text := body
		if m := senderRE.FindStringSubmatch(body); m != nil {
			sender = m[1]
			text = m[2]
		}

		msgs = append(msgs, domain.Message{
			Sender:    sender,
			Text:      text,
			Timestamp: ts,
			Day:       ts.Day(),
			Month:     int(ts.Month()),
			Year:      ts.Year(),
			Hour:      ts.Hour(),
			Minute:    ts.Minute(),
		})
	}
	return msgs, skipped
}

// parseTimestamp parses a date-time prefix strictly under the fixed format,
// trying the two-digit year layout first. There is no lenient fallback: a
// string that fits neither layout is a malformed row.
func parseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(layoutShortYear, s)
	if err == nil {
		return ts, nil
	}
	return time.Parse(layoutLongYear, s)
}
