// Package domain defines the core data model shared by the parser and the
// analytics engines: a single chat message and an ordered collection of
// messages as they appeared in the exported transcript.
package domain

import (
	"sort"
	"time"
)

const (
	// GroupNotification is the sentinel sender attributed to system events
	// (subject changes, joins, leaves) that have no human author.
	GroupNotification = "group notification"

	// MediaOmitted is the literal placeholder WhatsApp writes for a
	// non-text attachment when exporting without media.
	MediaOmitted = "<Media omitted>"

	// OverallUser is the pseudo-user selector meaning "no per-user filter".
	OverallUser = "Overall"
)

// Message is the atomic unit of a parsed transcript.
//
// Fields:
//   - Sender: identity string, or GroupNotification for system events.
//   - Text: raw message body; may span multiple lines.
//   - Timestamp: minute-resolution local time from the export.
//   - Day..Minute: calendar components decomposed once at parse time so the
//     metrics engines never re-derive dates from strings.
type Message struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	Day    int `json:"day"`
	Month  int `json:"month"`
	Year   int `json:"year"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// IsNotification reports whether the message is a system event rather than a
// human utterance.
func (m Message) IsNotification() bool { return m.Sender == GroupNotification }

// IsMedia reports whether the message body is the attachment placeholder.
func (m Message) IsMedia() bool { return m.Text == MediaOmitted }

// Weekday returns the English weekday name for the message date.
func (m Message) Weekday() string { return m.Timestamp.Weekday().String() }

// MonthName returns the English month name for the message date.
func (m Message) MonthName() string { return m.Timestamp.Month().String() }

// Collection is an ordered sequence of messages in transcript order. It is
// owned by a single analysis run and treated as read-only once parsed; the
// helpers below return fresh slices and never mutate the receiver.
type Collection []Message

// FilterBySender returns the subset of messages sent by sender. The sentinel
// OverallUser returns the collection unchanged (no filter).
func (c Collection) FilterBySender(sender string) Collection {
	if sender == OverallUser {
		return c
	}
	out := make(Collection, 0, len(c))
	for _, m := range c {
		if m.Sender == sender {
			out = append(out, m)
		}
	}
	return out
}

// WithoutNotifications returns the subset of messages with a human sender.
func (c Collection) WithoutNotifications() Collection {
	out := make(Collection, 0, len(c))
	for _, m := range c {
		if !m.IsNotification() {
			out = append(out, m)
		}
	}
	return out
}

// Senders returns the distinct human senders in ascending lexical order.
// GroupNotification is never part of the selectable user list.
func (c Collection) Senders() []string {
	seen := make(map[string]struct{}, 8)
	for _, m := range c {
		if m.IsNotification() {
			continue
		}
		seen[m.Sender] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// HasSender reports whether sender appears in the collection as a human
// author. OverallUser is always considered valid.
func (c Collection) HasSender(sender string) bool {
	if sender == OverallUser {
		return true
	}
	for _, m := range c {
		if !m.IsNotification() && m.Sender == sender {
			return true
		}
	}
	return false
}

// CountBySender tallies messages per sender, including GroupNotification.
func (c Collection) CountBySender() map[string]int {
	counts := make(map[string]int, 8)
	for _, m := range c {
		counts[m.Sender]++
	}
	return counts
}
