package domain

import (
	"reflect"
	"testing"
	"time"
)

func msg(sender, text string) Message {
	ts := time.Date(2021, 1, 3, 14, 5, 0, 0, time.UTC)
	return Message{
		Sender: sender, Text: text, Timestamp: ts,
		Day: 3, Month: 1, Year: 2021, Hour: 14, Minute: 5,
	}
}

func TestFilterBySender(t *testing.T) {
	c := Collection{msg("Alice", "a"), msg("Bob", "b"), msg("Alice", "c")}

	if got := c.FilterBySender(OverallUser); len(got) != 3 {
		t.Fatalf("Overall filter = %d messages, want 3", len(got))
	}
	got := c.FilterBySender("Alice")
	if len(got) != 2 {
		t.Fatalf("Alice filter = %d messages, want 2", len(got))
	}
	if got := c.FilterBySender("Nobody"); len(got) != 0 {
		t.Fatalf("unknown sender = %d messages, want 0", len(got))
	}
	// Receiver untouched.
	if len(c) != 3 {
		t.Fatalf("collection mutated: len=%d", len(c))
	}
}

func TestSendersExcludeNotifications(t *testing.T) {
	c := Collection{
		msg("Bob", "b"),
		msg(GroupNotification, "Alice added Carol"),
		msg("Alice", "a"),
		msg("Bob", "b2"),
	}
	want := []string{"Alice", "Bob"}
	if got := c.Senders(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Senders() = %v, want %v", got, want)
	}
	if got := c.WithoutNotifications(); len(got) != 3 {
		t.Fatalf("WithoutNotifications = %d, want 3", len(got))
	}
}

func TestHasSender(t *testing.T) {
	c := Collection{msg("Alice", "a"), msg(GroupNotification, "n")}
	if !c.HasSender("Alice") || !c.HasSender(OverallUser) {
		t.Fatalf("expected Alice and Overall to be valid selections")
	}
	if c.HasSender("Bob") || c.HasSender(GroupNotification) {
		t.Fatalf("Bob and the notification sentinel must not be selectable")
	}
}

func TestMessagePredicates(t *testing.T) {
	if !msg("Bob", MediaOmitted).IsMedia() {
		t.Fatalf("IsMedia should match the placeholder")
	}
	if msg("Bob", "hi").IsMedia() {
		t.Fatalf("IsMedia matched plain text")
	}
	if !msg(GroupNotification, "n").IsNotification() {
		t.Fatalf("IsNotification should match the sentinel sender")
	}
	m := msg("Bob", "hi")
	if m.Weekday() != "Sunday" || m.MonthName() != "January" {
		t.Fatalf("calendar names = %q/%q", m.Weekday(), m.MonthName())
	}
}

func TestCountBySender(t *testing.T) {
	c := Collection{msg("Alice", "a"), msg("Alice", "b"), msg(GroupNotification, "n")}
	counts := c.CountBySender()
	if counts["Alice"] != 2 || counts[GroupNotification] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}
