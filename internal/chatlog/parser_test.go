package chatlog

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-chat-analytics/internal/domain"
)

const sampleChat = "Messages and calls are end-to-end encrypted.\n" +
	"3/1/21, 14:05 - Alice: see you tomorrow\n" +
	"3/1/21, 14:07 - Bob: <Media omitted>\n" +
	"3/1/21, 14:09 - Alice: check http://x.co\n" +
	"4/1/21, 09:00 - Alice added Carol\n" +
	"4/1/21, 09:15 - Carol: hello\neveryone\n" +
	"4/1/21, 09:20 - Bob: bye\n"

func TestParse_Basic(t *testing.T) {
	msgs, skipped := Parse(sampleChat)
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(msgs) != 6 {
		t.Fatalf("len(msgs) = %d, want 6", len(msgs))
	}

	// Preamble before the first timestamp must be discarded.
	if msgs[0].Sender != "Alice" || msgs[0].Text != "see you tomorrow" {
		t.Fatalf("first message = %+v", msgs[0])
	}

	// Media placeholder survives verbatim.
	if !msgs[1].IsMedia() {
		t.Fatalf("expected media placeholder, got %q", msgs[1].Text)
	}

	// A record without "name: " is a group notification.
	if msgs[3].Sender != domain.GroupNotification || msgs[3].Text != "Alice added Carol" {
		t.Fatalf("notification = %+v", msgs[3])
	}

	// Multi-line bodies belong to one record.
	if msgs[4].Text != "hello\neveryone" {
		t.Fatalf("multi-line text = %q", msgs[4].Text)
	}

	// Calendar fields are decomposed from the timestamp.
	m := msgs[0]
	if m.Day != 3 || m.Month != 1 || m.Year != 2021 || m.Hour != 14 || m.Minute != 5 {
		t.Fatalf("calendar fields = %+v", m)
	}
	if m.Weekday() != "Sunday" {
		t.Fatalf("weekday = %q, want Sunday (3 Jan 2021)", m.Weekday())
	}
}

func TestParse_MalformedTimestampSkipped(t *testing.T) {
	raw := "3/1/21, 14:05 - Alice: hi\n" +
		"99/99/9999, 99:99 - Alice: hi again\n" +
		"3/1/21, 14:10 - Bob: yo\n"

	msgs, skipped := Parse(raw)
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
	if msgs[1].Sender != "Bob" {
		t.Fatalf("well-formed rows must be retained: %+v", msgs[1])
	}
}

func TestParse_FourDigitYear(t *testing.T) {
	msgs, skipped := Parse("15/8/2022, 23:59 - Alice: late\n")
	if skipped != 0 || len(msgs) != 1 {
		t.Fatalf("msgs=%d skipped=%d", len(msgs), skipped)
	}
	if msgs[0].Year != 2022 || msgs[0].Hour != 23 || msgs[0].Minute != 59 {
		t.Fatalf("fields = %+v", msgs[0])
	}
}

func TestParse_RoundTrip(t *testing.T) {
	// Serialize synthetic messages in the accepted format and expect them
	// back field-for-field.
	base := time.Date(2023, 5, 2, 8, 30, 0, 0, time.UTC)
	senders := []string{"Alice", "Bob", "Carol"}

	var b strings.Builder
	want := make([]domain.Message, 0, 9)
	for i := 0; i < 9; i++ {
		ts := base.Add(time.Duration(i) * 7 * time.Minute)
		s := senders[i%len(senders)]
		text := fmt.Sprintf("message number %d", i)
		fmt.Fprintf(&b, "%d/%d/%02d, %d:%02d - %s: %s\n",
			ts.Day(), int(ts.Month()), ts.Year()%100, ts.Hour(), ts.Minute(), s, text)
		want = append(want, domain.Message{Sender: s, Text: text, Timestamp: ts})
	}

	msgs, skipped := Parse(b.String())
	if skipped != 0 {
		t.Fatalf("skipped = %d", skipped)
	}
	if len(msgs) != len(want) {
		t.Fatalf("len = %d, want %d", len(msgs), len(want))
	}
	for i := range want {
		if msgs[i].Sender != want[i].Sender || msgs[i].Text != want[i].Text {
			t.Fatalf("msg %d = %+v, want %+v", i, msgs[i], want[i])
		}
		if !msgs[i].Timestamp.Equal(want[i].Timestamp) {
			t.Fatalf("msg %d timestamp = %v, want %v", i, msgs[i].Timestamp, want[i].Timestamp)
		}
	}
}

func TestParse_EmptyAndGarbage(t *testing.T) {
	for _, raw := range []string{"", "no timestamps anywhere", "\n\n\n"} {
		msgs, skipped := Parse(raw)
		if len(msgs) != 0 || skipped != 0 {
			t.Fatalf("Parse(%q) = %d msgs, %d skipped", raw, len(msgs), skipped)
		}
	}
}

func TestParse_ColonInsideText(t *testing.T) {
	msgs, _ := Parse("3/1/21, 14:05 - Alice: ratio was 3:1 today\n")
	if len(msgs) != 1 {
		t.Fatalf("len = %d", len(msgs))
	}
	if msgs[0].Sender != "Alice" || msgs[0].Text != "ratio was 3:1 today" {
		t.Fatalf("split on first ': ' only: %+v", msgs[0])
	}
}
