package transcribe

import (
	"testing"
	"time"
)

func TestBackoffScheduleGrowsAndCaps(t *testing.T) {
	b := DefaultPollPolicy().Backoff
	got := b.Schedule(8)
	want := []time.Duration{
		5000 * time.Millisecond,
		7500 * time.Millisecond,
		11250 * time.Millisecond,
		16875 * time.Millisecond,
		25312500 * time.Microsecond,
		30000 * time.Millisecond,
		30000 * time.Millisecond,
		30000 * time.Millisecond,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d delays, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delay %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestPollPolicyDefaultsFillZeroFields(t *testing.T) {
	p := PollPolicy{MaxAttempts: 3}.withDefaults()
	if p.MaxAttempts != 3 {
		t.Fatalf("expected explicit attempts to be kept, got %d", p.MaxAttempts)
	}
	if p.Backoff.Base != 5*time.Second || p.Backoff.Max != 30*time.Second || p.Backoff.Factor != 1.5 {
		t.Fatalf("unexpected backoff defaults: %+v", p.Backoff)
	}
}
