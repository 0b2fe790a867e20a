package request

import (
	"testing"
	"time"
)

func TestBackoffEscalation(t *testing.T) {
	b := NewProviderBackoff(10*time.Millisecond, 100*time.Millisecond)

	b.RecordFailure("wikidata")
	count1, next1 := b.GetState("wikidata")
	if count1 != 1 {
		t.Errorf("failure count = %d, want 1", count1)
	}
	if next1.IsZero() {
		t.Error("nextAllowed not set after failure")
	}

	b.RecordFailure("wikidata")
	count2, next2 := b.GetState("wikidata")
	if count2 != 2 {
		t.Errorf("failure count = %d, want 2", count2)
	}
	if !next2.After(next1) {
		t.Error("delay did not escalate on repeated failure")
	}
}

func TestBackoffRecovery(t *testing.T) {
	b := NewProviderBackoff(10*time.Millisecond, 100*time.Millisecond)

	b.RecordFailure("wikidata")
	b.RecordSuccess("wikidata")

	count, next := b.GetState("wikidata")
	if count != 0 {
		t.Errorf("failure count = %d, want 0 after recovery", count)
	}
	if !next.IsZero() {
		t.Error("nextAllowed should be cleared after full recovery")
	}
}

func TestBackoffDelayCapped(t *testing.T) {
	b := NewProviderBackoff(10*time.Millisecond, 50*time.Millisecond)

	// 2^9 * 10ms would be ~5s uncapped; jitter adds at most 10%
	d := b.calculateDelay(10)
	if d > 55*time.Millisecond {
		t.Errorf("delay = %v, want <= 55ms (capped)", d)
	}
}

func TestBackoffUnknownProviderDoesNotBlock(t *testing.T) {
	b := NewProviderBackoff(time.Second, time.Minute)

	start := time.Now()
	b.Wait("never-seen")
	if time.Since(start) > 50*time.Millisecond {
		t.Error("Wait blocked for a provider with no recorded failures")
	}
}
