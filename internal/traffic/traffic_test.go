package traffic

import (
	"testing"
	"time"
)

func TestRequestCount_Empty(t *testing.T) {
	Reset()
	if n := RequestCount(time.Minute); n != 0 {
		t.Errorf("RequestCount() = %d, want 0", n)
	}
}

func TestRecord_Counts(t *testing.T) {
	Reset()
	defer Reset()
	Record(Success)
	Record(Success)
	Record(Error)
	Record(Denied)

	if n := RequestCount(time.Minute); n != 4 {
		t.Errorf("RequestCount() = %d, want 4", n)
	}
	if n := DenialCount(time.Minute); n != 1 {
		t.Errorf("DenialCount() = %d, want 1", n)
	}
	errs, total := ErrorRate(time.Minute)
	if errs != 1 || total != 3 {
		t.Errorf("ErrorRate() = (%d, %d), want (1, 3)", errs, total)
	}
}

func TestRecord_IgnoresUnknownOutcome(t *testing.T) {
	tr := NewTracker()
	tr.Record(Outcome(42))
	if n := tr.RequestCount(time.Minute); n != 0 {
		t.Errorf("RequestCount() = %d, want 0", n)
	}
}

func TestTracker_WindowAndPrune(t *testing.T) {
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := &Tracker{now: func() time.Time { return clock }}

	tr.Record(Error)
	clock = clock.Add(2 * time.Minute)
	tr.Record(Success)

	if errs, total := tr.ErrorRate(time.Minute); errs != 0 || total != 1 {
		t.Errorf("ErrorRate(1m) = (%d, %d), want (0, 1)", errs, total)
	}
	if errs, total := tr.ErrorRate(3 * time.Minute); errs != 1 || total != 2 {
		t.Errorf("ErrorRate(3m) = (%d, %d), want (1, 2)", errs, total)
	}

	clock = clock.Add(10 * time.Minute)
	tr.Record(Denied)
	if got := len(tr.times[Error]) + len(tr.times[Success]); got != 0 {
		t.Errorf("expected old outcomes pruned, %d remain", got)
	}
}
