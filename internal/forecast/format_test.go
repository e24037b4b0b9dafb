package forecast

import (
	"testing"
	"time"
)

func TestFormatter_Timestamp_Falsy(t *testing.T) {
	var f Formatter
	if got := f.Timestamp(nil); got != "" {
		t.Errorf("Timestamp(nil) = %q, want empty", got)
	}
	if got := f.Timestamp(i64(0)); got != "" {
		t.Errorf("Timestamp(0) = %q, want empty", got)
	}
	if got := f.Date(nil); got != "" {
		t.Errorf("Date(nil) = %q, want empty", got)
	}
}

func TestFormatter_Timestamp_KnownValue(t *testing.T) {
	got := utc.Timestamp(i64(1735689600)) // 2025-01-01 00:00:00 UTC
	if got != "1/1/2025, 12:00:00 AM" {
		t.Errorf("Timestamp() = %q, want 1/1/2025, 12:00:00 AM", got)
	}
	if len(got) <= 10 {
		t.Errorf("Timestamp() = %q, want longer than 10 chars", got)
	}
}

func TestFormatter_ZeroValueUsesLocal(t *testing.T) {
	var f Formatter
	now := time.Now().Unix()
	if got := f.Timestamp(&now); got == "" {
		t.Error("Timestamp(now) returned empty string")
	}
}

func TestFormatter_DateFollowsLocation(t *testing.T) {
	tokyo, err := NewFormatter("Asia/Tokyo", "", "")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2025-01-01 20:00 UTC is already Jan 2 in Tokyo.
	ts := i64(1735761600)
	if got := utc.Date(ts); got != "1/1/2025" {
		t.Errorf("UTC Date() = %q, want 1/1/2025", got)
	}
	if got := tokyo.Date(ts); got != "1/2/2025" {
		t.Errorf("Tokyo Date() = %q, want 1/2/2025", got)
	}
}

func TestFormatter_CustomLayouts(t *testing.T) {
	f := Formatter{Location: time.UTC, DateTimeLayout: time.RFC3339, DateLayout: "2006-01-02"}
	ts := i64(1735689600)
	if got := f.Timestamp(ts); got != "2025-01-01T00:00:00Z" {
		t.Errorf("Timestamp() = %q", got)
	}
	if got := f.Date(ts); got != "2025-01-01" {
		t.Errorf("Date() = %q", got)
	}
}

func TestNewFormatter_InvalidZone(t *testing.T) {
	if _, err := NewFormatter("Not/AZone", "", ""); err == nil {
		t.Error("NewFormatter() expected error for unknown zone")
	}
}
