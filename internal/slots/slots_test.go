package slots

import (
	"testing"
	"time"
)

func TestCatalog(t *testing.T) {
	all := All()
	if len(all) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(all))
	}
	if all[0] != "09:00" || all[len(all)-1] != "17:30" {
		t.Errorf("catalog bounds wrong: %s .. %s", all[0], all[len(all)-1])
	}
	for _, s := range all {
		if !Valid(s) {
			t.Errorf("catalog member %s not valid", s)
		}
	}
	// lunch gap
	for _, s := range []string{"12:00", "12:30"} {
		if Valid(s) {
			t.Errorf("%s should not be bookable", s)
		}
	}
	if Valid("9:00") || Valid("") || Valid("09:15") {
		t.Error("non-catalog tokens accepted")
	}
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2025, 3, 10, 14, 45, 12, 99, loc)
	got := NormalizeDate(in)

	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-10")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Hour() != 0 || got.Location() != time.UTC {
		t.Errorf("not normalized: %v", got)
	}

	for _, bad := range []string{"", "10-03-2025", "2025/03/10", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
