package util

import (
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeYMD(t *testing.T) {
	got, ok := ParseTime("2023-12-31")
	if !ok {
		t.Fatalf("expected ok")
	}
	if FormatYMD(got) != "2023-12-31" {
		t.Fatalf("unexpected day %v", got)
	}
}

func TestFromEpochSeconds(t *testing.T) {
	want := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	got := FromEpoch(float64(want.Unix()))
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestFromEpochMillis(t *testing.T) {
	want := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	got := FromEpoch(float64(want.UnixMilli()))
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestFormatISO(t *testing.T) {
	ts := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	if s := FormatISO(ts); s != "2023-12-31T00:00:00.000Z" {
		t.Fatalf("unexpected iso %s", s)
	}
}
