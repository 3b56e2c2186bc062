package util

import (
	"strings"
	"testing"
	"time"

	"github.com/Shrawan0701/webanalytics/internal/app/model"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999999, "1000.0K"},
		{1000000, "1.0M"},
		{2500000, "2.5M"},
	}

	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatNullableNumber(t *testing.T) {
	if got := FormatNullableNumber(nil); got != "0" {
		t.Fatalf("expected nil to render as 0, got %q", got)
	}
	v := int64(1500)
	if got := FormatNullableNumber(&v); got != "1.5K" {
		t.Fatalf("expected 1.5K, got %q", got)
	}
}

func TestFormatPercentage(t *testing.T) {
	if got := FormatPercentage(42.55); got != "42.5%" && got != "42.6%" {
		t.Fatalf("unexpected rendering %q", got)
	}
	if got := FormatPercentage(0); got != "0.0%" {
		t.Fatalf("expected 0.0%%, got %q", got)
	}
}

func TestPercentageChange(t *testing.T) {
	if got := PercentageChange(150, 100); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := PercentageChange(50, 100); got != -50 {
		t.Fatalf("expected -50, got %v", got)
	}
	if got := PercentageChange(10, 0); got != 0 {
		t.Fatalf("expected 0 for missing baseline, got %v", got)
	}
}

func TestFillChartRange(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	data := []model.ChartPoint{
		{Date: "2026-03-08", Count: 4},
		{Date: "2026-03-10T00:00:00Z", Count: 9},
	}

	out := FillChartRange(data, 6, now)

	if len(out) != 7 {
		t.Fatalf("expected 7 points, got %d", len(out))
	}
	if out[0].Date != "2026-03-04" || out[len(out)-1].Date != "2026-03-10" {
		t.Fatalf("unexpected range %s .. %s", out[0].Date, out[len(out)-1].Date)
	}

	byDate := map[string]int64{}
	for _, p := range out {
		byDate[p.Date] = p.Count
	}
	if byDate["2026-03-08"] != 4 {
		t.Fatalf("expected count carried over, got %d", byDate["2026-03-08"])
	}
	if byDate["2026-03-10"] != 9 {
		t.Fatalf("expected timestamped date matched on prefix, got %d", byDate["2026-03-10"])
	}
	if byDate["2026-03-05"] != 0 {
		t.Fatalf("expected gap filled with zero, got %d", byDate["2026-03-05"])
	}
}

func TestTrackingSnippet(t *testing.T) {
	snippet := TrackingSnippet("https://agent.example.com/", "site-1")

	if !strings.Contains(snippet, `"https://agent.example.com/tracking.js?website=site-1"`) {
		t.Fatalf("snippet missing script url:\n%s", snippet)
	}
	if !strings.HasPrefix(snippet, "<script>") || !strings.HasSuffix(snippet, "</script>") {
		t.Fatalf("snippet not wrapped in script tags:\n%s", snippet)
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("short", 10); got != "short" {
		t.Fatalf("expected unchanged, got %q", got)
	}
	if got := TruncateText("abcdefghij", 5); got != "abcde..." {
		t.Fatalf("expected truncated, got %q", got)
	}
}

func TestValidateUsername(t *testing.T) {
	cases := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valid", "alice_01", true},
		{"empty", "", false},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 21), false},
		{"illegal chars", "alice!", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.value)
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("alice@example.com"); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	for _, bad := range []string{"", "no-at-sign", "a@b", strings.Repeat("a", 45) + "@example.com"} {
		if err := ValidateEmail(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret1"); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	for _, bad := range []string{"", "abc", strings.Repeat("x", 41)} {
		if err := ValidatePassword(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestValidateWebsiteDomain(t *testing.T) {
	for _, good := range []string{"https://example.com", "http://example.com"} {
		if err := ValidateWebsiteDomain(good); err != nil {
			t.Fatalf("expected %q to be valid, got %v", good, err)
		}
	}
	for _, bad := range []string{"", "example.com", "ftp://example.com"} {
		if err := ValidateWebsiteDomain(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
