package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/Shrawan0701/webanalytics/internal/app/model"
)

// FormatNumber renders a metric compactly: 1500 -> "1.5K", 2500000 -> "2.5M".
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return fixed1(float64(n)/1_000_000) + "M"
	case n >= 1_000:
		return fixed1(float64(n)/1_000) + "K"
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FormatNullableNumber treats an absent metric as zero.
func FormatNullableNumber(n *int64) string {
	if n == nil {
		return "0"
	}
	return FormatNumber(*n)
}

func fixed1(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// FormatPercentage renders a percentage with one decimal place.
func FormatPercentage(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// PercentageChange computes the relative change between two values; a zero
// or missing baseline yields 0.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

const chartDateLayout = "2006-01-02"

// FillChartRange produces a dense day-by-day series covering the last `days`
// days up to now, filling gaps with zero counts. Input dates are matched on
// their YYYY-MM-DD prefix.
func FillChartRange(data []model.ChartPoint, days int, now time.Time) []model.ChartPoint {
	counts := make(map[string]int64, len(data))
	for _, p := range data {
		key := p.Date
		if len(key) > len(chartDateLayout) {
			key = key[:len(chartDateLayout)]
		}
		counts[key] += p.Count
	}

	out := make([]model.ChartPoint, 0, days+1)
	start := now.AddDate(0, 0, -days)
	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		key := d.Format(chartDateLayout)
		out = append(out, model.ChartPoint{Date: key, Count: counts[key]})
	}
	return out
}

// TrackingSnippet renders the embeddable script tag a site owner pastes
// before </body>.
func TrackingSnippet(agentBaseURL, websiteID string) string {
	src := strings.TrimRight(agentBaseURL, "/") + "/tracking.js?website=" + websiteID
	return fmt.Sprintf(`<script>
(function() {
  var s = document.createElement("script");
  s.src = %q;
  s.async = true;
  document.body.appendChild(s);
})();
</script>`, src)
}

// TruncateText shortens s to maxLen runes with an ellipsis.
func TruncateText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
