package model

// Website is a registered site tracked by the product.
type Website struct {
	WebsiteID string `json:"websiteId"`
	Name      string `json:"name"`
	Domain    string `json:"domain"`
}

// Overview aggregates the headline metrics for one website.
type Overview struct {
	TotalPageViews int64   `json:"totalPageViews"`
	TotalClicks    int64   `json:"totalClicks"`
	UniqueVisitors int64   `json:"uniqueVisitors"`
	BounceRate     float64 `json:"bounceRate"`
}

// ChartPoint is one day of the page-view time series.
type ChartPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// EventRecord is one raw event row in the paginated listing.
type EventRecord struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"createdAt"`
	EventType string `json:"eventType"`
	PageURL   string `json:"pageUrl"`
	EventName string `json:"eventName"`
}

// EventPage is one page of the raw event listing.
type EventPage struct {
	Content    []EventRecord `json:"content"`
	TotalPages int           `json:"totalPages"`
}
