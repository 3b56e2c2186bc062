package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Shrawan0701/webanalytics/internal/app/model"
	"github.com/Shrawan0701/webanalytics/internal/http/client"
)

// AnalyticsService reads aggregated analytics for a website through the
// gateway.
type AnalyticsService struct {
	gateway *client.Gateway
}

// NewAnalyticsService returns a gateway-backed AnalyticsService.
func NewAnalyticsService(gw *client.Gateway) *AnalyticsService {
	return &AnalyticsService{gateway: gw}
}

// Overview fetches the headline metrics for one website.
func (s *AnalyticsService) Overview(ctx context.Context, websiteID string) (*model.Overview, error) {
	var overview model.Overview
	if err := s.gateway.Get(ctx, fmt.Sprintf("/analytics/%s/overview", websiteID), nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// ChartData fetches the per-day page-view series for one website.
func (s *AnalyticsService) ChartData(ctx context.Context, websiteID string) ([]model.ChartPoint, error) {
	var points []model.ChartPoint
	if err := s.gateway.Get(ctx, fmt.Sprintf("/analytics/%s/chart-data", websiteID), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Events fetches one page of the raw event listing.
func (s *AnalyticsService) Events(ctx context.Context, websiteID string, page, size int) (*model.EventPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result model.EventPage
	if err := s.gateway.Get(ctx, fmt.Sprintf("/analytics/%s/events", websiteID), query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
