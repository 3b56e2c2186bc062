package service

import (
	"context"
	"fmt"

	"github.com/Shrawan0701/webanalytics/internal/app/model"
	"github.com/Shrawan0701/webanalytics/internal/http/client"
)

// WebsiteService exposes website CRUD against the remote API.
type WebsiteService struct {
	gateway *client.Gateway
}

// NewWebsiteService returns a gateway-backed WebsiteService.
func NewWebsiteService(gw *client.Gateway) *WebsiteService {
	return &WebsiteService{gateway: gw}
}

// List returns the caller's registered websites.
func (s *WebsiteService) List(ctx context.Context) ([]model.Website, error) {
	var sites []model.Website
	if err := s.gateway.Get(ctx, "/websites", nil, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

type createWebsiteRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// Create registers a new website.
func (s *WebsiteService) Create(ctx context.Context, name, domain string) (*model.Website, error) {
	var site model.Website
	if err := s.gateway.Post(ctx, "/websites", createWebsiteRequest{Name: name, Domain: domain}, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// Delete removes a website by id.
func (s *WebsiteService) Delete(ctx context.Context, websiteID string) error {
	return s.gateway.Delete(ctx, fmt.Sprintf("/websites/%s", websiteID))
}
