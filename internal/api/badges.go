package api

import (
	"context"
	"net/http"

	"github.com/torvik/campus-events-client/internal/model"
)

// GetAllBadges lists every badge the platform can award.
func (c *Client) GetAllBadges(ctx context.Context) ([]model.Badge, error) {
	var out []model.Badge
	if err := c.get(ctx, "/api/badges", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMyBadges lists badges the caller has earned.
func (c *Client) GetMyBadges(ctx context.Context) ([]model.Badge, error) {
	var out []model.Badge
	if err := c.get(ctx, "/api/badges/my-badges", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMyBadgeProgress reports progress toward every badge, keyed by badge
// name.
func (c *Client) GetMyBadgeProgress(ctx context.Context) (map[string]model.BadgeProgress, error) {
	out := map[string]model.BadgeProgress{}
	if err := c.get(ctx, "/api/badges/my-progress", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckAndAwardBadges asks the server to evaluate badge criteria now and
// returns any newly earned badges.
func (c *Client) CheckAndAwardBadges(ctx context.Context) ([]model.Badge, error) {
	var out []model.Badge
	err := c.call(ctx, http.MethodPost, "/api/badges/check-and-award", nil, nil, &out, callOpts{})
	if err != nil {
		return nil, err
	}
	return out, nil
}
