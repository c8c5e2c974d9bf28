package api

import (
	"context"
	"net/http"
)

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	profile := &Profile{}
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile updates the given profile fields.
func (c *Client) UpdateProfile(ctx context.Context, request *UpdateProfileRequest) error {
	return c.do(ctx, http.MethodPut, "/auth/profile", nil, request, nil)
}

// GetUserSummary fetches the latest AI-generated activity summary.
func (c *Client) GetUserSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	if err := c.do(ctx, http.MethodGet, "/chat/user-summary", nil, nil, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// GetSummaryHistory fetches previously generated summaries.
func (c *Client) GetSummaryHistory(ctx context.Context) (*SummaryHistory, error) {
	history := &SummaryHistory{}
	if err := c.do(ctx, http.MethodGet, "/chat/summary-history", nil, nil, history); err != nil {
		return nil, err
	}
	return history, nil
}
