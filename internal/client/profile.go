package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fyzahq/fyza/internal/model"
)

const profilePath = "/api/profile"

func (c *Client) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	var p model.Profile
	err := c.do(ctx, http.MethodGet, profilePath+"/"+strconv.FormatInt(userID, 10), nil, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &p, nil
}

func (c *Client) CreateProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	var created model.Profile
	err := c.do(ctx, http.MethodPost, profilePath, p, &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID int64, p *model.Profile) (*model.Profile, error) {
	var updated model.Profile
	err := c.do(ctx, http.MethodPut, profilePath+"/"+strconv.FormatInt(userID, 10), p, &updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &updated, nil
}

// SaveProfile updates the profile when it carries an id and creates it otherwise
func (c *Client) SaveProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	if p.ID != 0 {
		return c.UpdateProfile(ctx, p.ID, p)
	}
	return c.CreateProfile(ctx, p)
}
