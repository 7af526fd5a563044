package apiclient

import (
	"context"
	"encoding/json"

	"github.com/iliyamo/club-dining/internal/model"
)

// MenuItems lists the whole menu, inactive items included.
func (c *Client) MenuItems(ctx context.Context) ([]model.MenuItem, error) {
	var out []model.MenuItem
	if err := c.get(ctx, "/api/menu-items", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DiningRooms lists the bookable rooms.
func (c *Client) DiningRooms(ctx context.Context) ([]model.DiningRoom, error) {
	var out []model.DiningRoom
	if err := c.get(ctx, "/api/dining-rooms", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Tables lists every table.
func (c *Client) Tables(ctx context.Context) ([]model.Table, error) {
	var out []model.Table
	if err := c.get(ctx, "/api/tables", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Members lists the club members visible to the caller.
func (c *Client) Members(ctx context.Context) ([]model.Member, error) {
	var out []model.Member
	if err := c.get(ctx, "/api/members", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Schema returns the raw /api/schema document (enums and _config).
func (c *Client) Schema(ctx context.Context) (json.RawMessage, error) {
	var raw []byte
	if err := c.get(ctx, "/api/schema", &raw); err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}
