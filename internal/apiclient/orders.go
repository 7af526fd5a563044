package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/iliyamo/club-dining/internal/model"
)

// AddOrderItem puts one unit of a menu item on an open order.
func (c *Client) AddOrderItem(ctx context.Context, orderID, menuItemID int64) (*model.OrderItem, error) {
	var out model.OrderItem
	in := map[string]any{"menu_item_id": menuItemID, "quantity": 1, "status": "selected"}
	if err := c.post(ctx, fmt.Sprintf("/api/order-items/by-order/%d", orderID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrderItem removes an item from an open order.
func (c *Client) DeleteOrderItem(ctx context.Context, itemID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/order-items/%d", itemID))
}

// CreateOrder opens an order for an attendee.
func (c *Client) CreateOrder(ctx context.Context, attendeeID int64) (*model.Order, error) {
	var out model.Order
	if err := c.post(ctx, "/api/orders", map[string]int64{"attendee_id": attendeeID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FireOrder sends an order to the kitchen.
func (c *Client) FireOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	var out model.Order
	if err := c.post(ctx, fmt.Sprintf("/api/orders/%d/fire", orderID), nil, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		out = model.Order{ID: orderID, Status: model.OrderFired}
	}
	return &out, nil
}

// ChitURL is the printable kitchen ticket served by the API.
func (c *Client) ChitURL(orderID int64) string {
	return fmt.Sprintf("%s/api/orders/%d/chit", c.baseURL, orderID)
}

// AdminOrders lists orders in a given status across all reservations.
func (c *Client) AdminOrders(ctx context.Context, status string) ([]model.Order, error) {
	var out []model.Order
	if err := c.get(ctx, "/api/admin/orders?status="+url.QueryEscape(status), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FulfillOrder marks a fired order as served.
func (c *Client) FulfillOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	var out model.Order
	if err := c.patch(ctx, fmt.Sprintf("/api/admin/orders/%d/fulfill", orderID), nil, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		out = model.Order{ID: orderID, Status: model.OrderFulfilled}
	}
	return &out, nil
}
