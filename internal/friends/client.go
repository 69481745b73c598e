package friends

import (
	"context"
	"net/url"

	"moda-marketplace/client/internal/api"
)

// Client wraps the friends and user discovery endpoints.
type Client struct {
	api *api.Client
}

// NewClient returns a friends client on top of the shared API client.
func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

// SendRequest sends a friend request to the user identified by username or
// email. The server rejects self-requests and duplicates.
func (c *Client) SendRequest(ctx context.Context, recipientIdentifier string) error {
	req := struct {
		RecipientIdentifier string `json:"recipient_identifier"`
	}{RecipientIdentifier: recipientIdentifier}
	return c.api.Post(ctx, "/api/v1/friends/request", req, nil)
}

// SentRequests lists friend requests the current user has sent.
func (c *Client) SentRequests(ctx context.Context) ([]SentRequest, error) {
	var out []SentRequest
	if err := c.api.Get(ctx, "/api/v1/friends/requests/sent", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReceivedRequests lists pending friend requests addressed to the current user.
func (c *Client) ReceivedRequests(ctx context.Context) ([]ReceivedRequest, error) {
	var out []ReceivedRequest
	if err := c.api.Get(ctx, "/api/v1/friends/requests/received", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AcceptRequest accepts a received friend request.
func (c *Client) AcceptRequest(ctx context.Context, requestID string) error {
	return c.api.Post(ctx, "/api/v1/friends/requests/"+url.PathEscape(requestID)+"/accept", nil, nil)
}

// RejectRequest rejects a received friend request.
func (c *Client) RejectRequest(ctx context.Context, requestID string) error {
	return c.api.Post(ctx, "/api/v1/friends/requests/"+url.PathEscape(requestID)+"/reject", nil, nil)
}

// CancelRequest withdraws a friend request the current user sent.
func (c *Client) CancelRequest(ctx context.Context, requestID string) error {
	return c.api.Delete(ctx, "/api/v1/friends/requests/"+url.PathEscape(requestID)+"/cancel", nil)
}

// Friends lists the current user's friends.
func (c *Client) Friends(ctx context.Context) ([]Friend, error) {
	var out []Friend
	if err := c.api.Get(ctx, "/api/v1/friends", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Unfriend removes an existing friendship.
func (c *Client) Unfriend(ctx context.Context, friendID string) error {
	return c.api.Delete(ctx, "/api/v1/friends/"+url.PathEscape(friendID), nil)
}

// SearchUsers searches users by username or email fragment. The server
// requires at least two characters and answers 400 below that.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	var out []SearchResult
	if err := c.api.Get(ctx, "/api/v1/users/search?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile fetches another user's public profile.
func (c *Client) Profile(ctx context.Context, userID string) (*PublicProfile, error) {
	var out PublicProfile
	if err := c.api.Get(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
