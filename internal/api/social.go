package api

import (
	"context"
	"fmt"
)

// LikeWork marks a work as liked by the caller.
func (c *Client) LikeWork(ctx context.Context, id int64) (*ToggleResult, error) {
	var result ToggleResult
	if err := c.post(ctx, fmt.Sprintf("/api/social/works/%d/like", id), map[string]any{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UnlikeWork removes the caller's like from a work.
func (c *Client) UnlikeWork(ctx context.Context, id int64) (*ToggleResult, error) {
	var result ToggleResult
	if err := c.delete(ctx, fmt.Sprintf("/api/social/works/%d/like", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FollowUser follows another user.
func (c *Client) FollowUser(ctx context.Context, id int64) (*ToggleResult, error) {
	var result ToggleResult
	if err := c.post(ctx, fmt.Sprintf("/api/social/users/%d/follow", id), map[string]any{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UnfollowUser stops following another user.
func (c *Client) UnfollowUser(ctx context.Context, id int64) (*ToggleResult, error) {
	var result ToggleResult
	if err := c.delete(ctx, fmt.Sprintf("/api/social/users/%d/follow", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchPublicUser retrieves a user's public profile.
func (c *Client) FetchPublicUser(ctx context.Context, id int64) (*PublicUser, error) {
	var user PublicUser
	if err := c.get(ctx, fmt.Sprintf("/api/social/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchFollowers lists the users following the given user.
func (c *Client) FetchFollowers(ctx context.Context, id int64) ([]PublicUser, error) {
	var users []PublicUser
	if err := c.get(ctx, fmt.Sprintf("/api/social/users/%d/followers", id), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchFollowing lists the users the given user follows.
func (c *Client) FetchFollowing(ctx context.Context, id int64) ([]PublicUser, error) {
	var users []PublicUser
	if err := c.get(ctx, fmt.Sprintf("/api/social/users/%d/following", id), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchLikedWorks lists the works the caller has liked.
func (c *Client) FetchLikedWorks(ctx context.Context) ([]Work, error) {
	var works []Work
	if err := c.get(ctx, "/api/social/likes/works", nil, &works); err != nil {
		return nil, err
	}
	return works, nil
}
