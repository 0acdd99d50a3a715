package instagram

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/SynchronoMedia/english-skills-101/internal/transfer"
)

// UserInfoByUsername fetches the public profile for a username.
func (c *Client) UserInfoByUsername(ctx context.Context, username string) (*transfer.InstagramUser, error) {
	var resp transfer.InstagramUserResponse
	err := c.get(ctx, "users/"+url.PathEscape(username)+"/usernameinfo/", nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UserIDFromUsername resolves a username to its numeric account id.
func (c *Client) UserIDFromUsername(ctx context.Context, username string) (int64, error) {
	info, err := c.UserInfoByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	return info.Pk, nil
}

// UserMedias returns up to amount of the account's most recent posts,
// newest first.
func (c *Client) UserMedias(ctx context.Context, userID int64, amount int) ([]transfer.InstagramMedia, error) {
	query := url.Values{}
	query.Set("count", strconv.Itoa(amount))

	var resp transfer.InstagramFeedResponse
	err := c.get(ctx, fmt.Sprintf("feed/user/%d/", userID), query, &resp)
	if err != nil {
		return nil, err
	}

	items := resp.Items
	if amount > 0 && len(items) > amount {
		items = items[:amount]
	}
	return items, nil
}

// MediaLikers returns the accounts that liked the media. The API caps the
// list; no paging is done.
func (c *Client) MediaLikers(ctx context.Context, mediaID string) ([]transfer.InstagramUserShort, error) {
	var resp transfer.InstagramLikersResponse
	err := c.get(ctx, "media/"+url.PathEscape(mediaID)+"/likers/", nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// MediaLike registers a like on the media. Liking something already liked
// is a server-side no-op.
func (c *Client) MediaLike(ctx context.Context, mediaID string) error {
	params := map[string]any{
		"media_id": mediaID,
		"_uid":     strconv.FormatInt(c.userID, 10),
		"_uuid":    c.device.GUID,
	}
	return c.postSigned(ctx, "media/"+url.PathEscape(mediaID)+"/like/", params, nil)
}
