package strapi

import (
	"context"
	"net/url"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
)

// mePopulate lists the relations fetched with the full profile
const mePopulate = "category,playerStats,teams,profilePicture,plan"

// Me fetches the authenticated user's full profile, with nested relations
// populated
func (c *Client) Me(ctx context.Context, credential string) (*model.UserProfile, error) {
	var profile model.UserProfile
	path := "/api/users/me?populate=" + url.QueryEscape(mePopulate)
	if err := c.get(ctx, path, credential, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
