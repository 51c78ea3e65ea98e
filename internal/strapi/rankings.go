package strapi

import (
	"context"
	"fmt"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
)

// Rankings fetches the league standings. A non-zero categoryID restricts the
// standings to one skill bracket.
func (c *Client) Rankings(ctx context.Context, credential string, categoryID int) ([]model.RankingEntry, error) {
	path := "/api/rankings"
	if categoryID != 0 {
		path = fmt.Sprintf("%s?category=%d", path, categoryID)
	}

	var entries []model.RankingEntry
	if err := c.get(ctx, path, credential, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
