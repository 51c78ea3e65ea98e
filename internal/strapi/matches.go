package strapi

import (
	"context"
	"fmt"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
)

// Matches lists the matches visible to the authenticated user
func (c *Client) Matches(ctx context.Context, credential string) ([]model.Match, error) {
	var matches []model.Match
	if err := c.get(ctx, "/api/matches", credential, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// Match fetches a single match by id
func (c *Client) Match(ctx context.Context, credential string, id model.MatchID) (*model.Match, error) {
	var match model.Match
	if err := c.get(ctx, fmt.Sprintf("/api/matches/%d", id), credential, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// resultRequest is the result-recording payload
type resultRequest struct {
	Result model.MatchResult `json:"result"`
}

// SubmitResult records the outcome of a played match. The backend owns the
// resulting status transition; the updated match is returned as it now
// stands server-side.
func (c *Client) SubmitResult(ctx context.Context, credential string, id model.MatchID, result model.MatchResult) (*model.Match, error) {
	var match model.Match
	path := fmt.Sprintf("/api/matches/%d", id)
	if err := c.put(ctx, path, credential, resultRequest{Result: result}, &match); err != nil {
		return nil, err
	}
	return &match, nil
}
