package api

import (
	"context"
	"net/http"

	"github.com/louisbranch/assetdeck/internal/assets"
)

// Summary fetches the dashboard aggregate. The counts are recomputed
// server-side on each call.
func (c *Client) Summary(ctx context.Context) (assets.Summary, error) {
	var out assets.Summary
	if err := c.do(ctx, http.MethodGet, summaryPath, nil, "", &out); err != nil {
		return assets.Summary{}, err
	}
	return out, nil
}
