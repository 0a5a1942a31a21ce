package catalog

import (
	"context"

	"go.uber.org/zap"

	"inmomax/internal/filters"
	"inmomax/internal/mockdata"
	"inmomax/internal/model"
)

// FallbackClient masks fetch failures with the static mock dataset, so the
// listing and detail pages always have something to render.
type FallbackClient struct {
	client *Client
	logger *zap.Logger
}

var _ filters.Fetcher = (*FallbackClient)(nil)

// NewFallbackClient wraps client.
func NewFallbackClient(client *Client, logger *zap.Logger) *FallbackClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackClient{client: client, logger: logger}
}

// List never fails: on any fetch error it returns every mock record as a
// single page.
func (c *FallbackClient) List(ctx context.Context, f filters.FilterSet, page, limit int) (*model.PropertyListResponse, error) {
	res, err := c.client.List(ctx, f, page, limit)
	if err == nil {
		return res, nil
	}
	c.logger.Warn("property list unavailable, using mock data",
		zap.String("query", filters.QueryString(f)),
		zap.Int("page", page),
		zap.Error(err),
	)
	return mockPage(), nil
}

// Featured never fails: on error it returns the featured mock records.
func (c *FallbackClient) Featured(ctx context.Context, limit int) ([]model.Property, error) {
	props, err := c.client.Featured(ctx, limit)
	if err == nil {
		return props, nil
	}
	c.logger.Warn("featured properties unavailable, using mock data", zap.Error(err))

	var out []model.Property
	for _, p := range mockdata.Properties() {
		if p.Featured {
			out = append(out, p)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Get never fails: on error it returns the mock record with the same id, or
// the first mock record.
func (c *FallbackClient) Get(ctx context.Context, id int64) (*model.Property, error) {
	p, err := c.client.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	c.logger.Warn("property detail unavailable, using mock data", zap.Int64("id", id), zap.Error(err))

	props := mockdata.Properties()
	for i := range props {
		if props[i].ID == id {
			return &props[i], nil
		}
	}
	return &props[0], nil
}

func mockPage() *model.PropertyListResponse {
	props := mockdata.Properties()
	return &model.PropertyListResponse{
		Properties: props,
		Total:      len(props),
		Page:       1,
		Limit:      len(props),
		TotalPages: 1,
	}
}
