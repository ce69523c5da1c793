package client

import (
	"context"
	"net/url"
	"strconv"
)

// ItemService reads the archival dataset.
type ItemService struct {
	c *Client
}

// ItemListOptions filters and paginates the item list.
type ItemListOptions struct {
	Collection string
	Country    string
	Query      string
	Limit      int
	Offset     int
}

// itemListResponse wraps the paginated item list response.
type itemListResponse struct {
	Items   []Item `json:"items"`
	Total   int    `json:"total"`
	HasMore bool   `json:"has_more"`
}

// List returns items with optional filtering and pagination.
func (s *ItemService) List(ctx context.Context, opts *ItemListOptions) ([]Item, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Collection != "" {
			params.Set("collection", opts.Collection)
		}
		if opts.Country != "" {
			params.Set("country", opts.Country)
		}
		if opts.Query != "" {
			params.Set("q", opts.Query)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp itemListResponse
	if err := s.c.get(ctx, "/api/v1/items", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Items, resp.HasMore, nil
}

// Get returns a single item by ID.
func (s *ItemService) Get(ctx context.Context, id string) (*Item, error) {
	var item Item
	if err := s.c.get(ctx, "/api/v1/items/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// NeighborOptions tunes a neighbor query. A nil Weights uses the
// server defaults; the session's interaction record always contributes
// the user sub-score.
type NeighborOptions struct {
	Weights *Weights
	Limit   int
}

// neighborsResponse wraps the neighbor list response.
type neighborsResponse struct {
	ID        string           `json:"id"`
	Weights   Weights          `json:"weights"`
	Neighbors []ScoredNeighbor `json:"neighbors"`
}

// Neighbors returns the most similar items to id, scored under the
// given weights.
func (s *ItemService) Neighbors(ctx context.Context, id string, opts *NeighborOptions) ([]ScoredNeighbor, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Weights != nil {
			params.Set("wtext", strconv.FormatFloat(opts.Weights.Text, 'f', -1, 64))
			params.Set("wdate", strconv.FormatFloat(opts.Weights.Date, 'f', -1, 64))
			params.Set("wplace", strconv.FormatFloat(opts.Weights.Place, 'f', -1, 64))
			params.Set("wuser", strconv.FormatFloat(opts.Weights.User, 'f', -1, 64))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
	}
	var resp neighborsResponse
	if err := s.c.get(ctx, "/api/v1/items/"+url.PathEscape(id)+"/neighbors", params, &resp); err != nil {
		return nil, err
	}
	return resp.Neighbors, nil
}
