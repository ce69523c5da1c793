package client

import "context"

// DatasetService administers the server-side dataset.
type DatasetService struct {
	c *Client
}

// ReloadResponse reports the dataset counts after a reload.
type ReloadResponse struct {
	Source string `json:"source"`
	Items  int    `json:"items"`
	Edges  int    `json:"edges"`
}

// Reload re-reads the dataset from the server's configured source.
func (s *DatasetService) Reload(ctx context.Context) (*ReloadResponse, error) {
	var resp ReloadResponse
	if err := s.c.post(ctx, "/api/v1/dataset/load", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
