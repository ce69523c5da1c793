package client

import "context"

// GraphService builds the session's working graph.
type GraphService struct {
	c *Client
}

// Build constructs a working graph for the session. A nil request uses
// the server-side defaults for budget, threshold, and weights.
func (s *GraphService) Build(ctx context.Context, req *BuildGraphRequest) (*BuildGraphResponse, error) {
	var body any
	if req != nil {
		body = req
	}
	var resp BuildGraphResponse
	if err := s.c.post(ctx, "/api/v1/graph/build", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
