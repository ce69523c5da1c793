package client

import "context"

// LayoutService steers the session's layout simulation. Frames stream
// over the WebSocket endpoint; these calls control the run.
type LayoutService struct {
	c *Client
}

// viewportRequest carries layout viewport dimensions.
type viewportRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Start runs the layout for the session's most recent graph build.
func (s *LayoutService) Start(ctx context.Context, width, height float64) (*LayoutStatus, error) {
	var resp LayoutStatus
	if err := s.c.post(ctx, "/api/v1/graph/layout/start", viewportRequest{Width: width, Height: height}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reheat restarts a cooled simulation.
func (s *LayoutService) Reheat(ctx context.Context) (*LayoutStatus, error) {
	var resp LayoutStatus
	if err := s.c.post(ctx, "/api/v1/graph/layout/reheat", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop halts the session's simulation.
func (s *LayoutService) Stop(ctx context.Context) error {
	return s.c.post(ctx, "/api/v1/graph/layout/stop", nil, nil)
}

// Resize updates the viewport dimensions of a running layout.
func (s *LayoutService) Resize(ctx context.Context, width, height float64) error {
	return s.c.post(ctx, "/api/v1/graph/layout/resize", viewportRequest{Width: width, Height: height}, nil)
}

// Positions returns the current node positions, for clients that missed
// the frame stream.
func (s *LayoutService) Positions(ctx context.Context) ([]NodeFrame, error) {
	var resp struct {
		Frames []NodeFrame `json:"frames"`
	}
	if err := s.c.get(ctx, "/api/v1/graph/layout/positions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Frames, nil
}

// Zoom multiplies the view scale by factor about the (px, py) screen point.
func (s *LayoutService) Zoom(ctx context.Context, factor, px, py float64) (*ViewState, error) {
	var resp ViewState
	body := map[string]float64{"factor": factor, "px": px, "py": py}
	if err := s.c.post(ctx, "/api/v1/graph/layout/zoom", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pan shifts the view translation by (dx, dy).
func (s *LayoutService) Pan(ctx context.Context, dx, dy float64) (*ViewState, error) {
	var resp ViewState
	body := map[string]float64{"dx": dx, "dy": dy}
	if err := s.c.post(ctx, "/api/v1/graph/layout/pan", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetView restores the identity transform.
func (s *LayoutService) ResetView(ctx context.Context) (*ViewState, error) {
	var resp ViewState
	if err := s.c.post(ctx, "/api/v1/graph/layout/zoom/reset", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
