package graph

import "sync"

// Zoom bounds for the view transform.
const (
	MinZoomScale = 0.25
	MaxZoomScale = 8
)

// ViewTransform is the affine zoom/pan layer over the layout. It is
// independent of the simulation: panning or zooming never perturbs node
// positions.
type ViewTransform struct {
	mu sync.Mutex
	k  float64 // scale
	tx float64
	ty float64
}

// NewViewTransform returns the identity transform.
func NewViewTransform() *ViewTransform {
	return &ViewTransform{k: 1}
}

// TransformState is the serializable transform state.
type TransformState struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// ScaleBy multiplies the scale by factor, clamped to the zoom bounds,
// keeping the given point fixed on screen.
func (t *ViewTransform) ScaleBy(factor, px, py float64) TransformState {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := t.k * factor
	if k < MinZoomScale {
		k = MinZoomScale
	}

	if k > MaxZoomScale {
		k = MaxZoomScale
	}

	// Keep (px, py) invariant: solve for the new translation.
	ratio := k / t.k
	t.tx = px - (px-t.tx)*ratio
	t.ty = py - (py-t.ty)*ratio
	t.k = k

	return t.stateLocked()
}

// TranslateBy shifts the view by (dx, dy) in screen coordinates.
func (t *ViewTransform) TranslateBy(dx, dy float64) TransformState {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tx += dx
	t.ty += dy

	return t.stateLocked()
}

// Reset restores the identity transform.
func (t *ViewTransform) Reset() TransformState {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.k, t.tx, t.ty = 1, 0, 0

	return t.stateLocked()
}

// State returns the current transform.
func (t *ViewTransform) State() TransformState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stateLocked()
}

func (t *ViewTransform) stateLocked() TransformState {
	return TransformState{Scale: t.k, TranslateX: t.tx, TranslateY: t.ty}
}
