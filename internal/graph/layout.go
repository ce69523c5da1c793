package graph

import (
	"math"
	"math/rand"
	"sync"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// LayoutConfig holds the force-simulation parameters. Zero values are
// replaced by the defaults below.
type LayoutConfig struct {
	Width  float64
	Height float64

	AlphaMin      float64 // simulation idles below this temperature
	AlphaDecay    float64 // cooling rate per tick
	VelocityDecay float64 // friction applied to velocities

	LinkDistanceMin  float64 // rest distance at score 1
	LinkDistanceSpan float64 // extra rest distance at score 0
	ChargeStrength   float64 // repulsion magnitude
	ChargeDistanceMax float64 // interaction cutoff, bounds cost

	CollideRadiusBase float64 // radius per sqrt(degree)
	CollideRadiusMin  float64
	CollideRadiusMax  float64

	ClusterStrength float64 // pull toward cluster anchor, per tick at alpha 1
	ClusterRing     float64 // anchor ring radius as fraction of the viewport
	CenterStrength  float64 // drift of the centroid toward the viewport center

	DragAlphaTarget float64 // temperature held while a drag is active
}

// DefaultLayoutConfig returns the simulation defaults for a viewport.
func DefaultLayoutConfig(width, height float64) LayoutConfig {
	return LayoutConfig{
		Width:             width,
		Height:            height,
		AlphaMin:          0.001,
		AlphaDecay:        0.0228, // 1 - 0.001^(1/300): ~300 ticks to idle
		VelocityDecay:     0.6,
		LinkDistanceMin:   30,
		LinkDistanceSpan:  90,
		ChargeStrength:    80,
		ChargeDistanceMax: 320,
		CollideRadiusBase: 4,
		CollideRadiusMin:  6,
		CollideRadiusMax:  22,
		ClusterStrength:   0.08,
		ClusterRing:       0.55,
		DragAlphaTarget:   0.3,
		CenterStrength:    0.05,
	}
}

// Position is one node's coordinates in layout space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame is a layout snapshot for one node, streamed to renderers.
type Frame struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Engine is the force simulation over one working graph. Node metadata
// is immutable; the physics state lives in parallel arrays indexed like
// the node slice, so a data rebuild never leaks into position state.
//
// Engine methods are safe for concurrent use, but only one goroutine
// (the layout runner) should drive Tick.
type Engine struct {
	mu  sync.Mutex
	cfg LayoutConfig

	nodes []models.GraphNode
	index map[string]int
	edges []edgeSim

	x, y   []float64
	vx, vy []float64
	pinned []bool
	px, py []float64
	radius []float64

	alpha       float64
	alphaTarget float64
}

type edgeSim struct {
	source, target int
	score          float64
}

// NewEngine builds a simulation for the given graph. Nodes whose id
// appears in prev continue from their last known position; new nodes
// start near the viewport center with random jitter.
func NewEngine(result models.BuildResult, cfg LayoutConfig, prev map[string]Position, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // layout jitter, not crypto.
	}

	n := len(result.Nodes)

	e := &Engine{
		cfg:    cfg,
		nodes:  result.Nodes,
		index:  make(map[string]int, n),
		x:      make([]float64, n),
		y:      make([]float64, n),
		vx:     make([]float64, n),
		vy:     make([]float64, n),
		pinned: make([]bool, n),
		px:     make([]float64, n),
		py:     make([]float64, n),
		radius: make([]float64, n),
		alpha:  1,
	}

	cx, cy := cfg.Width/2, cfg.Height/2

	for i := range result.Nodes {
		id := result.Nodes[i].ID
		e.index[id] = i

		if p, ok := prev[id]; ok {
			e.x[i], e.y[i] = p.X, p.Y
		} else {
			e.x[i] = cx + (rng.Float64()-0.5)*40
			e.y[i] = cy + (rng.Float64()-0.5)*40
		}

		e.radius[i] = nodeRadius(&cfg, result.Nodes[i].Degree)
	}

	e.edges = make([]edgeSim, 0, len(result.Edges))

	for i := range result.Edges {
		si, sok := e.index[result.Edges[i].Source]
		ti, tok := e.index[result.Edges[i].Target]
		if !sok || !tok {
			continue
		}

		score := result.Edges[i].Weight
		if score <= 0 {
			score = result.Edges[i].Score
		}

		e.edges = append(e.edges, edgeSim{source: si, target: ti, score: clamp01(score)})
	}

	return e
}

// nodeRadius grows with sqrt(degree), clamped to the configured range.
func nodeRadius(cfg *LayoutConfig, degree int) float64 {
	r := cfg.CollideRadiusBase * math.Sqrt(float64(degree))
	if r < cfg.CollideRadiusMin {
		return cfg.CollideRadiusMin
	}

	if r > cfg.CollideRadiusMax {
		return cfg.CollideRadiusMax
	}

	return r
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Tick advances the simulation one step and reports whether it is still
// hot. Once the temperature decays below AlphaMin (and no drag holds a
// higher target) the engine is idle and Tick becomes a no-op until a
// reheat.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.idleLocked() {
		return false
	}

	e.alpha += (e.alphaTarget - e.alpha) * e.cfg.AlphaDecay

	e.applyLinks()
	e.applyCharge()
	e.applyCollision()
	e.applyCluster()

	for i := range e.x {
		if e.pinned[i] {
			e.x[i], e.y[i] = e.px[i], e.py[i]
			e.vx[i], e.vy[i] = 0, 0

			continue
		}

		e.vx[i] *= e.cfg.VelocityDecay
		e.vy[i] *= e.cfg.VelocityDecay
		e.x[i] += e.vx[i]
		e.y[i] += e.vy[i]
	}

	e.applyCenter()

	return !e.idleLocked()
}

func (e *Engine) idleLocked() bool {
	return e.alpha < e.cfg.AlphaMin && e.alphaTarget < e.cfg.AlphaMin
}

// Idle reports whether the simulation has cooled to rest.
func (e *Engine) Idle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.idleLocked()
}

// applyLinks pulls connected nodes toward a rest distance that shrinks
// as the edge score grows; stronger similarity, shorter distance. The
// pull strength is proportional to the score.
func (e *Engine) applyLinks() {
	for _, ed := range e.edges {
		dx := e.x[ed.target] - e.x[ed.source]
		dy := e.y[ed.target] - e.y[ed.source]

		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dx, dist = 1e-6, 1e-6
		}

		rest := e.cfg.LinkDistanceMin + e.cfg.LinkDistanceSpan*(1-ed.score)
		k := (dist - rest) / dist * e.alpha * ed.score

		fx, fy := dx*k*0.5, dy*k*0.5

		e.vx[ed.target] -= fx
		e.vy[ed.target] -= fy
		e.vx[ed.source] += fx
		e.vy[ed.source] += fy
	}
}

// applyCharge applies all-pairs repulsion with a capped interaction
// distance so the cost stays bounded per pair.
func (e *Engine) applyCharge() {
	maxSq := e.cfg.ChargeDistanceMax * e.cfg.ChargeDistanceMax

	for i := 0; i < len(e.x); i++ {
		for j := i + 1; j < len(e.x); j++ {
			dx := e.x[j] - e.x[i]
			dy := e.y[j] - e.y[i]

			distSq := dx*dx + dy*dy
			if distSq > maxSq {
				continue
			}

			if distSq < 1 {
				distSq = 1
			}

			f := e.cfg.ChargeStrength * e.alpha / distSq

			e.vx[i] -= dx * f
			e.vy[i] -= dy * f
			e.vx[j] += dx * f
			e.vy[j] += dy * f
		}
	}
}

// applyCollision pushes overlapping nodes apart along their separation
// axis, splitting the correction between both nodes.
func (e *Engine) applyCollision() {
	for i := 0; i < len(e.x); i++ {
		for j := i + 1; j < len(e.x); j++ {
			minDist := e.radius[i] + e.radius[j]

			dx := e.x[j] - e.x[i]
			dy := e.y[j] - e.y[i]

			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}

			if dist == 0 {
				dx, dist = 1e-6, 1e-6
			}

			overlap := (minDist - dist) / dist * 0.5

			e.vx[i] -= dx * overlap
			e.vy[i] -= dy * overlap
			e.vx[j] += dx * overlap
			e.vy[j] += dy * overlap
		}
	}
}

// applyCluster pulls each node toward its cluster anchor. Anchors sit on
// a ring around the viewport center at angle cluster/10 revolutions.
func (e *Engine) applyCluster() {
	cx, cy := e.cfg.Width/2, e.cfg.Height/2
	ring := e.cfg.ClusterRing * math.Min(e.cfg.Width, e.cfg.Height) / 2

	for i := range e.nodes {
		angle := 2 * math.Pi * float64(e.nodes[i].Cluster) / 10

		ax := cx + ring*math.Cos(angle)
		ay := cy + ring*math.Sin(angle)

		e.vx[i] += (ax - e.x[i]) * e.cfg.ClusterStrength * e.alpha
		e.vy[i] += (ay - e.y[i]) * e.cfg.ClusterStrength * e.alpha
	}
}

// applyCenter drifts the layout centroid toward the viewport center.
func (e *Engine) applyCenter() {
	if len(e.x) == 0 {
		return
	}

	var sx, sy float64
	for i := range e.x {
		sx += e.x[i]
		sy += e.y[i]
	}

	dx := (e.cfg.Width/2 - sx/float64(len(e.x))) * e.cfg.CenterStrength
	dy := (e.cfg.Height/2 - sy/float64(len(e.y))) * e.cfg.CenterStrength

	for i := range e.x {
		if e.pinned[i] {
			continue
		}

		e.x[i] += dx
		e.y[i] += dy
	}
}

// Reheat raises the temperature back to full so the simulation resumes.
func (e *Engine) Reheat() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.alpha = 1
}

// Resize updates the viewport dimensions and reheats so the layout
// adapts instead of keeping stale geometry.
func (e *Engine) Resize(width, height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg.Width = width
	e.cfg.Height = height
	e.alpha = 1
}

// StartDrag pins the node at its current position and holds the
// simulation warm so the rest of the graph reacts.
func (e *Engine) StartDrag(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[id]
	if !ok {
		return false
	}

	e.pinned[i] = true
	e.px[i], e.py[i] = e.x[i], e.y[i]
	e.alphaTarget = e.cfg.DragAlphaTarget

	if e.alpha < e.cfg.DragAlphaTarget {
		e.alpha = e.cfg.DragAlphaTarget
	}

	return true
}

// MoveDrag moves a pinned node to the pointer position.
func (e *Engine) MoveDrag(id string, x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[id]
	if !ok || !e.pinned[i] {
		return
	}

	e.px[i], e.py[i] = x, y
	e.x[i], e.y[i] = x, y
}

// EndDrag releases the pin so the node rejoins free simulation, and
// lets the temperature decay back to rest.
func (e *Engine) EndDrag(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i, ok := e.index[id]; ok {
		e.pinned[i] = false
	}

	e.alphaTarget = 0
}

// Positions returns the current position of every node keyed by id,
// the continuity snapshot fed into the next rebuild's engine.
func (e *Engine) Positions() map[string]Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]Position, len(e.x))
	for id, i := range e.index {
		out[id] = Position{X: e.x[i], Y: e.y[i]}
	}

	return out
}

// Snapshot returns the current frame for every node in node order.
func (e *Engine) Snapshot() []Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	frames := make([]Frame, len(e.nodes))
	for i := range e.nodes {
		frames[i] = Frame{ID: e.nodes[i].ID, X: e.x[i], Y: e.y[i]}
	}

	return frames
}

// Alpha returns the current simulation temperature.
func (e *Engine) Alpha() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.alpha
}
