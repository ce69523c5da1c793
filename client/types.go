package client

// Item is one archival record as served by the API.
type Item struct {
	ID          string   `json:"id"`
	Title       []string `json:"title"`
	Creators    []string `json:"creators,omitempty"`
	Description string   `json:"description,omitempty"`
	Year        *int     `json:"year,omitempty"`
	DateBegin   string   `json:"date_begin,omitempty"`
	DateEnd     string   `json:"date_end,omitempty"`
	Type        string   `json:"type,omitempty"`
	PlaceLabel  string   `json:"place_label,omitempty"`
	Country     string   `json:"country,omitempty"`
	Collection  string   `json:"collection,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Link        string   `json:"link,omitempty"`
}

// Weights blends the similarity families into a single edge score.
type Weights struct {
	Text  float64 `json:"text"`
	Date  float64 `json:"date"`
	Place float64 `json:"place"`
	User  float64 `json:"user"`
}

// NeighborEdge is a precomputed similarity edge with its sub-scores.
type NeighborEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Score  float64 `json:"score"`
	SText  float64 `json:"S_text"`
	SDate  float64 `json:"S_date"`
	SPlace float64 `json:"S_place"`
}

// ScoredNeighbor pairs a neighbor item with its live recomposed score.
type ScoredNeighbor struct {
	Item  Item         `json:"item"`
	Edge  NeighborEdge `json:"edge"`
	Score float64      `json:"score"`
}

// InteractionRecord is the per-session view and bookmark state.
type InteractionRecord struct {
	Views          []string           `json:"views"`
	ViewTimestamps map[string][]int64 `json:"view_timestamps"`
	Bookmarks      []string           `json:"bookmarks"`
}

// SimilarityPair is one derived user-similarity pair.
type SimilarityPair struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	SUser  float64 `json:"s_user"`
}

// GraphNode is a node of the working graph.
type GraphNode struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Degree  int    `json:"degree"`
	Cluster int    `json:"cluster"`
}

// GraphEdge is an edge of the working graph with its recomposed weight.
type GraphEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// BuildGraphRequest tunes a graph build. Zero values fall back to the
// server-side defaults.
type BuildGraphRequest struct {
	NodeBudget     int      `json:"node_budget,omitempty"`
	ScoreThreshold float64  `json:"score_threshold,omitempty"`
	Weights        *Weights `json:"weights,omitempty"`
	Collection     string   `json:"collection,omitempty"`
	Country        string   `json:"country,omitempty"`
	Query          string   `json:"q,omitempty"`
}

// BuildGraphResponse is the result of a graph build.
type BuildGraphResponse struct {
	SessionID string      `json:"session_id"`
	Nodes     []GraphNode `json:"nodes"`
	Edges     []GraphEdge `json:"edges"`
	Clusters  int         `json:"clusters"`
	Weights   Weights     `json:"weights"`
}

// NodeFrame is one node position from the layout simulation.
type NodeFrame struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// ViewState is the session's zoom and pan transform.
type ViewState struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// LayoutStatus reports whether the session's simulation is running.
type LayoutStatus struct {
	SessionID string `json:"session_id"`
	Nodes     int    `json:"nodes,omitempty"`
	Running   bool   `json:"running"`
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	DatasetItems  int     `json:"dataset_items"`
	DatasetEdges  int     `json:"dataset_edges"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadyResponse is the readiness check payload.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// StatsResponse aggregates dataset, session, and graph counters.
type StatsResponse struct {
	Dataset struct {
		Items int `json:"items"`
		Edges int `json:"edges"`
	} `json:"dataset"`
	Sessions struct {
		Active     int `json:"active"`
		Websockets int `json:"websockets"`
	} `json:"sessions"`
	Graphs struct {
		Built    int `json:"built"`
		Clusters int `json:"clusters"`
	} `json:"graphs"`
}
