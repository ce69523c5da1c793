package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/config"
)

// DatasetHandler serves the administrative dataset reload endpoint.
type DatasetHandler struct {
	loader DatasetLoader
	data   DatasetReader
	cfg    *config.Config
	log    *logrus.Logger
}

// NewDatasetHandler creates a DatasetHandler.
func NewDatasetHandler(loader DatasetLoader, data DatasetReader, cfg *config.Config, log *logrus.Logger) *DatasetHandler {
	return &DatasetHandler{loader: loader, data: data, cfg: cfg, log: log}
}

// Load handles POST /api/v1/dataset/load. It reloads the dataset from the
// configured source. Running sessions keep their graphs until rebuilt.
func (h *DatasetHandler) Load(c *gin.Context) {
	var err error

	switch h.cfg.DatasetSource {
	case config.SourcePostgres:
		err = h.loader.LoadFromCatalog(c.Request.Context())
	default:
		err = h.loader.LoadFromFiles(h.cfg.DatasetItems, h.cfg.DatasetNeighbors)
	}

	if err != nil {
		h.log.WithError(err).Error("reloading dataset")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "dataset reload failed")

		return
	}

	items, edges := h.data.Counts()

	c.JSON(http.StatusOK, gin.H{
		"source": h.cfg.DatasetSource,
		"items":  items,
		"edges":  edges,
	})
}
