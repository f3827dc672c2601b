package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/SscSPs/rate_tracker/internal/dto"
	"github.com/SscSPs/rate_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxDocumentBytes caps uploaded rate documents. The full BSI history is a few MB.
const maxDocumentBytes = 64 << 20

// ingestionHandler handles HTTP requests that load rate documents.
type ingestionHandler struct {
	ingestionService portssvc.IngestionSvcFacade
}

func newIngestionHandler(is portssvc.IngestionSvcFacade) *ingestionHandler {
	return &ingestionHandler{ingestionService: is}
}

// RegisterIngestionRoutes registers routes related to ingestion.
func RegisterIngestionRoutes(rg *gin.RouterGroup, ingestionService portssvc.IngestionSvcFacade) {
	h := newIngestionHandler(ingestionService)

	ingestions := rg.Group("/ingestions")
	{
		ingestions.POST("", h.ingestDocument)
		ingestions.POST("/source", h.ingestFromSource)
	}
}

// ingestDocument godoc
// @Summary Ingest an uploaded rate document
// @Description Parses the XML rate document in the request body and upserts its rates in one pass. Malformed entries are skipped and reported.
// @Tags ingestions
// @Accept  xml
// @Produce  json
// @Success 200 {object} dto.IngestionResponse
// @Failure 502 {object} map[string]string "Document unreadable, store unchanged"
// @Failure 503 {object} map[string]string "Rate store unavailable, pass rolled back"
// @Router /ingestions [post]
func (h *ingestionHandler) ingestDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received rate document upload", slog.Int64("content_length", c.Request.ContentLength))

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentBytes)
	result, err := h.ingestionService.Ingest(c.Request.Context(), body)
	if err != nil {
		respondWithError(c, logger, err, "Failed to ingest rate document")
		return
	}

	c.JSON(http.StatusOK, dto.ToIngestionResponse(result))
}

// ingestFromSource godoc
// @Summary Ingest from the configured source
// @Description Downloads the rate document from the configured source URL and ingests it.
// @Tags ingestions
// @Produce  json
// @Success 200 {object} dto.IngestionResponse
// @Failure 502 {object} map[string]string "Source unavailable, store unchanged"
// @Failure 503 {object} map[string]string "Rate store unavailable, pass rolled back"
// @Router /ingestions/source [post]
func (h *ingestionHandler) ingestFromSource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to ingest from source")

	result, err := h.ingestionService.IngestFromSource(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to ingest from source")
		return
	}

	c.JSON(http.StatusOK, dto.ToIngestionResponse(result))
}
