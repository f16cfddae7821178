package handlers

import (
	"fmt"
	"net/http"
	"time"

	"busbooking/internal/http/middleware"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ReloadCatalog re-reads the route dataset. On failure the previous data
// keeps being served. A bad dataset is a server-side problem, so every
// failure is a 500 here.
func (h Handler) ReloadCatalog(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	n, err := h.Catalog.Reload(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("request_id", reqID).Msg("catalog reload failed")
		respondError(c, http.StatusInternalServerError, "reload_failed", "Server error: "+err.Error(), gin.H{"routes": h.Catalog.Len()})
		return
	}
	utils.LogEvent(reqID, "catalog", "reload", fmt.Sprintf("routes=%d", n))
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "catalog reloaded",
		"routes":    n,
		"loaded_at": h.Catalog.LoadedAt().Format(time.RFC3339),
	})
}
