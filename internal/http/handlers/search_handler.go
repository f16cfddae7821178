package handlers

import (
	"fmt"
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

type searchRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

type searchResponse struct {
	Status  string               `json:"status"`
	Message string               `json:"message"`
	Buses   []models.RouteRecord `json:"buses"`
}

// SearchBuses lists buses for a from/to/type query. No match is still a 200
// with status "error" and an empty list.
func (h Handler) SearchBuses(c *gin.Context) {
	var req searchRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	res, err := h.bookingService(c).SearchBuses(c.Request.Context(), services.SearchQuery{
		From: req.From,
		To:   req.To,
		Type: req.Type,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if len(res.Buses) == 0 {
		c.JSON(http.StatusOK, searchResponse{
			Status:  "error",
			Message: fmt.Sprintf("No buses available from %s to %s", res.Query.From, res.Query.To),
			Buses:   []models.RouteRecord{},
		})
		return
	}

	c.JSON(http.StatusOK, searchResponse{
		Status:  "success",
		Message: fmt.Sprintf("Found %d bus(es)", len(res.Buses)),
		Buses:   res.Buses,
	})
}
