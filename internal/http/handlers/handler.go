package handlers

import (
	"context"
	"time"

	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// Catalog is what the handlers need from the route catalog.
type Catalog interface {
	services.RouteCatalog
	Reload(ctx context.Context) (int, error)
	Len() int
	LoadedAt() time.Time
}

type Handler struct {
	Catalog Catalog
}

func (h Handler) bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Catalog:   h.Catalog,
		RequestID: middleware.GetRequestID(c),
	}
}
