package api

import (
	stdhttp "net/http"

	intconfig "busbooking/internal/config"
	h "busbooking/internal/http/handlers"
	"busbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func NewRouter(env intconfig.Env, catalog h.Catalog) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"status": "error",
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	handler := h.Handler{Catalog: catalog}

	// paths used by the booking page
	r.POST("/search-buses", handler.SearchBuses)
	r.POST("/submit-booking", handler.SubmitBooking)

	api := r.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/routes", h.Routes)

		buses := api.Group("/buses")
		buses.POST("/search", handler.SearchBuses)

		bookings := api.Group("/bookings")
		bookings.POST("", handler.SubmitBooking)
		bookings.POST("/receipt", handler.BookingReceipt)

		catalogGroup := api.Group("/catalog")
		catalogGroup.POST("/reload", handler.ReloadCatalog)
	}

	h.SetRouter(r)
	return r
}
