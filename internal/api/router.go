package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"fleet-scheduler-backend/config"
	"fleet-scheduler-backend/internal/mw"
	"fleet-scheduler-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, webpushOptions)

	// Initialize middleware
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	// Read caching for the hot endpoints; any successful write flushes
	// the whole cache so the grid never serves stale numbers.
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter, mw.FlushOnWrite(cacheStore))
	{
		api.GET("/device_types", caching, handler.ListDeviceTypes)
		api.POST("/device_types", handler.CreateDeviceType)
		api.PATCH("/device_types/:id", handler.UpdateDeviceType)
		api.DELETE("/device_types/:id", handler.DeleteDeviceType)

		api.GET("/projects", handler.ListProjects)
		api.POST("/projects", handler.CreateProject)
		api.GET("/projects/:id", handler.GetProject)
		api.PATCH("/projects/:id", handler.UpdateProject)
		api.DELETE("/projects/:id", handler.DeleteProject)

		api.GET("/deployments", handler.ListDeployments)
		api.GET("/deployments/active", handler.ListActiveDeployments)
		api.POST("/deployments", handler.CreateDeployment)
		api.GET("/deployments/:id", handler.GetDeployment)
		api.PATCH("/deployments/:id", handler.UpdateDeployment)
		api.DELETE("/deployments/:id", handler.DeleteDeployment)

		api.GET("/deployments/:id/allocations", handler.ListAllocations)
		api.POST("/deployments/:id/allocations/bulk_set", handler.BulkSetAllocations)
		api.POST("/deployments/:id/allocations/regenerate", handler.RegenerateAllocations)
		api.PATCH("/allocations/:id", handler.SetAllocation)

		api.GET("/usage", caching, handler.GetUsage)
		api.GET("/dashboard", caching, handler.GetDashboard)
		api.GET("/forecast", caching, handler.GetForecast)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
