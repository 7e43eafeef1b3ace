package httpserver

import (
	"context"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"commerce-crm-sync/internal/logger"
	"commerce-crm-sync/internal/service/ordersync"
)

// OrderSyncer runs one order sync.
type OrderSyncer interface {
	Sync(ctx context.Context, orderID string) (*ordersync.Result, error)
}

// Deps carries the collaborators and options the router needs.
type Deps struct {
	Syncer           OrderSyncer
	CORSAllowOrigins []string
	TracingEnabled   bool
	ServiceName      string
}

// buildRouter wires routes for the API and the form.
func buildRouter(log *zap.Logger, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(logger.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))
	if deps.TracingEnabled {
		router.Use(otelgin.Middleware(deps.ServiceName))
	}
	router.Use(cors.New(corsConfig(deps.CORSAllowOrigins)))

	if err := registerStatic(router); err != nil {
		return nil, err
	}
	router.GET("/healthz", healthHandler)
	router.POST("/sync-order", syncOrderHandler(deps.Syncer))

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	cfg.ExposeHeaders = []string{"X-Request-ID"}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
