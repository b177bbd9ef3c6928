package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"poultryfarm/internal/realtime"
	"poultryfarm/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(registryH *handlers.RegistryHandler, orderH *handlers.OrderHandler, reportH *handlers.ReportHandler, hub *realtime.Hub, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api/v1")

	farms := api.Group("/farms")
	farms.POST("", registryH.CreateFarm)
	farms.GET("", registryH.ListFarms)
	farms.GET("/:id", registryH.GetFarm)
	farms.PATCH("/:id", registryH.UpdateFarm)
	farms.DELETE("/:id", registryH.DeleteFarm)
	farms.GET("/:id/reports/financial", reportH.Financial)
	farms.GET("/:id/reports/health", reportH.Health)
	farms.POST("/:id/analytics", reportH.GenerateAnalytics)
	farms.GET("/:id/analytics", reportH.ListAnalytics)
	farms.GET("/:id/inventory/low-stock", reportH.LowStockInventory)
	farms.GET("/:id/health-records/follow-ups", reportH.UpcomingFollowUps)

	birds := api.Group("/birds")
	birds.POST("", registryH.CreateBird)
	birds.GET("", registryH.ListBirds)
	birds.GET("/:id", registryH.GetBird)
	birds.PATCH("/:id", registryH.UpdateBird)
	birds.DELETE("/:id", registryH.DeleteBird)

	inventory := api.Group("/inventory")
	inventory.POST("", registryH.CreateInventoryItem)
	inventory.GET("", registryH.ListInventory)
	inventory.GET("/low-stock-feeds", reportH.LowStockFeeds)
	inventory.GET("/:id", registryH.GetInventoryItem)
	inventory.PATCH("/:id", registryH.UpdateInventoryItem)
	inventory.DELETE("/:id", registryH.DeleteInventoryItem)

	products := api.Group("/products")
	products.POST("", registryH.CreateProduct)
	products.GET("", registryH.ListProducts)
	products.GET("/:id", registryH.GetProduct)
	products.PATCH("/:id", registryH.UpdateProduct)
	products.DELETE("/:id", registryH.DeleteProduct)

	transactions := api.Group("/transactions")
	transactions.POST("", registryH.CreateTransaction)
	transactions.GET("", registryH.ListTransactions)
	transactions.GET("/:id", registryH.GetTransaction)
	transactions.PATCH("/:id", registryH.UpdateTransaction)
	transactions.DELETE("/:id", registryH.DeleteTransaction)

	health := api.Group("/health-records")
	health.POST("", registryH.CreateHealthRecord)
	health.GET("", registryH.ListHealthRecords)
	health.GET("/:id", registryH.GetHealthRecord)
	health.PATCH("/:id", registryH.UpdateHealthRecord)
	health.DELETE("/:id", registryH.DeleteHealthRecord)

	ordersGroup := api.Group("/orders")
	ordersGroup.POST("", orderH.Create)
	ordersGroup.GET("", orderH.List)
	ordersGroup.GET("/:id", orderH.Get)
	ordersGroup.PATCH("/:id/status", orderH.UpdateStatus)

	r.GET("/ws/stock", func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
