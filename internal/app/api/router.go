package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	bagshttp "github.com/sustentabag/business-dashboard/internal/domains/bags/adapters/http"
	businesshttp "github.com/sustentabag/business-dashboard/internal/domains/business/adapters/http"
	ordershttp "github.com/sustentabag/business-dashboard/internal/domains/orders/adapters/http"
	userhttp "github.com/sustentabag/business-dashboard/internal/domains/users/adapters/http"
)

// Handlers aggregates the per-domain HTTP adapters and the auth middleware.
type Handlers struct {
	Users    userhttp.API
	Orders   ordershttp.API
	Bags     bagshttp.API
	Business businesshttp.API
	Auth     gin.HandlerFunc
}

// NewRouter assembles the gin engine with all dashboard routes.
func NewRouter(handlers Handlers, serviceName string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/login", handlers.Users.Login)
		auth.POST("/register", handlers.Users.Register)
		auth.POST("/logout", handlers.Auth, handlers.Users.Logout)
		auth.GET("/me", handlers.Auth, handlers.Users.Me)
	}

	orders := router.Group("/api/orders", handlers.Auth)
	{
		orders.GET("", handlers.Orders.ListOrders)
		orders.GET("/statistics", handlers.Orders.GetStatistics)
		orders.GET("/:orderId", handlers.Orders.GetOrder)
		orders.PATCH("/:orderId/status", handlers.Orders.UpdateOrderStatus)
	}

	bags := router.Group("/api/bags", handlers.Auth)
	{
		bags.GET("", handlers.Bags.ListBags)
		bags.POST("", handlers.Bags.CreateBag)
		bags.PUT("/:bagId", handlers.Bags.UpdateBag)
		bags.DELETE("/:bagId", handlers.Bags.DeleteBag)
	}

	business := router.Group("/api/business", handlers.Auth)
	{
		business.GET("", handlers.Business.GetBusiness)
		business.PUT("", handlers.Business.UpdateBusiness)
	}

	return router
}
