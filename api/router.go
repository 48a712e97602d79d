package api

import (
	"wholesaler/wholesaler_catalog_service/api/handlers"
	"wholesaler/wholesaler_catalog_service/config"
	"wholesaler/wholesaler_catalog_service/pkg/logger"
	"wholesaler/wholesaler_catalog_service/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SetUpRouter wires the HTTP surface over the storage layer.
func SetUpRouter(cfg config.Config, log logger.LoggerI, strg storage.StorageI) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	h := handlers.New(cfg, log, strg)

	v1 := router.Group("/v1")
	{
		v1.POST("/query", h.RunQuery)

		v1.POST("/wholesalers", h.CreateWholesaler)
		v1.GET("/wholesalers/:id", h.GetWholesaler)
		v1.PUT("/wholesalers/:id", h.UpdateWholesaler)
		v1.DELETE("/wholesalers/:id", h.DeleteWholesaler)

		v1.POST("/product-categories", h.CreateProductCategory)
		v1.GET("/product-categories/:id", h.GetProductCategory)
		v1.DELETE("/product-categories/:id", h.DeleteProductCategory)

		v1.POST("/product-definitions", h.CreateProductDefinition)
		v1.DELETE("/product-definitions/:id", h.DeleteProductDefinition)

		v1.POST("/offerings", h.CreateOffering)
		v1.GET("/offerings/:id", h.GetOffering)
		v1.DELETE("/offerings/:id", h.DeleteOffering)

		v1.DELETE("/orders/:id", h.DeleteOrder)
		v1.DELETE("/order-items/:id", h.DeleteOrderItem)
		v1.DELETE("/offering-attributes/:id", h.DeleteOfferingAttribute)
		v1.DELETE("/offering-links/:id", h.DeleteOfferingLink)
		v1.DELETE("/wholesaler-item-categories/:id", h.DeleteWholesalerCategory)
	}

	return router
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
