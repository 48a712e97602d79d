package handlers

import (
	"net/http"

	"wholesaler/wholesaler_catalog_service/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateWholesaler(c *gin.Context) {
	var req models.Wholesaler
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Kind: "InvalidArgument", Message: err.Error()})
		return
	}

	resp, err := h.strg.Wholesaler().Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetWholesaler(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}

	resp, err := h.strg.Wholesaler().GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UpdateWholesaler(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}

	var req models.Wholesaler
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Kind: "InvalidArgument", Message: err.Error()})
		return
	}
	req.WholesalerID = id

	resp, err := h.strg.Wholesaler().Update(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteWholesaler(c *gin.Context) {
	req, ok := h.deleteRequest(c)
	if !ok {
		return
	}

	resp, err := h.strg.Wholesaler().Delete(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateProductCategory(c *gin.Context) {
	var req models.ProductCategory
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Kind: "InvalidArgument", Message: err.Error()})
		return
	}

	resp, err := h.strg.ProductCategory().Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetProductCategory(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}

	resp, err := h.strg.ProductCategory().GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteProductCategory(c *gin.Context) {
	req, ok := h.deleteRequest(c)
	if !ok {
		return
	}

	resp, err := h.strg.ProductCategory().Delete(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateProductDefinition(c *gin.Context) {
	var req models.ProductDefinition
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Kind: "InvalidArgument", Message: err.Error()})
		return
	}

	resp, err := h.strg.ProductDefinition().Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) DeleteProductDefinition(c *gin.Context) {
	req, ok := h.deleteRequest(c)
	if !ok {
		return
	}

	resp, err := h.strg.ProductDefinition().Delete(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateOffering(c *gin.Context) {
	var req models.Offering
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Kind: "InvalidArgument", Message: err.Error()})
		return
	}

	resp, err := h.strg.Offering().Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetOffering(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}

	resp, err := h.strg.Offering().GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteOffering(c *gin.Context) {
	req, ok := h.deleteRequest(c)
	if !ok {
		return
	}

	resp, err := h.strg.Offering().Delete(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	req, ok := h.deleteRequest(c)
	if !ok {
		return
	}

	resp, err := h.strg.Order().Delete(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteOrderItem(c *gin.Context) {
	req, ok := h.deleteRequest(c)
	if !ok {
		return
	}

	resp, err := h.strg.OrderItem().Delete(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteOfferingAttribute(c *gin.Context) {
	req, ok := h.deleteRequest(c)
	if !ok {
		return
	}

	resp, err := h.strg.OfferingAttribute().Delete(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteOfferingLink(c *gin.Context) {
	req, ok := h.deleteRequest(c)
	if !ok {
		return
	}

	resp, err := h.strg.OfferingLink().Delete(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteWholesalerCategory(c *gin.Context) {
	req, ok := h.deleteRequest(c)
	if !ok {
		return
	}

	resp, err := h.strg.WholesalerCategory().Delete(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
