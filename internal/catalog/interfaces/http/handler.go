package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/marketplace/internal/catalog/application"
	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
)

type CatalogHandler struct {
	query *application.CatalogQueryService
}

func NewCatalogHandler(query *application.CatalogQueryService) *CatalogHandler {
	return &CatalogHandler{query: query}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	v1 := r.Group("/v1/catalog")
	{
		v1.GET("/hottest", h.GetHottestItems)
		v1.GET("/sellers/:uid/items", h.GetSellerItems)
		v1.GET("/followed", h.GetItemsByFollowed)
		v1.GET("/suggested", h.GetItemsBySuggestion)
		v1.GET("/liked", h.GetLikedItems)
		v1.GET("/categories", h.GetCategories)
		v1.GET("/procurement-types", h.GetProcurementTypes)
		v1.GET("/payment-types", h.GetPaymentTypes)
	}
}

func (h *CatalogHandler) GetHottestItems(c *gin.Context) {
	userID := c.Query("user_id")
	limit := parseLimit(c)

	items, err := h.query.HottestItems(c.Request.Context(), userID, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetSellerItems(c *gin.Context) {
	sellerUID := c.Param("uid")
	if sellerUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seller uid is required"})
		return
	}
	userID := c.Query("user_id")
	limit := parseLimit(c)

	items, err := h.query.SellerItems(c.Request.Context(), userID, sellerUID, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetItemsByFollowed(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	limit := parseLimit(c)

	items, err := h.query.ItemsByFollowed(c.Request.Context(), userID, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetItemsBySuggestion(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	limit := parseLimit(c)

	items, err := h.query.ItemsBySuggestion(c.Request.Context(), userID, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetLikedItems(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	items, err := h.query.LikedItems(c.Request.Context(), userID, parseLimit(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetCategories(c *gin.Context) {
	names, err := h.query.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *CatalogHandler) GetProcurementTypes(c *gin.Context) {
	names, err := h.query.ProcurementTypes(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *CatalogHandler) GetPaymentTypes(c *gin.Context) {
	names, err := h.query.PaymentTypes(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

// fail 向调用方返回笼统的失败信号，细节只进日志。
func (h *CatalogHandler) fail(c *gin.Context, err error) {
	logger.Error(c.Request.Context(), "Catalog query failed", "path", c.Request.URL.Path, "error", err)

	var lookupErr *domain.UserLookupError
	if errors.As(err, &lookupErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func parseLimit(c *gin.Context) int {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return 0
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
