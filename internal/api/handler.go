package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/models"
	"storefront/internal/service"
	"storefront/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SessionHeader carries the session id returned by POST /session
const SessionHeader = "X-Session-ID"

// Handler contains HTTP handlers
type Handler struct {
	shop *service.Shop
}

// NewHandler creates a new HTTP handler
func NewHandler(shop *service.Shop) *Handler {
	return &Handler{
		shop: shop,
	}
}

// LoginRequest is the body of POST /session
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AddItemRequest is the body of POST /cart/items
type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.GET("/inventory/:id", h.getStockLevel)

		v1.POST("/session", h.login)
		v1.GET("/session", h.currentSession)
		v1.DELETE("/session", h.logout)

		v1.GET("/cart", h.viewCart)
		v1.POST("/cart/items", h.addItem)

		v1.POST("/orders", h.createOrder)
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
		v1.POST("/orders/:id/pay", h.payOrder)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"products": h.shop.Catalog.ListProducts(c.Request.Context()),
	})
}

func (h *Handler) getProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.shop.Catalog.GetProduct(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) getStockLevel(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	level, err := h.shop.Inventory.StockLevel(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, level)
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.shop.Sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	if !resp.Existing {
		c.JSON(http.StatusCreated, sessionBody(resp.Session, false))
		return
	}

	// Only the holder of the active session gets its id back.
	if c.GetHeader(SessionHeader) == resp.Session.ID() {
		c.JSON(http.StatusOK, sessionBody(resp.Session, true))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"account":  resp.Session.Account(),
		"existing": true,
	})
}

func (h *Handler) currentSession(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		writeError(c, models.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, sessionBody(sess, false))
}

func (h *Handler) logout(c *gin.Context) {
	if h.session(c) == nil {
		writeError(c, models.ErrNotAuthenticated)
		return
	}

	info, err := h.shop.Sessions.Logout(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": info})
}

func (h *Handler) viewCart(c *gin.Context) {
	view, err := h.shop.Cart.ViewCart(c.Request.Context(), h.session(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) addItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	entry, err := h.shop.Cart.AddItem(c.Request.Context(), h.session(c), req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// createOrder handles order creation
func (h *Handler) createOrder(c *gin.Context) {
	order, err := h.shop.Orders.CreateOrder(c.Request.Context(), h.session(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.shop.Orders.ListOrders(c.Request.Context(), h.session(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.shop.Orders.GetOrder(c.Request.Context(), h.session(c), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) payOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.shop.Payments.PayOrder(c.Request.Context(), h.session(c), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// session resolves the request's session header; nil when absent or stale
func (h *Handler) session(c *gin.Context) *service.Session {
	return h.shop.Sessions.Lookup(c.GetHeader(SessionHeader))
}

func sessionBody(sess *service.Session, existing bool) gin.H {
	return gin.H{
		"session_id": sess.ID(),
		"account":    sess.Account(),
		"started_at": sess.StartedAt(),
		"existing":   existing,
	}
}

func orderIDParam(c *gin.Context) (int, bool) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, false
	}
	return orderID, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrNotAuthenticated), errors.Is(err, models.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInsufficientStock), errors.Is(err, models.ErrAlreadyPaid):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error":  err.Error(),
		"reason": util.ErrorReason(err),
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
