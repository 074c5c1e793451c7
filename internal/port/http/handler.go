package http

import (
	"errors"
	"net/http"

	"github.com/ferreteria-nea/cart-widget/internal/platform/logger"
	"github.com/ferreteria-nea/cart-widget/internal/port/events"
	"github.com/ferreteria-nea/cart-widget/internal/service"
	"github.com/gin-gonic/gin"
)

// CartHandler maps the HTTP surface onto the semantic command dispatcher.
type CartHandler struct {
	dispatcher *events.Dispatcher
	log        logger.Logger
}

func NewCartHandler(dispatcher *events.Dispatcher, log logger.Logger) *CartHandler {
	return &CartHandler{
		dispatcher: dispatcher,
		log:        log,
	}
}

type addItemRequest struct {
	ID        string   `json:"id" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	UnitPrice *float64 `json:"unitPrice" binding:"required"`
	Quantity  int      `json:"quantity"`
}

// AddItem handles POST /cart/items. The event source validates inputs; the
// state manager only assumes well-formed primitives.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.UnitPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unitPrice must be non-negative"})
		return
	}

	state := h.dispatcher.OnAdd(c.Request.Context(), req.ID, req.Name, *req.UnitPrice, req.Quantity)
	c.JSON(http.StatusOK, state)
}

// RemoveItem handles DELETE /cart/items/:id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	state := h.dispatcher.OnRemove(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, state)
}

// ClearCart handles DELETE /cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	state := h.dispatcher.OnClear(c.Request.Context())
	c.JSON(http.StatusOK, state)
}

// GetCart handles GET /cart: the openCart event.
func (h *CartHandler) GetCart(c *gin.Context) {
	state := h.dispatcher.OnOpenCart(c.Request.Context())
	c.JSON(http.StatusOK, state)
}

// PrepareOrder handles POST /cart/order. An empty cart is a user-facing
// conflict, not a server failure.
func (h *CartHandler) PrepareOrder(c *gin.Context) {
	order, err := h.dispatcher.OnOrder(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			c.JSON(http.StatusConflict, gin.H{"error": "empty cart"})
			return
		}
		h.log.Errorf("Failed to prepare order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not prepare order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// RegisterRoutes wires the cart surface onto a router group.
func (h *CartHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	cart := r.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.DELETE("", h.ClearCart)
		cart.POST("/items", h.AddItem)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.POST("/order", h.PrepareOrder)
	}
}
