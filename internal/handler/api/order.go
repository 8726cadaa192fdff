package api

import (
	"errors"
	"net/http"

	resdto "island-eats/internal/handler/dto/response"
	"island-eats/internal/handler/httperr"
	"island-eats/internal/handler/middleware"
	"island-eats/internal/usecase/commands"
	"island-eats/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errIdempotencyKeyRequired = errors.New("Idempotency-Key header is required")

type OrderHandler struct {
	checkoutCommands commands.CheckoutCommands
	orderQueries     queries.OrderQueries
}

func NewOrderHandler(checkoutCommands commands.CheckoutCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		checkoutCommands: checkoutCommands,
		orderQueries:     orderQueries,
	}
}

// @Summary Checkout
// @Description Place an order for the current cart, claiming one drop slot
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Success 200 {object} resdto.OrderResponse "Replayed result for an already completed key"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idempotencyKey, err := h.getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result, err := h.checkoutCommands.Checkout(c.Request.Context(), userID, idempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCartEmpty):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, commands.ErrSoldOut):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Sold out",
			})
		case errors.Is(err, commands.ErrDuplicateCheckout):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Duplicate checkout request with a different cart",
			})
		case errors.Is(err, commands.ErrCheckoutInProgress):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Checkout request is currently being processed",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromOrderView(result.Order))
}

// @Summary Get order
// @Description Get one of the current user's orders by ID
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		// Not owned reads as not found so order IDs stay unguessable.
		case errors.Is(err, queries.ErrOrderNotFound),
			errors.Is(err, queries.ErrOrderNotOwned):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Get user orders
// @Description Get all orders placed by the current user
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.OrderResponse
// @Failure 401 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.orderQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderList(views))
}

func (h *OrderHandler) getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}

	return key, nil
}
