package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront_client/internal/session"
	"storefront_client/internal/usecase"
)

type CartHandler struct {
	sync    usecase.CartSynchronizer
	session *session.Session
	log     *logrus.Logger
}

func NewCartHandler(sync usecase.CartSynchronizer, sess *session.Session, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		sync:    sync,
		session: sess,
		log:     logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.DELETE("", h.ClearCart)
		cart.GET("/totals", h.Totals)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items/:id", h.UpdateItem)
		cart.DELETE("/items/:id", h.RemoveItem)
	}
}

type cartView struct {
	Cart   any  `json:"cart"`
	Totals any  `json:"totals"`
	Empty  bool `json:"empty"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	user := h.session.User()
	cart, err := h.sync.LoadCart(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Errorf("Failed to load cart for user %d: %v", user.ID, err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", cartView{
		Cart:   cart,
		Totals: h.sync.Totals(),
		Empty:  cart == nil || len(cart.Items) == 0,
	})
}

type addItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for add item: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ProductID <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Product ID is required")
		return
	}

	user := h.session.User()
	if err := h.sync.AddItem(c.Request.Context(), user.ID, req.ProductID, req.Quantity); err != nil {
		h.log.Warnf("Failed to add product %d for user %d: %v", req.ProductID, user.ID, err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Item added to cart", h.sync.Cart())
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		h.log.Errorf("Failed to bind JSON for update item %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Quantity is required")
		return
	}

	if err := h.sync.UpdateItemQuantity(c.Request.Context(), id, *req.Quantity); err != nil {
		h.log.Warnf("Failed to update item %d: %v", id, err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart item updated", h.sync.Cart())
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	if err := h.sync.RemoveItem(c.Request.Context(), id); err != nil {
		h.log.Warnf("Failed to remove item %d: %v", id, err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart item removed", h.sync.Cart())
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.sync.ClearCart(c.Request.Context()); err != nil {
		h.log.Warnf("Failed to clear cart: %v", err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart cleared", h.sync.Cart())
}

func (h *CartHandler) Totals(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Cart totals", h.sync.Totals())
}
