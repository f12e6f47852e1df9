package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront_client/internal/domain"
	"storefront_client/internal/session"
	"storefront_client/internal/usecase"
)

type ProductHandler struct {
	useCase usecase.CatalogUseCase
	session *session.Session
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.CatalogUseCase, sess *session.Session, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		session: sess,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PATCH("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
	router.GET("/seller/products", h.SellerProducts)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.BrowseProducts(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	product, err := h.useCase.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get product %d: %v", id, err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) SellerProducts(c *gin.Context) {
	user := h.session.User()
	if user == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Sign in required")
		return
	}
	products, err := h.useCase.SellerProducts(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Errorf("Failed to list products for seller %d: %v", user.ID, err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Seller products retrieved successfully", products)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.log.Errorf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.useCase.CreateProduct(c.Request.Context(), h.session.User(), in)
	if err != nil {
		h.log.Warnf("Failed to create product: %v", err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.log.Errorf("Failed to bind JSON for update product %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.useCase.UpdateProduct(c.Request.Context(), h.session.User(), id, in)
	if err != nil {
		h.log.Warnf("Failed to update product %d: %v", id, err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	if err := h.useCase.DeleteProduct(c.Request.Context(), h.session.User(), id); err != nil {
		h.log.Warnf("Failed to delete product %d: %v", id, err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}

func pathID(c *gin.Context, log *logrus.Logger) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		log.Warnf("Invalid ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return id, true
}
