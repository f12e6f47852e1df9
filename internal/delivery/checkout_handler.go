package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront_client/internal/session"
	"storefront_client/internal/usecase"
)

type CheckoutHandler struct {
	useCase usecase.CheckoutOrchestrator
	session *session.Session
	log     *logrus.Logger
}

func NewCheckoutHandler(uc usecase.CheckoutOrchestrator, sess *session.Session, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		useCase: uc,
		session: sess,
		log:     logger,
	}
}

func (h *CheckoutHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/checkout", h.Checkout)
	router.GET("/checkouts", h.History)
	router.GET("/checkout/state", h.State)
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	checkout, err := h.useCase.Checkout(c.Request.Context())
	if err != nil {
		h.log.Warnf("Checkout failed: %v", err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Checkout completed successfully", checkout)
}

func (h *CheckoutHandler) History(c *gin.Context) {
	user := h.session.User()
	checkouts, err := h.useCase.History(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Errorf("Failed to fetch checkout history for user %d: %v", user.ID, err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Checkout history retrieved successfully", checkouts)
}

func (h *CheckoutHandler) State(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Checkout state", gin.H{"state": h.useCase.State()})
}
