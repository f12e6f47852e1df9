package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront_client/internal/domain"
	"storefront_client/internal/usecase"
)

type AuthHandler struct {
	useCase usecase.AuthUseCase
	log     *logrus.Logger
}

func NewAuthHandler(uc usecase.AuthUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for login: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.useCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warnf("Login failed for %s: %v", req.Email, err)
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Login successful", user)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var reg domain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		h.log.Errorf("Failed to bind JSON for register: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.useCase.Register(c.Request.Context(), reg)
	if err != nil {
		h.log.Warnf("Registration failed for %s: %v", reg.Email, err)
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Registration successful", user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.useCase.Logout(); err != nil {
		h.log.Errorf("Logout failed: %v", err)
		FailWith(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := h.useCase.CurrentUser()
	if user == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Not signed in")
		return
	}
	SuccessResponse(c, http.StatusOK, "Current user", user)
}
