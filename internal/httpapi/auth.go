package httpapi

import (
	"net/http"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/auth"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and the profile
type AuthHandler struct {
	authService *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "register", apperr.Validation("invalid request body: %v", err))
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, "register", err)
		return
	}

	h.setCookie(c, token)
	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "login", apperr.Validation("invalid request body: %v", err))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, "login", err)
		return
	}

	h.setCookie(c, token)
	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Profile(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookie, token, int(h.authService.TokenTTL().Seconds()), "/", "", false, true)
}
