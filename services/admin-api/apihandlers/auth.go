package apihandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/inbal0012/wild-ginger-bot-sub001/pkg/apihelpers/middlewares"
	jwthandling "github.com/inbal0012/wild-ginger-bot-sub001/pkg/jwt-handling"
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", mw.RequirePayload(), h.login)
}

// LoginRequest is the request body for the login endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("login: failed to parse request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, found := h.findAdminUser(req.Username)
	if !found {
		slog.Warn("login attempt for unknown user", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("login attempt with wrong password", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := jwthandling.GenerateNewAdminUserToken(
		h.tokenExpiresIn,
		user.Username,
		user.IsOwner,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("login: failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"expiresAt":   time.Now().Add(h.tokenExpiresIn).Unix(),
		"isOwner":     user.IsOwner,
	})
}

func (h *HttpEndpoints) findAdminUser(username string) (AdminUser, bool) {
	for _, user := range h.adminUsers {
		if user.Username == username {
			return user, true
		}
	}
	return AdminUser{}, false
}
