package handlers

import (
	"errors"
	"net/http"

	"todo-list-api/internal/auth"

	"github.com/gin-gonic/gin"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login returns a handler for POST /api/login
func Login(a *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request. Passphrase is required.",
			})
			return
		}

		token, err := a.Login(req.Passphrase)
		if errors.Is(err, auth.ErrBadPassphrase) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid passphrase"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, LoginResponse{
			Token:   token,
			Message: "Login successful",
		})
	}
}
