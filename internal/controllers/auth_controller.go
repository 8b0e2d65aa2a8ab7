package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/navdeck/navdeck/internal/config"
	"github.com/navdeck/navdeck/internal/middleware"
	"github.com/navdeck/navdeck/internal/utils"
)

type AuthController struct {
	Cfg *config.Config
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login issues a bearer token. With the gate disabled any credentials
// (or none) yield a guest token, so clients behave identically in both
// modes. With the gate enabled the request is checked against the
// configured single-user credentials.
func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	_ = c.ShouldBindJSON(&req)

	if !a.Cfg.AuthEnabled {
		token, err := a.issueToken(middleware.GuestSubject)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
		return
	}

	// An empty configured password would make the constant-time compare
	// accept empty submissions; never log anyone in through that.
	if a.Cfg.AuthPassword == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "auth gate misconfigured: AUTH_PASSWORD is empty"})
		return
	}

	userOK := utils.VerifyCredential(a.Cfg.AuthUsername, req.Username)
	passOK := utils.VerifyCredential(a.Cfg.AuthPassword, req.Password)
	if !userOK || !passOK {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}

	token, err := a.issueToken(a.Cfg.AuthUsername)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

func (a *AuthController) issueToken(subject string) (string, error) {
	now := time.Now().UTC()
	claims := middleware.Claims{
		Username: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "navdeck",
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.Cfg.TokenTTL)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.Cfg.JWTSecret))
}
