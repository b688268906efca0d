package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"go-gas-agent/internal/auth"
	"go-gas-agent/internal/database"
	"go-gas-agent/internal/models"
	"go-gas-agent/internal/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login validates a route's credentials, opens a session record and
// establishes the local session store. Every failure path performs zero
// writes.
func Login(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		var route models.Route
		err := database.DB.Where("route_id = ?", input.ID).First(&route).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found. Please check your ID."})
			return
		}
		if err != nil {
			log.Println("Error during login:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred. Please try again later."})
			return
		}

		if route.Name == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Route name is missing in database."})
			return
		}

		// Route passwords are admin-entered and compared as-is.
		if route.Password != input.Password {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password. Please try again."})
			return
		}

		now := time.Now()
		sess := models.Session{
			RouteID:   route.RouteID,
			RouteName: route.Name,
			LoginTime: now,
			Date:      now.Format("2006-01-02"),
		}
		if err := database.DB.Create(&sess).Error; err != nil {
			log.Println("Error during login:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred. Please try again later."})
			return
		}

		store.Establish(route.RouteID, route.Name)

		// Token dies at midnight along with the session store entry.
		token, err := auth.GenerateToken(route.RouteID, route.Name, "route", session.NextMidnight(now))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":      token,
			"route_name": route.Name,
			"redirect":   "/dashboard/" + route.Name,
		})
	}
}

// Logout closes the open session of the route named in the caller's
// token, then clears the local store no matter what happened remotely.
// The user always ends up logged out on this device. The identity comes
// from the bearer token, not the store: the store only remembers the
// last login on this device, which is the wrong route when several are
// logged in at once.
func Logout(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		routeID := c.GetString("routeID")
		if routeID != "" {
			if err := database.CloseLatestOpenSession(database.DB, routeID, time.Now()); err != nil {
				log.Println("Warning: could not close remote session:", err)
			}
		}

		store.Clear()
		c.JSON(http.StatusOK, gin.H{"redirect": "/login"})
	}
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates a back-office account against its bcrypt hash.
func AdminLogin(c *gin.Context) {
	var input AdminLoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var user models.AdminUser
	if err := database.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken("", user.Username, "admin", time.Now().Add(24*time.Hour))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"role":     user.Role,
		"username": user.Username,
	})
}

// AdminRegister creates a back-office account. The route is only mounted
// when ALLOW_ADMIN_REGISTRATION=true.
func AdminRegister(c *gin.Context) {
	var input AdminLoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.AdminUser{
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Role:         "admin",
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User likely already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Admin user created successfully"})
}
