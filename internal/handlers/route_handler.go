package handlers

import (
	"net/http"

	"go-gas-agent/internal/database"
	"go-gas-agent/internal/models"

	"github.com/gin-gonic/gin"
)

type NewRouteRequest struct {
	RouteID  string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remarks  string `json:"remarks"`
}

// AddRoute creates a delivery route (admin form).
func AddRoute(c *gin.Context) {
	var req NewRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	route := models.Route{
		RouteID:  req.RouteID,
		Name:     req.Name,
		Password: req.Password,
		Remarks:  req.Remarks,
	}

	if err := database.DB.Create(&route).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Route likely already exists"})
		return
	}

	c.JSON(http.StatusCreated, route)
}

// GetRoutes lists all routes.
func GetRoutes(c *gin.Context) {
	var routes []models.Route
	if err := database.DB.Order("route_id").Find(&routes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch routes"})
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GetRouteSessions lists a route's login history, newest first.
func GetRouteSessions(c *gin.Context) {
	routeID := c.Param("id")

	var sessions []models.Session
	err := database.DB.Where("route_id = ?", routeID).Order("login_time desc").Limit(50).Find(&sessions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}
