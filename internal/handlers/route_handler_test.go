package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"go-gas-agent/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/routes", AddRoute)
	r.GET("/api/routes", GetRoutes)
	r.GET("/api/routes/:id/sessions", GetRouteSessions)
	return r
}

func TestAddRoute(t *testing.T) {
	db := setupTestDB(t)
	r := adminRouter()

	w := doJSON(t, r, http.MethodPost, "/api/routes", gin.H{
		"id": "R7", "name": "Hill Route", "password": "pw77", "remarks": "weekly",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var route models.Route
	require.NoError(t, db.Where("route_id = ?", "R7").First(&route).Error)
	assert.Equal(t, "Hill Route", route.Name)
	assert.Equal(t, "pw77", route.Password)
}

func TestAddRoute_DuplicateID(t *testing.T) {
	db := setupTestDB(t)
	seedRoute(t, db)
	r := adminRouter()

	w := doJSON(t, r, http.MethodPost, "/api/routes", gin.H{
		"id": "R1", "name": "Clone", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRouteSessions(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Session{
		RouteID: "R1", RouteName: "North Route",
		LoginTime: time.Now(), Date: time.Now().Format("2006-01-02"),
	}).Error)

	r := adminRouter()
	w := doJSON(t, r, http.MethodGet, "/api/routes/R1/sessions", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var sessions []models.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
	assert.Len(t, sessions, 1)
}
