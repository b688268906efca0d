package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"go-gas-agent/internal/database"
	"go-gas-agent/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-global DB at a fresh in-memory sqlite
// database named after the test, so tests stay isolated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
	return db
}

func seedRoute(t *testing.T, db *gorm.DB) models.Route {
	t.Helper()
	route := models.Route{RouteID: "R1", Name: "North Route", Password: "secret123", Remarks: "main town run"}
	require.NoError(t, db.Create(&route).Error)
	return route
}

func seedCustomer(t *testing.T, db *gorm.DB, balance float64, gasOnHand int) models.Customer {
	t.Helper()
	customer := models.Customer{
		CustomerID:       "C100",
		Name:             "Hotel Blue Star",
		Phone:            "9876543210",
		Route:            "North Route",
		Address:          "Market Road",
		CurrentBalance:   balance,
		CurrentGasOnHand: gasOnHand,
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, price float64) models.Product {
	t.Helper()
	product := models.Product{ProductID: "P1", Name: "14.2kg Domestic", Price: price}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// asRouteID fakes the auth middleware for a logged-in route with an
// explicit identity.
func asRouteID(routeID, routeName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("routeID", routeID)
		c.Set("routeName", routeName)
		c.Set("role", "route")
	}
}

// asRoute fakes the auth middleware for a logged-in route.
func asRoute(routeName string) gin.HandlerFunc {
	return asRouteID("R1", routeName)
}
