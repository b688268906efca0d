package handlers

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"go-gas-agent/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func reportsRouter() *gin.Engine {
	r := gin.New()
	r.GET("/api/dashboard/:routeName", asRoute("North Route"), GetDashboard)
	r.GET("/api/reports", asRoute("North Route"), GetSalesReportHandler)
	r.GET("/api/reports/export", asRoute("North Route"), ExportSalesReport)
	return r
}

func seedSaleAt(t *testing.T, db *gorm.DB, route string, at time.Time, credit, received float64, qty int) {
	t.Helper()
	s := models.Sale{
		DocID:               uuid.NewString(),
		SaleID:              "TBG" + uuid.NewString()[:10],
		RouteName:           route,
		Timestamp:           at,
		Date:                at.Format("2006-01-02"),
		TodayCredit:         credit,
		TotalAmountReceived: received,
		SalesQuantity:       qty,
		CustomerName:        "Hotel Blue Star",
		ProductName:         "14.2kg Domestic",
		Status:              "completed",
	}
	require.NoError(t, db.Create(&s).Error)
}

func TestGetDashboard(t *testing.T) {
	db := setupTestDB(t)
	seedCustomer(t, db, 600, 11)
	now := time.Now()

	seedSaleAt(t, db, "North Route", now.Add(-time.Minute), 400, 300, 2)
	seedSaleAt(t, db, "South Route", now.Add(-time.Minute), 999, 999, 9)
	seedSaleAt(t, db, "North Route", now.Add(-48*time.Hour), 999, 999, 9) // yesterday's run

	r := reportsRouter()
	w := doJSON(t, r, http.MethodGet, "/api/dashboard/North%20Route", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.EqualValues(t, 400, body["today_credit"])
	assert.EqualValues(t, 300, body["today_received"])
	assert.EqualValues(t, 1, body["today_sales"])
	assert.EqualValues(t, 2, body["cylinders_sold"])
	assert.EqualValues(t, 1, body["customer_count"])
	assert.EqualValues(t, 600, body["outstanding_due"])
}

func TestGetSalesReportHandler_BadRange(t *testing.T) {
	setupTestDB(t)
	r := reportsRouter()

	w := doJSON(t, r, http.MethodGet, "/api/reports?start=nope&end=2025-01-31", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSalesReportHandler(t *testing.T) {
	db := setupTestDB(t)
	at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)
	seedSaleAt(t, db, "North Route", at, 400, 300, 2)

	r := reportsRouter()
	w := doJSON(t, r, http.MethodGet, "/api/reports?start=2025-01-01&end=2025-01-31", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.EqualValues(t, 400, body["total_credit"])
	assert.EqualValues(t, 1, body["total_sales"])
}

func TestExportSalesReport_WritesWorkbook(t *testing.T) {
	db := setupTestDB(t)
	at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)
	seedSaleAt(t, db, "North Route", at, 400, 300, 2)

	r := reportsRouter()
	w := doJSON(t, r, http.MethodGet, "/api/reports/export?start=2025-01-01&end=2025-01-31", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sales_20250101_20250131.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Sales", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sale ID", header)

	customerCell, err := f.GetCellValue("Sales", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Hotel Blue Star", customerCell)
}
