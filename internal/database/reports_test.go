package database

import (
	"testing"
	"time"

	"go-gas-agent/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSale(t *testing.T, db *gorm.DB, route string, at time.Time, credit, received float64, qty int) {
	t.Helper()
	s := models.Sale{
		DocID:               uuid.NewString(),
		SaleID:              "TBG" + at.Format("20060102150405") + uuid.NewString()[:4],
		RouteName:           route,
		Timestamp:           at,
		Date:                at.Format("2006-01-02"),
		TodayCredit:         credit,
		TotalAmountReceived: received,
		SalesQuantity:       qty,
		Status:              "completed",
	}
	require.NoError(t, db.Create(&s).Error)
}

func TestGetSalesReport_EmptyRangeIsZero(t *testing.T) {
	db := openTestDB(t)

	report, err := GetSalesReport(db, time.Now().Add(-24*time.Hour), time.Now(), "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.TotalCredit)
	assert.Equal(t, 0.0, report.TotalReceived)
	assert.EqualValues(t, 0, report.TotalCount)
	assert.EqualValues(t, 0, report.CylindersSold)
}

func TestGetSalesReport_Aggregates(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	seedSale(t, db, "North Route", now.Add(-time.Hour), 400, 300, 2)
	seedSale(t, db, "North Route", now.Add(-2*time.Hour), 100, 100, 1)
	seedSale(t, db, "South Route", now.Add(-time.Hour), 50, 50, 1)
	seedSale(t, db, "North Route", now.Add(-48*time.Hour), 999, 999, 9) // outside range

	report, err := GetSalesReport(db, now.Add(-24*time.Hour), now, "")
	require.NoError(t, err)
	assert.Equal(t, 550.0, report.TotalCredit)
	assert.Equal(t, 450.0, report.TotalReceived)
	assert.EqualValues(t, 3, report.TotalCount)
	assert.EqualValues(t, 4, report.CylindersSold)
}

func TestGetSalesReport_RouteScoped(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	seedSale(t, db, "North Route", now.Add(-time.Hour), 400, 300, 2)
	seedSale(t, db, "South Route", now.Add(-time.Hour), 50, 50, 1)

	report, err := GetSalesReport(db, now.Add(-24*time.Hour), now, "North Route")
	require.NoError(t, err)
	assert.Equal(t, 400.0, report.TotalCredit)
	assert.EqualValues(t, 1, report.TotalCount)
}
