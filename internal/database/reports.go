package database

import (
	"time"

	"go-gas-agent/internal/models"

	"gorm.io/gorm"
)

// SalesReportResult aggregates sales for a date range. Credit is the value
// of gas delivered, Received the cash collected against it.
type SalesReportResult struct {
	TotalCredit   float64
	TotalReceived float64
	TotalCount    int64
	CylindersSold int64
}

// GetSalesReport aggregates sales between start and end, optionally scoped
// to one route (empty routeName = all routes).
func GetSalesReport(db *gorm.DB, start, end time.Time, routeName string) (*SalesReportResult, error) {
	var result SalesReportResult

	q := db.Model(&models.Sale{}).Where("timestamp BETWEEN ? AND ?", start, end)
	if routeName != "" {
		q = q.Where("route_name = ?", routeName)
	}

	// COALESCE so empty ranges report 0 instead of NULL
	err := q.Session(&gorm.Session{}).
		Select("COALESCE(SUM(today_credit), 0)").
		Scan(&result.TotalCredit).Error
	if err != nil {
		return nil, err
	}

	err = q.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_amount_received), 0)").
		Scan(&result.TotalReceived).Error
	if err != nil {
		return nil, err
	}

	err = q.Session(&gorm.Session{}).
		Select("COALESCE(SUM(sales_quantity), 0)").
		Scan(&result.CylindersSold).Error
	if err != nil {
		return nil, err
	}

	err = q.Session(&gorm.Session{}).Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
