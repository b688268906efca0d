package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go-gas-agent/internal/database"
	"go-gas-agent/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// DashboardData is the route dashboard payload.
type DashboardData struct {
	RouteName      string        `json:"route_name"`
	TodayCredit    float64       `json:"today_credit"`
	TodayReceived  float64       `json:"today_received"`
	TodaySales     int64         `json:"today_sales"`
	CylindersSold  int64         `json:"cylinders_sold"`
	CustomerCount  int64         `json:"customer_count"`
	OutstandingDue float64       `json:"outstanding_due"`
	RecentSales    []models.Sale `json:"recent_sales"`
}

// --- GET: /api/dashboard/:routeName ---
func GetDashboard(c *gin.Context) {
	routeName := c.Param("routeName")

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	report, err := database.GetSalesReport(database.DB, dayStart, now, routeName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate today's figures"})
		return
	}

	data := DashboardData{
		RouteName:     routeName,
		TodayCredit:   report.TotalCredit,
		TodayReceived: report.TotalReceived,
		TodaySales:    report.TotalCount,
		CylindersSold: report.CylindersSold,
	}

	err = database.DB.Model(&models.Customer{}).Where("route = ?", routeName).Count(&data.CustomerCount).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count customers"})
		return
	}

	// Total owed by this route's customers
	err = database.DB.Model(&models.Customer{}).
		Where("route = ?", routeName).
		Select("COALESCE(SUM(current_balance), 0)").
		Scan(&data.OutstandingDue).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate outstanding dues"})
		return
	}

	err = database.DB.Where("route_name = ?", routeName).Order("timestamp desc").Limit(10).Find(&data.RecentSales).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent sales"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// --- GET: /api/reports?start=YYYY-MM-DD&end=YYYY-MM-DD&route=... ---
func GetSalesReportHandler(c *gin.Context) {
	start, end, err := parseReportRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := database.GetSalesReport(database.DB, start, end, c.Query("route"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_credit":   report.TotalCredit,
		"total_received": report.TotalReceived,
		"total_sales":    report.TotalCount,
		"cylinders_sold": report.CylindersSold,
	})
}

// --- GET: /api/reports/export ---
// Streams the date-ranged sales as an .xlsx download.
func ExportSalesReport(c *gin.Context) {
	start, end, err := parseReportRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	routeName := c.Query("route")

	var sales []models.Sale
	q := database.DB.Where("timestamp BETWEEN ? AND ?", start, end)
	if routeName != "" {
		q = q.Where("route_name = ?", routeName)
	}
	if err := q.Order("timestamp").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sales"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Sale ID", "Date", "Route", "Customer", "Product", "Qty", "Empty", "Unit Price", "Today Credit", "Received", "Previous Balance", "Total Balance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, s := range sales {
		values := []interface{}{
			s.SaleID, s.Date, s.RouteName, s.CustomerName, s.ProductName,
			s.SalesQuantity, s.EmptyQuantity, s.UnitPrice, s.TodayCredit,
			s.TotalAmountReceived, s.PreviousBalance, s.TotalBalance,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("sales_%s_%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write report"})
		return
	}
}

func parseReportRange(c *gin.Context) (time.Time, time.Time, error) {
	startStr := c.Query("start")
	endStr := c.Query("end")

	start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end date must be YYYY-MM-DD")
	}
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return start, end, nil
}
