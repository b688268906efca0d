package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-gas-agent/internal/database"
	"go-gas-agent/internal/ledger"
	"go-gas-agent/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRequest is what the sales form submits.
type SaleRequest struct {
	CustomerID          string  `json:"customer_id" binding:"required"`
	ProductID           string  `json:"product_id" binding:"required"`
	SalesQuantity       int     `json:"sales_quantity"`
	EmptyQuantity       int     `json:"empty_quantity"`
	CustomPrice         float64 `json:"custom_price"`
	TotalAmountReceived float64 `json:"total_amount_received"`
	Date                string  `json:"date"`
}

// ErrCustomerChanged means the customer aggregate moved between our read
// and our conditional update: another sale got there first.
var ErrCustomerChanged = errors.New("customer record changed while recording the sale, please retry")

// CreateSale records one sale. The sale row and the customer aggregate
// update happen in a single transaction, with the update conditioned on
// the balance/inventory we read; a concurrent sale against the same
// customer aborts the whole thing instead of silently losing its effect.
func CreateSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	routeName := c.GetString("routeName")

	var customer models.Customer
	if err := database.DB.Where("customer_id = ?", req.CustomerID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var product models.Product
	if err := database.DB.Where("product_id = ?", req.ProductID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := ledger.Validate(&customer, &product, req.SalesQuantity, req.EmptyQuantity, req.CustomPrice, req.TotalAmountReceived); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	fig := ledger.Compute(&customer, &product, req.SalesQuantity, req.EmptyQuantity, req.CustomPrice, req.TotalAmountReceived)

	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}

	sale := models.Sale{
		DocID:               uuid.NewString(),
		SaleID:              "TBG" + now.Format("20060102150405"),
		CustomerID:          customer.CustomerID,
		ProductID:           product.ProductID,
		SalesQuantity:       req.SalesQuantity,
		EmptyQuantity:       req.EmptyQuantity,
		CustomPrice:         req.CustomPrice,
		UnitPrice:           fig.UnitPrice,
		TodayCredit:         fig.TodayCredit,
		TotalAmountReceived: req.TotalAmountReceived,
		PreviousBalance:     fig.PreviousBalance,
		TotalBalance:        fig.TotalBalance,
		Date:                date,
		Timestamp:           now,
		RouteName:           routeName,
		Status:              "completed",
		CustomerName:        customer.Name,
		CustomerPhone:       customer.Phone,
		CustomerAddress:     customer.Address,
		ProductName:         product.Name,
		ProductPrice:        product.Price,
	}

	err := commitSale(database.DB, &sale, customer.CustomerID, customer.CurrentBalance, customer.CurrentGasOnHand, fig.TotalBalance, fig.NewGasOnHand, now)
	if errors.Is(err, ErrCustomerChanged) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording sale: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sale recorded successfully!",
		"sale":    sale,
	})
}

// commitSale inserts the sale and applies the customer aggregate update
// conditioned on the previously-read balance and gas-on-hand. Zero rows
// affected means the snapshot is stale and everything rolls back.
func commitSale(db *gorm.DB, sale *models.Sale, customerID string, prevBalance float64, prevGasOnHand int, newBalance float64, newGasOnHand int, at time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Customer{}).
			Where("customer_id = ? AND current_balance = ? AND current_gas_on_hand = ?", customerID, prevBalance, prevGasOnHand).
			Updates(map[string]interface{}{
				"current_balance":     newBalance,
				"current_gas_on_hand": newGasOnHand,
				"last_purchase_date":  at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCustomerChanged
		}
		return nil
	})
}

// GetSale returns one sale. The storage doc id is checked first because
// it is unique; the human-readable sale id is second-granularity and two
// sales recorded in the same second share it, so that fallback takes the
// newest match.
func GetSale(c *gin.Context) {
	id := c.Param("id")

	var sale models.Sale
	err := database.DB.Where("doc_id = ?", id).First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = database.DB.Where("sale_id = ?", id).Order("timestamp desc").First(&sale).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Sale %s not found", id)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sale"})
		return
	}

	c.JSON(http.StatusOK, sale)
}

// GetTodaySales lists the route's sales for today, newest first.
func GetTodaySales(c *gin.Context) {
	routeName := c.Param("routeName")
	today := time.Now().Format("2006-01-02")

	var sales []models.Sale
	err := database.DB.
		Where("route_name = ? AND date = ?", routeName, today).
		Order("timestamp desc").
		Find(&sales).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch today's sales"})
		return
	}

	var totalCredit, totalReceived float64
	for _, s := range sales {
		totalCredit += s.TodayCredit
		totalReceived += s.TotalAmountReceived
	}

	c.JSON(http.StatusOK, gin.H{
		"sales":          sales,
		"total_credit":   totalCredit,
		"total_received": totalReceived,
	})
}

// GetAllSales lists every sale, newest first.
func GetAllSales(c *gin.Context) {
	var sales []models.Sale
	if err := database.DB.Order("timestamp desc").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}
