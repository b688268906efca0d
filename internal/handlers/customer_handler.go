package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go-gas-agent/internal/database"
	"go-gas-agent/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewConnectionRequest is the connection-onboarding form.
type NewConnectionRequest struct {
	CustomerID       string  `json:"id" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Organization     string  `json:"organization"`
	Phone            string  `json:"phone" binding:"required"`
	OwnerName        string  `json:"owner_name"`
	OwnerPhone       string  `json:"owner_phone"`
	Route            string  `json:"route" binding:"required"`
	Address          string  `json:"address"`
	CurrentBalance   float64 `json:"current_balance"`
	CurrentGasOnHand int     `json:"current_gas_on_hand"`
}

// derivePassword builds the customer's password from the last four phone
// digits plus a fixed suffix, as the onboarding form always has.
func derivePassword(phone string) string {
	digits := phone
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return digits + "@tbgmkba"
}

// CreateCustomer onboards a new connection.
func CreateCustomer(c *gin.Context) {
	var req NewConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	customer := models.Customer{
		CustomerID:       strings.TrimSpace(req.CustomerID),
		Name:             req.Name,
		Organization:     req.Organization,
		Phone:            req.Phone,
		OwnerName:        req.OwnerName,
		OwnerPhone:       req.OwnerPhone,
		Password:         derivePassword(req.Phone),
		Route:            req.Route,
		Address:          req.Address,
		CurrentBalance:   req.CurrentBalance,
		CurrentGasOnHand: req.CurrentGasOnHand,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer likely already exists"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists the customers assigned to a route.
func GetCustomers(c *gin.Context) {
	routeName := c.Param("routeName")

	var customers []models.Customer
	if err := database.DB.Where("route = ?", routeName).Order("name").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer returns one customer's profile with their sale history,
// newest first.
func GetCustomer(c *gin.Context) {
	id := c.Param("id")

	var customer models.Customer
	err := database.DB.Where("customer_id = ?", id).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
		return
	}

	var sales []models.Sale
	if err := database.DB.Where("customer_id = ?", id).Order("timestamp desc").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"sales":    sales,
	})
}

// UpdateCustomer patches contact fields. Balance and gas-on-hand only move
// through the sale commit, so those keys are stripped here.
func UpdateCustomer(c *gin.Context) {
	id := c.Param("id")

	var customer models.Customer
	if err := database.DB.Where("customer_id = ?", id).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	for _, locked := range []string{"current_balance", "current_gas_on_hand", "id", "customer_id", "password"} {
		delete(updateData, locked)
	}

	if err := database.DB.Model(&customer).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer updated successfully", "customer": customer})
}
