// Package ledger holds the balance arithmetic for a sale transaction.
// Everything here is pure: handlers read the customer/product snapshots,
// call Compute, and persist the result in one transaction.
package ledger

import (
	"errors"
	"fmt"

	"go-gas-agent/internal/models"
)

var (
	ErrNoCustomer     = errors.New("please select a customer")
	ErrNoProduct      = errors.New("please select a product")
	ErrQuantityTooLow = errors.New("sales quantity must be at least 1")
)

// Figures are the derived fields of one sale, computed from the live
// customer/product snapshots. Never derive these incrementally from a
// previous Figures value; recompute from the snapshots to avoid drift.
type Figures struct {
	UnitPrice       float64
	TodayCredit     float64
	PreviousBalance float64
	TotalBalance    float64
	NewGasOnHand    int
	PriceOverridden bool
}

// Compute applies the sale formulae:
//
//	unitPrice    = customPrice if > 0, else product.Price
//	todayCredit  = unitPrice * salesQuantity
//	totalBalance = previousBalance + todayCredit - amountReceived
//	newGasOnHand = gasOnHand - emptyQuantity + salesQuantity
func Compute(customer *models.Customer, product *models.Product, salesQuantity, emptyQuantity int, customPrice, amountReceived float64) Figures {
	unitPrice := product.Price
	overridden := false
	if customPrice > 0 {
		unitPrice = customPrice
		overridden = true
	}

	todayCredit := unitPrice * float64(salesQuantity)
	previousBalance := customer.CurrentBalance

	return Figures{
		UnitPrice:       unitPrice,
		TodayCredit:     todayCredit,
		PreviousBalance: previousBalance,
		TotalBalance:    previousBalance + todayCredit - amountReceived,
		NewGasOnHand:    customer.CurrentGasOnHand - emptyQuantity + salesQuantity,
		PriceOverridden: overridden,
	}
}

// Validate checks the form constraints before any write happens.
func Validate(customer *models.Customer, product *models.Product, salesQuantity, emptyQuantity int, customPrice, amountReceived float64) error {
	if customer == nil {
		return ErrNoCustomer
	}
	if product == nil {
		return ErrNoProduct
	}
	if salesQuantity < 1 {
		return ErrQuantityTooLow
	}
	if emptyQuantity < 0 {
		return errors.New("empty quantity cannot be negative")
	}
	if customPrice < 0 {
		return errors.New("custom price cannot be negative")
	}
	if amountReceived < 0 {
		return errors.New("amount received cannot be negative")
	}
	if emptyQuantity > customer.CurrentGasOnHand {
		return fmt.Errorf("cannot take back more cylinders (%d) than customer has (%d)", emptyQuantity, customer.CurrentGasOnHand)
	}
	return nil
}
