package models

import (
	"time"
)

// Route - A delivery territory that acts as the login principal.
// RouteID is the human-entered id used on the login form; it is distinct
// from the storage primary key.
type Route struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	RouteID  string `gorm:"uniqueIndex;size:50" json:"id"`
	Name     string `json:"name"`
	Password string `json:"-"` // admin-entered, compared as-is at login
	Remarks  string `json:"remarks"`
}

// Session - One login-to-logout interval for a route.
// LogoutTime == nil means the session is still open.
type Session struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RouteID    string     `gorm:"index;size:50" json:"route_id"`
	RouteName  string     `json:"route_name"`
	LoginTime  time.Time  `json:"login_time"`
	LogoutTime *time.Time `json:"logout_time"`
	Date       string     `gorm:"size:10" json:"date"` // YYYY-MM-DD
}

// Customer - A gas connection. CurrentBalance and CurrentGasOnHand are the
// running aggregates mutated by every sale commit; positive balance means
// the customer owes us.
type Customer struct {
	ID               uint       `gorm:"primaryKey" json:"-"`
	CustomerID       string     `gorm:"uniqueIndex;size:50" json:"id"`
	Name             string     `json:"name"`
	Organization     string     `json:"organization"`
	Phone            string     `json:"phone"`
	OwnerName        string     `json:"owner_name"`
	OwnerPhone       string     `json:"owner_phone"`
	Password         string     `json:"-"` // derived from phone digits at onboarding
	Route            string     `json:"route"`
	CurrentBalance   float64    `json:"current_balance"`
	CurrentGasOnHand int        `json:"current_gas_on_hand"`
	Address          string     `json:"address"`
	LastPurchaseDate *time.Time `json:"last_purchase_date"`
}

// Product - A cylinder type / SKU. Price is the base unit price; a sale may
// override it without touching this record.
type Product struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	ProductID string  `gorm:"uniqueIndex;size:50" json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Remarks   string  `json:"remarks"`
}

// Sale - The immutable transaction record. Customer and product fields are
// denormalized at write time so later edits to either do not change what a
// historical sale displays.
type Sale struct {
	DocID               string    `gorm:"primaryKey;size:36" json:"doc_id"`
	SaleID              string    `gorm:"index;size:30" json:"id"` // TBG + timestamp
	CustomerID          string    `gorm:"index;size:50" json:"customer_id"`
	ProductID           string    `gorm:"size:50" json:"product_id"`
	SalesQuantity       int       `json:"sales_quantity"`
	EmptyQuantity       int       `json:"empty_quantity"`
	CustomPrice         float64   `json:"custom_price"` // 0 = no override
	UnitPrice           float64   `json:"unit_price"`   // price actually charged
	TodayCredit         float64   `json:"today_credit"`
	TotalAmountReceived float64   `json:"total_amount_received"`
	PreviousBalance     float64   `json:"previous_balance"`
	TotalBalance        float64   `json:"total_balance"`
	Date                string    `gorm:"size:10" json:"date"`
	Timestamp           time.Time `json:"timestamp"`
	RouteName           string    `gorm:"index" json:"route_name"`
	Status              string    `json:"status"`

	// Point-in-time snapshots
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerAddress string  `json:"customer_address"`
	ProductName     string  `json:"product_name"`
	ProductPrice    float64 `json:"product_price"` // base price at time of sale
}

// AdminUser - Back-office account for the route/product admin forms.
type AdminUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // 'admin'
	CreatedAt    time.Time `json:"created_at"`
}

// Patient - The parallel patient-care module. Medicines and Equipment are
// free-text care notes kept inline with the record.
type Patient struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PatientID string    `gorm:"uniqueIndex;size:50" json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Condition string    `json:"condition"`
	Medicines string    `json:"medicines"`
	Equipment string    `json:"equipment"`
	CreatedAt time.Time `json:"created_at"`
}
