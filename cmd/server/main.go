package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"go-gas-agent/internal/database"
	"go-gas-agent/internal/handlers"
	"go-gas-agent/internal/middleware"
	"go-gas-agent/internal/session"
	"go-gas-agent/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}

	database.Connect()

	statePath := os.Getenv("SESSION_STATE_FILE")
	if statePath == "" {
		statePath = "./session_state.json"
	}
	store := session.NewFileStore(statePath)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"}, // React dev server
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "online", "device_id": utils.DeviceID()})
	})

	r.POST("/login", handlers.Login(store))
	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout(store))
	r.POST("/admin/login", handlers.AdminLogin)

	// Only opens if we explicitly allow it in .env
	if os.Getenv("ALLOW_ADMIN_REGISTRATION") == "true" {
		r.POST("/admin/register", handlers.AdminRegister)
		log.Println("WARNING: Admin registration route is OPEN. Disable this in production!")
	} else {
		log.Println("Admin registration route is disabled.")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// ROUTE STAFF & ADMIN
		api.GET("/dashboard/:routeName", handlers.GetDashboard)
		api.POST("/sales/new", handlers.CreateSale)
		api.GET("/sales/today/:routeName", handlers.GetTodaySales)
		api.GET("/sales/:id", handlers.GetSale)
		api.GET("/customers/:routeName", handlers.GetCustomers)
		api.GET("/customer/:id", handlers.GetCustomer)
		api.POST("/customers", handlers.CreateCustomer)
		api.GET("/products", handlers.GetProducts)
		api.POST("/ask", handlers.AskAI)

		// Patient-care module
		api.GET("/patients", handlers.GetPatients)
		api.POST("/patients", handlers.AddPatient)
		api.GET("/patient/:id", handlers.GetPatient)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.GET("/sales", handlers.GetAllSales)
			admin.POST("/products", handlers.AddProduct)
			admin.PUT("/products/:id", handlers.UpdateProduct)
			admin.DELETE("/products/:id", handlers.DeleteProduct)
			admin.PUT("/customer/:id", handlers.UpdateCustomer)
			admin.GET("/routes", handlers.GetRoutes)
			admin.POST("/routes", handlers.AddRoute)
			admin.GET("/routes/:id/sessions", handlers.GetRouteSessions)
			admin.GET("/reports", handlers.GetSalesReportHandler)
			admin.GET("/reports/export", handlers.ExportSalesReport)
		}
	}

	// Catch-all: the API has no view to fall back to; unauthenticated
	// clients belong on the login page.
	r.NoRoute(func(c *gin.Context) {
		if store.IsAuthenticated() {
			_, routeName := store.CurrentRoute()
			c.JSON(http.StatusNotFound, gin.H{"redirect": "/dashboard/" + routeName})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"redirect": "/login"})
	})

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	log.Println("Server starting on " + baseURL)
	if err := r.Run(":8080"); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
