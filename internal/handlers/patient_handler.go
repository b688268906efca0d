package handlers

import (
	"errors"
	"net/http"

	"go-gas-agent/internal/database"
	"go-gas-agent/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The patient-care module runs alongside the distribution business and
// shares its auth gating. Records are create-and-read only.

func AddPatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if patient.PatientID == "" || patient.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Patient id and name are required"})
		return
	}

	if err := database.DB.Create(&patient).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Patient likely already exists"})
		return
	}

	c.JSON(http.StatusCreated, patient)
}

func GetPatients(c *gin.Context) {
	var patients []models.Patient
	if err := database.DB.Order("name").Find(&patients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch patients"})
		return
	}
	c.JSON(http.StatusOK, patients)
}

func GetPatient(c *gin.Context) {
	id := c.Param("id")

	var patient models.Patient
	err := database.DB.Where("patient_id = ?", id).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch patient"})
		return
	}

	c.JSON(http.StatusOK, patient)
}
