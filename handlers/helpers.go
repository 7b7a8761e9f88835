package handlers

import (
	"errors"
	"net/http"

	"bitbucket.org/mmdatafocus/buildsite_backend/calculation"
	"bitbucket.org/mmdatafocus/buildsite_backend/config"
	"bitbucket.org/mmdatafocus/buildsite_backend/importer"
	"bitbucket.org/mmdatafocus/buildsite_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const moduleName = "handlers"

// identity returns the tenant and acting user resolved by the auth
// middleware. Routes behind RequireTenant always have a tenant.
func identity(c *gin.Context) (string, string) {
	ctx := c.Request.Context()
	tenantID, _ := utils.GetTenantIdFromContext(ctx)
	userID, _ := utils.GetUserIdFromContext(ctx)
	return tenantID, userID
}

// abortWithError translates core failures into transport responses. Domain
// and import errors keep their typed payloads; anything else is a 500.
func abortWithError(c *gin.Context, funcName string, err error) {
	var calcErr *calculation.CalculationError
	if errors.As(err, &calcErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": calcErr.Message,
			"field": calcErr.Field,
		})
		return
	}

	var impErr *importer.ImportError
	if errors.As(err, &impErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           impErr.Error(),
			"missing_headers": impErr.MissingHeaders,
			"success_count":   impErr.SuccessCount,
			"failure_count":   impErr.FailureCount,
			"row_errors":      impErr.RowErrors,
		})
		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.ProcessValidationErrors(err)})
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, utils.ErrorRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	config.LogError(config.GetLogger(), moduleName, funcName, c.FullPath(), nil, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
