package handlers

import (
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/buildsite_backend/config"
	"bitbucket.org/mmdatafocus/buildsite_backend/models"
	"github.com/gin-gonic/gin"
)

// ListAuditLogs returns the tenant's audit trail, newest first. Filterable by
// entity_type, entity_id and action. The trail itself is never audited.
func ListAuditLogs(c *gin.Context) {
	ctx := c.Request.Context()

	query := config.GetDB().WithContext(ctx).Model(&models.AuditLog{})
	if entityType := c.Query("entity_type"); entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if entityID := c.Query("entity_id"); entityID != "" {
		query = query.Where("entity_id = ?", entityID)
	}
	if action := c.Query("action"); action != "" {
		parsed, err := models.ParseAuditAction(action)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("action = ?", parsed)
	}

	limit := config.SearchLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if n < limit {
			limit = n
		}
	}

	var logs []models.AuditLog
	if err := query.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		abortWithError(c, "ListAuditLogs", err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
