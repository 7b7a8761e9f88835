package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/buildsite_backend/config"
	"bitbucket.org/mmdatafocus/buildsite_backend/models"
	"bitbucket.org/mmdatafocus/buildsite_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateProject(c *gin.Context) {
	tenantID, userID := identity(c)

	var project models.BuildProject
	if err := c.ShouldBindJSON(&project); err != nil {
		abortWithError(c, "CreateProject", err)
		return
	}
	if project.Status != "" {
		if _, err := models.ParseProjectStatus(string(project.Status)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	project.TenantId = tenantID

	ctx := c.Request.Context()
	err := config.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		_, err := models.NewAuditLogger(tx, tenantID, userID).
			LogCreate(ctx, "BuildProject", project.ID, snapshot(project))
		return err
	})
	if err != nil {
		abortWithError(c, "CreateProject", err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func ListProjects(c *gin.Context) {
	ctx := c.Request.Context()

	query := config.GetDB().WithContext(ctx).Model(&models.BuildProject{})
	if status := c.Query("status"); status != "" {
		parsed, err := models.ParseProjectStatus(status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("status = ?", parsed)
	}

	var projects []models.BuildProject
	if err := query.Limit(config.SearchLimit).Find(&projects).Error; err != nil {
		abortWithError(c, "ListProjects", err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func GetProject(c *gin.Context) {
	ctx := c.Request.Context()

	var project models.BuildProject
	if err := config.GetDB().WithContext(ctx).First(&project, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, "GetProject", err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func UpdateProject(c *gin.Context) {
	tenantID, userID := identity(c)
	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var project models.BuildProject
	if err := db.First(&project, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, "UpdateProject", err)
		return
	}
	before := snapshot(project)

	var input models.BuildProject
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, "UpdateProject", err)
		return
	}
	if input.Status != "" {
		if _, err := models.ParseProjectStatus(string(input.Status)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	project.Title = input.Title
	project.Address = input.Address
	project.City = input.City
	project.State = input.State
	project.ZipCode = input.ZipCode
	if input.Status != "" {
		project.Status = input.Status
	}
	project.HomeAreaSqft = input.HomeAreaSqft
	project.Budget = input.Budget
	project.BaselineStartDate = input.BaselineStartDate
	project.BaselineEndDate = input.BaselineEndDate
	project.ActualStartDate = input.ActualStartDate
	project.ActualEndDate = input.ActualEndDate

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&project).Error; err != nil {
			return err
		}
		_, err := models.NewAuditLogger(tx, tenantID, userID).
			LogUpdate(ctx, "BuildProject", project.ID, before, snapshot(project))
		return err
	})
	if err != nil {
		abortWithError(c, "UpdateProject", err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ArchiveProject soft-deletes the project and marks it ARCHIVED.
func ArchiveProject(c *gin.Context) {
	tenantID, userID := identity(c)
	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var project models.BuildProject
	if err := db.First(&project, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, "ArchiveProject", err)
		return
	}
	before := snapshot(project)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&project).Update("status", models.ProjectStatusArchived).Error; err != nil {
			return err
		}
		if err := tx.Delete(&project).Error; err != nil {
			return err
		}
		_, err := models.NewAuditLogger(tx, tenantID, userID).
			LogDelete(ctx, "BuildProject", project.ID, before)
		return err
	})
	if err != nil {
		abortWithError(c, "ArchiveProject", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// snapshot detaches an entity for audit logging via a JSON round trip.
func snapshot(entity any) map[string]any {
	raw, err := utils.MarshalToJSON(entity)
	if err != nil {
		return map[string]any{"marshal_error": err.Error()}
	}
	var out map[string]any
	if err := utils.UnmarshalFromJSON([]byte(raw), &out); err != nil {
		return map[string]any{"unmarshal_error": err.Error()}
	}
	return out
}
