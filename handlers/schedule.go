package handlers

import (
	"fmt"
	"net/http"

	"bitbucket.org/mmdatafocus/buildsite_backend/config"
	"bitbucket.org/mmdatafocus/buildsite_backend/importer"
	"bitbucket.org/mmdatafocus/buildsite_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

func CreateMilestone(c *gin.Context) {
	tenantID, userID := identity(c)

	var milestone models.ScheduleMilestone
	if err := c.ShouldBindJSON(&milestone); err != nil {
		abortWithError(c, "CreateMilestone", err)
		return
	}
	if _, err := models.ParseMilestonePhase(string(milestone.Phase)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !milestone.BaselineEndDate.After(milestone.BaselineStartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "baseline_end_date must be after baseline_start_date"})
		return
	}
	if milestone.PercentComplete.IsNegative() || milestone.PercentComplete.GreaterThan(hundred) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "percent_complete must be between 0 and 100"})
		return
	}

	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var project models.BuildProject
	if err := db.First(&project, "id = ?", milestone.ProjectId).Error; err != nil {
		abortWithError(c, "CreateMilestone", err)
		return
	}

	milestone.ID = ""
	milestone.TenantId = tenantID

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&milestone).Error; err != nil {
			return err
		}
		_, err := models.NewAuditLogger(tx, tenantID, userID).
			LogCreate(ctx, "ScheduleMilestone", milestone.ID, snapshot(milestone))
		return err
	})
	if err != nil {
		abortWithError(c, "CreateMilestone", err)
		return
	}

	c.JSON(http.StatusCreated, milestone)
}

func ListMilestones(c *gin.Context) {
	ctx := c.Request.Context()

	projectID := c.Query("project_id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}

	query := config.GetDB().WithContext(ctx).Where("project_id = ?", projectID)
	if phase := c.Query("phase"); phase != "" {
		parsed, err := models.ParseMilestonePhase(phase)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("phase = ?", parsed)
	}

	var milestones []models.ScheduleMilestone
	if err := query.Order("baseline_start_date").Find(&milestones).Error; err != nil {
		abortWithError(c, "ListMilestones", err)
		return
	}

	c.JSON(http.StatusOK, milestones)
}

func GetMilestone(c *gin.Context) {
	ctx := c.Request.Context()

	var milestone models.ScheduleMilestone
	if err := config.GetDB().WithContext(ctx).First(&milestone, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, "GetMilestone", err)
		return
	}

	c.JSON(http.StatusOK, milestone)
}

func UpdateMilestone(c *gin.Context) {
	tenantID, userID := identity(c)
	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var milestone models.ScheduleMilestone
	if err := db.First(&milestone, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, "UpdateMilestone", err)
		return
	}
	before := snapshot(milestone)

	var input models.ScheduleMilestone
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, "UpdateMilestone", err)
		return
	}
	if _, err := models.ParseMilestonePhase(string(input.Phase)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.BaselineEndDate.After(input.BaselineStartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "baseline_end_date must be after baseline_start_date"})
		return
	}
	if input.PercentComplete.IsNegative() || input.PercentComplete.GreaterThan(hundred) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "percent_complete must be between 0 and 100"})
		return
	}

	milestone.Phase = input.Phase
	milestone.Description = input.Description
	milestone.BaselineStartDate = input.BaselineStartDate
	milestone.BaselineEndDate = input.BaselineEndDate
	milestone.ActualStartDate = input.ActualStartDate
	milestone.ActualEndDate = input.ActualEndDate
	milestone.PercentComplete = input.PercentComplete
	milestone.Notes = input.Notes

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&milestone).Error; err != nil {
			return err
		}
		_, err := models.NewAuditLogger(tx, tenantID, userID).
			LogUpdate(ctx, "ScheduleMilestone", milestone.ID, before, snapshot(milestone))
		return err
	})
	if err != nil {
		abortWithError(c, "UpdateMilestone", err)
		return
	}

	c.JSON(http.StatusOK, milestone)
}

func DeleteMilestone(c *gin.Context) {
	tenantID, userID := identity(c)
	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var milestone models.ScheduleMilestone
	if err := db.First(&milestone, "id = ?", c.Param("id")).Error; err != nil {
		abortWithError(c, "DeleteMilestone", err)
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&milestone).Error; err != nil {
			return err
		}
		_, err := models.NewAuditLogger(tx, tenantID, userID).
			LogDelete(ctx, "ScheduleMilestone", milestone.ID, snapshot(milestone))
		return err
	})
	if err != nil {
		abortWithError(c, "DeleteMilestone", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ImportScheduleCSV parses a milestone CSV and creates the whole batch, or
// rejects it entirely with every row error listed.
func ImportScheduleCSV(c *gin.Context) {
	tenantID, userID := identity(c)

	projectID := c.Query("project_id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}

	content, err := readCSVPayload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var project models.BuildProject
	if err := db.First(&project, "id = ?", projectID).Error; err != nil {
		abortWithError(c, "ImportScheduleCSV", err)
		return
	}

	imp := &importer.ScheduleImporter{}
	milestones, err := imp.ParseCSV(content, projectID)
	if err != nil {
		abortWithError(c, "ImportScheduleCSV", err)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		audit := models.NewAuditLogger(tx, tenantID, userID)
		for i := range milestones {
			milestones[i].TenantId = tenantID
			if err := tx.Create(&milestones[i]).Error; err != nil {
				return err
			}
			if _, err := audit.LogCreate(ctx, "ScheduleMilestone", milestones[i].ID, snapshot(milestones[i])); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		abortWithError(c, "ImportScheduleCSV", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"imported": len(milestones),
		"warnings": imp.Warnings,
	})
}

// ExportSchedule streams the project's milestones as CSV, or XLSX with
// ?format=xlsx.
func ExportSchedule(c *gin.Context) {
	tenantID, userID := identity(c)

	projectID := c.Query("project_id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}

	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)

	var milestones []models.ScheduleMilestone
	if err := db.Where("project_id = ?", projectID).Order("baseline_start_date").Find(&milestones).Error; err != nil {
		abortWithError(c, "ExportSchedule", err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	audit := models.NewAuditLogger(db, tenantID, userID)
	if _, err := audit.Log(ctx, models.AuditActionRead, "ScheduleMilestone", projectID,
		models.AuditChanges{}, map[string]any{"export_format": format, "rows": len(milestones)}); err != nil {
		abortWithError(c, "ExportSchedule", err)
		return
	}

	switch format {
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=schedule.xlsx")
		if err := importer.WriteScheduleXLSX(c.Writer, milestones); err != nil {
			abortWithError(c, "ExportSchedule", err)
		}
	case "csv":
		out, err := importer.ExportScheduleCSV(milestones)
		if err != nil {
			abortWithError(c, "ExportSchedule", err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=schedule.csv")
		c.Data(http.StatusOK, "text/csv", []byte(out))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported format %q", format)})
	}
}

type milestoneVariance struct {
	MilestoneId  string                `json:"milestone_id"`
	Phase        models.MilestonePhase `json:"phase"`
	Description  string                `json:"description"`
	VarianceDays int                   `json:"variance_days"`
	Completed    bool                  `json:"completed"`
}

// ScheduleVariance reports per-milestone variance against the baseline.
// ?as_of=YYYY-MM-DD anchors in-flight milestones at a past date.
func ScheduleVariance(c *gin.Context) {
	ctx := c.Request.Context()

	projectID := c.Query("project_id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}
	asOf := c.Query("as_of")

	var milestones []models.ScheduleMilestone
	if err := config.GetDB().WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("baseline_start_date").
		Find(&milestones).Error; err != nil {
		abortWithError(c, "ScheduleVariance", err)
		return
	}

	report := make([]milestoneVariance, 0, len(milestones))
	behind := 0
	for _, m := range milestones {
		days, err := m.VarianceDays(asOf)
		if err != nil {
			abortWithError(c, "ScheduleVariance", err)
			return
		}
		if days < 0 {
			behind++
		}
		report = append(report, milestoneVariance{
			MilestoneId:  m.ID,
			Phase:        m.Phase,
			Description:  m.Description,
			VarianceDays: days,
			Completed:    m.ActualEndDate != nil,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id":       projectID,
		"milestones":       report,
		"behind_schedule":  behind,
		"total_milestones": len(report),
	})
}
